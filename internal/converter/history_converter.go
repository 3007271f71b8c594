package converter

import (
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
)

// HistoryEntryToResponse converts a HistoryEntry entity to HistoryEntryResponse DTO
func HistoryEntryToResponse(entry *entity.HistoryEntry) *dto.HistoryEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.HistoryEntryResponse{
		ID:         entry.ID,
		HistoryID:  entry.HistoryID,
		AuthorID:   entry.AuthorID,
		AuthorName: entry.Author.Name,
		Content:    entry.Content,
		CreatedAt:  entry.CreatedAt,
	}
}

// HistoryEntriesToResponses converts a slice of HistoryEntry entities to HistoryEntryResponse DTOs
func HistoryEntriesToResponses(entries []entity.HistoryEntry) []dto.HistoryEntryResponse {
	responses := make([]dto.HistoryEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *HistoryEntryToResponse(&entries[i])
	}
	return responses
}

// HistoryToResponse converts a ClinicalHistory with its entries to HistoryResponse DTO
func HistoryToResponse(history *entity.ClinicalHistory, entries []entity.HistoryEntry) *dto.HistoryResponse {
	if history == nil {
		return nil
	}

	entryResponses := HistoryEntriesToResponses(entries)
	return &dto.HistoryResponse{
		ID:        history.ID,
		PatientID: history.PatientID,
		Entries:   entryResponses,
		Total:     len(entryResponses),
	}
}

// HistoryVersionToResponse converts a HistoryVersion entity to HistoryVersionResponse DTO
func HistoryVersionToResponse(version *entity.HistoryVersion) *dto.HistoryVersionResponse {
	if version == nil {
		return nil
	}

	return &dto.HistoryVersionResponse{
		ID:             version.ID,
		HistoryID:      version.HistoryID,
		Content:        version.Content,
		RecordedByID:   version.RecordedByID,
		RecordedByName: version.RecordedBy.Name,
		CreatedAt:      version.CreatedAt,
	}
}

// HistoryVersionsToResponses converts a slice of HistoryVersion entities to HistoryVersionResponse DTOs
func HistoryVersionsToResponses(versions []entity.HistoryVersion) []dto.HistoryVersionResponse {
	responses := make([]dto.HistoryVersionResponse, len(versions))
	for i := range versions {
		responses[i] = *HistoryVersionToResponse(&versions[i])
	}
	return responses
}
