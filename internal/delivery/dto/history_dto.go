package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddEntryRequest struct {
	Content string `json:"content" validate:"required"`
}

type EditEntryRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type HistoryEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	HistoryID  uuid.UUID `json:"history_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	ID        uuid.UUID              `json:"id"`
	PatientID uuid.UUID              `json:"patient_id"`
	Entries   []HistoryEntryResponse `json:"entries"`
	Total     int                    `json:"total"`
}

type HistoryVersionResponse struct {
	ID             uuid.UUID `json:"id"`
	HistoryID      uuid.UUID `json:"history_id"`
	Content        string    `json:"content"`
	RecordedByID   uuid.UUID `json:"recorded_by_id"`
	RecordedByName string    `json:"recorded_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type HistoryVersionListResponse struct {
	Versions []HistoryVersionResponse `json:"versions"`
	Total    int                      `json:"total"`
}
