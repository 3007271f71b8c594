package usecase

import (
	"context"
	"strings"
	"time"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/policy"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RecentEntriesWindow is the default lookback for "recent only" views.
const RecentEntriesWindow = 30 * 24 * time.Hour

// HistoryUsecase manages the lifecycle of a patient's clinical record:
// lazy creation, the append-only entry log, author-restricted mutation and
// the immutable version trail. Every operation takes the acting principal
// explicitly.
type HistoryUsecase interface {
	GetHistory(ctx context.Context, patientID uuid.UUID, since *time.Time) (*dto.HistoryResponse, error)
	AddEntry(ctx context.Context, actor entity.Principal, patientID uuid.UUID, content string) (*dto.HistoryEntryResponse, error)
	EditEntry(ctx context.Context, actor entity.Principal, patientID, entryID uuid.UUID, content string) (*dto.HistoryEntryResponse, error)
	DeleteEntry(ctx context.Context, actor entity.Principal, patientID, entryID uuid.UUID) error
	ListVersions(ctx context.Context, patientID uuid.UUID) (*dto.HistoryVersionListResponse, error)
	GetVersion(ctx context.Context, patientID, versionID uuid.UUID) (*dto.HistoryVersionResponse, error)
}

type historyUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	historyRepo  repository.HistoryRepository
	auditService service.AuditService
}

func NewHistoryUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	historyRepo repository.HistoryRepository,
	auditService service.AuditService,
) HistoryUsecase {
	return &historyUsecase{
		log:          log,
		patientRepo:  patientRepo,
		historyRepo:  historyRepo,
		auditService: auditService,
	}
}

// GetHistory returns the patient's clinical history with entries newest
// first, creating an empty history on first access. Idempotent: repeated
// calls resolve to the same history row.
func (u *historyUsecase) GetHistory(ctx context.Context, patientID uuid.UUID, since *time.Time) (*dto.HistoryResponse, error) {
	history, err := u.getOrCreate(ctx, patientID)
	if err != nil {
		return nil, err
	}

	entries, err := u.historyRepo.ListEntries(ctx, history.ID, since)
	if err != nil {
		u.log.Warnf("Failed to list history entries: %+v", err)
		return nil, err
	}

	return converter.HistoryToResponse(history, entries), nil
}

func (u *historyUsecase) AddEntry(ctx context.Context, actor entity.Principal, patientID uuid.UUID, content string) (*dto.HistoryEntryResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrValidation
	}

	history, err := u.getOrCreate(ctx, patientID)
	if err != nil {
		return nil, err
	}

	entry := &entity.HistoryEntry{
		HistoryID: history.ID,
		AuthorID:  actor.ID,
		Content:   content,
	}
	if err := u.historyRepo.CreateEntry(ctx, entry); err != nil {
		u.log.Warnf("Failed to create history entry: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionHistoryEntryAdd, "history_entry", entry.ID.String(), converter.HistoryEntryToResponse(entry)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.HistoryEntryToResponse(entry), nil
}

func (u *historyUsecase) EditEntry(ctx context.Context, actor entity.Principal, patientID, entryID uuid.UUID, content string) (*dto.HistoryEntryResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrValidation
	}

	entry, err := u.findOwnedEntry(ctx, actor, patientID, entryID)
	if err != nil {
		return nil, err
	}

	oldValue := converter.HistoryEntryToResponse(entry)

	// The snapshot of the prior content and the overwrite commit together
	// or not at all; a version row must never describe an edit that did
	// not happen.
	version := snapshotOf(actor, entry)
	entry.Content = content
	if err := u.historyRepo.UpdateEntryWithSnapshot(ctx, entry, version); err != nil {
		u.log.Warnf("Failed to update history entry: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionHistoryEntryEdit, "history_entry", entry.ID.String(), oldValue, converter.HistoryEntryToResponse(entry)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.HistoryEntryToResponse(entry), nil
}

func (u *historyUsecase) DeleteEntry(ctx context.Context, actor entity.Principal, patientID, entryID uuid.UUID) error {
	entry, err := u.findOwnedEntry(ctx, actor, patientID, entryID)
	if err != nil {
		return err
	}

	oldValue := converter.HistoryEntryToResponse(entry)

	// The entry row is removed for good; its content survives in the
	// version trail, written in the same transaction as the delete.
	affectedRows, err := u.historyRepo.DeleteEntryWithSnapshot(ctx, entryID, snapshotOf(actor, entry))
	if err != nil {
		u.log.Warnf("Failed to delete history entry: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return apperrors.ErrNotFound
	}

	if err := u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionHistoryEntryDelete, "history_entry", entryID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *historyUsecase) ListVersions(ctx context.Context, patientID uuid.UUID) (*dto.HistoryVersionListResponse, error) {
	history, err := u.getOrCreate(ctx, patientID)
	if err != nil {
		return nil, err
	}

	versions, err := u.historyRepo.ListVersions(ctx, history.ID)
	if err != nil {
		u.log.Warnf("Failed to list history versions: %+v", err)
		return nil, err
	}

	responses := converter.HistoryVersionsToResponses(versions)
	return &dto.HistoryVersionListResponse{
		Versions: responses,
		Total:    len(responses),
	}, nil
}

func (u *historyUsecase) GetVersion(ctx context.Context, patientID, versionID uuid.UUID) (*dto.HistoryVersionResponse, error) {
	version, err := u.historyRepo.FindVersionByID(ctx, versionID)
	if err != nil {
		u.log.Warnf("Failed to find history version: %+v", err)
		return nil, err
	}
	// A missing version and a version of another patient's history are the
	// same answer to the caller.
	if version == nil || version.History.PatientID != patientID {
		return nil, apperrors.ErrNotFound
	}

	return converter.HistoryVersionToResponse(version), nil
}

// getOrCreate resolves the patient, then the history. Unknown patients are
// not given histories.
func (u *historyUsecase) getOrCreate(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.ErrNotFound
	}

	history, err := u.historyRepo.GetOrCreate(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to get or create clinical history: %+v", err)
		return nil, err
	}
	return history, nil
}

// findOwnedEntry applies the shared guards for entry mutation: the entry
// must exist, belong to the given patient's history, and be authored by
// the actor. The cross-patient case reports not-found, never forbidden.
func (u *historyUsecase) findOwnedEntry(ctx context.Context, actor entity.Principal, patientID, entryID uuid.UUID) (*entity.HistoryEntry, error) {
	entry, err := u.historyRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		u.log.Warnf("Failed to find history entry: %+v", err)
		return nil, err
	}
	if entry == nil || entry.History.PatientID != patientID {
		return nil, apperrors.ErrNotFound
	}
	if !policy.CanManageEntry(actor, entry) {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

// snapshotOf captures the entry's current content as an immutable version
// attributed to the acting principal.
func snapshotOf(actor entity.Principal, entry *entity.HistoryEntry) *entity.HistoryVersion {
	return &entity.HistoryVersion{
		HistoryID:    entry.HistoryID,
		Content:      entry.Content,
		RecordedByID: actor.ID,
	}
}
