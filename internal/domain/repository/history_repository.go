package repository

import (
	"context"
	"time"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type HistoryRepository interface {
	// GetOrCreate returns the patient's clinical history, creating an empty
	// one if absent. Idempotent under concurrency: the implementation must
	// lean on the unique patient_id constraint, not an application lock.
	GetOrCreate(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error)

	CreateEntry(ctx context.Context, entry *entity.HistoryEntry) error
	// FindEntryByID loads the entry with its parent history so ownership
	// checks can compare the patient context.
	FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.HistoryEntry, error)
	// UpdateEntryWithSnapshot writes the version snapshot and the modified
	// entry in one transaction. Neither row is committed without the other.
	UpdateEntryWithSnapshot(ctx context.Context, entry *entity.HistoryEntry, version *entity.HistoryVersion) error
	// DeleteEntryWithSnapshot writes the version snapshot and removes the
	// entry in one transaction.
	DeleteEntryWithSnapshot(ctx context.Context, entryID uuid.UUID, version *entity.HistoryVersion) (int64, error)
	// ListEntries returns entries newest first; a non-nil since narrows to
	// entries created at or after that instant.
	ListEntries(ctx context.Context, historyID uuid.UUID, since *time.Time) ([]entity.HistoryEntry, error)

	FindVersionByID(ctx context.Context, id uuid.UUID) (*entity.HistoryVersion, error)
	ListVersions(ctx context.Context, historyID uuid.UUID) ([]entity.HistoryVersion, error)
}
