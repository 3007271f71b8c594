package repository

import (
	"context"
	"errors"
	"time"

	"go-clinic-management/internal/domain/entity"
	domainRepo "go-clinic-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) domainRepo.HistoryRepository {
	return &historyRepository{db: db}
}

// GetOrCreate inserts an empty history with ON CONFLICT DO NOTHING on the
// patient_id unique constraint, then reads the surviving row. Two
// concurrent calls both end up reading the single row the constraint let
// through.
func (r *historyRepository) GetOrCreate(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	history := &entity.ClinicalHistory{PatientID: patientID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "patient_id"}},
			DoNothing: true,
		}).
		Create(history).Error
	if err != nil {
		return nil, err
	}
	return r.findByPatientID(ctx, patientID)
}

func (r *historyRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	history, err := r.findByPatientID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

func (r *historyRepository) findByPatientID(ctx context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	var history entity.ClinicalHistory
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) CreateEntry(ctx context.Context, entry *entity.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.HistoryEntry, error) {
	var entry entity.HistoryEntry
	err := r.db.WithContext(ctx).Preload("History").Preload("Author").Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepository) UpdateEntryWithSnapshot(ctx context.Context, entry *entity.HistoryEntry, version *entity.HistoryVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		return tx.Save(entry).Error
	})
}

func (r *historyRepository) DeleteEntryWithSnapshot(ctx context.Context, entryID uuid.UUID, version *entity.HistoryVersion) (int64, error) {
	var affectedRows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", entryID).Delete(&entity.HistoryEntry{})
		affectedRows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, err
	}
	return affectedRows, nil
}

func (r *historyRepository) ListEntries(ctx context.Context, historyID uuid.UUID, since *time.Time) ([]entity.HistoryEntry, error) {
	var entries []entity.HistoryEntry
	db := r.db.WithContext(ctx).Preload("Author").Where("history_id = ?", historyID)
	if since != nil {
		db = db.Where("created_at >= ?", *since)
	}
	err := db.Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) FindVersionByID(ctx context.Context, id uuid.UUID) (*entity.HistoryVersion, error) {
	var version entity.HistoryVersion
	err := r.db.WithContext(ctx).Preload("History").Preload("RecordedBy").Where("id = ?", id).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

func (r *historyRepository) ListVersions(ctx context.Context, historyID uuid.UUID) ([]entity.HistoryVersion, error) {
	var versions []entity.HistoryVersion
	err := r.db.WithContext(ctx).
		Preload("RecordedBy").
		Where("history_id = ?", historyID).
		Order("created_at DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}
