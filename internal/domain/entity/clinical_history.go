package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalHistory is the per-patient record container, created lazily on
// first access. The patient_id column carries a unique constraint so
// concurrent get-or-create calls cannot produce duplicates.
type ClinicalHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"patient_id"`
	Content     string     `gorm:"type:text;not null;default:''" json:"content"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	UpdatedBy *User          `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
	Entries   []HistoryEntry `gorm:"foreignKey:HistoryID" json:"entries,omitempty"`
}

func (ClinicalHistory) TableName() string {
	return "clinical_histories"
}

// HistoryEntry is one authored, timestamped note appended to a clinical
// history. Only the recorded author may edit or delete it.
type HistoryEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HistoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"history_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	History ClinicalHistory `gorm:"foreignKey:HistoryID" json:"history,omitempty"`
	Author  User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}

// HistoryVersion is an immutable snapshot of clinical content at a point
// in time. A snapshot is appended before any entry content is overwritten
// or removed; rows are never updated or deleted.
type HistoryVersion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HistoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"history_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	RecordedByID uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	History    ClinicalHistory `gorm:"foreignKey:HistoryID" json:"history,omitempty"`
	RecordedBy User            `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`
}

func (HistoryVersion) TableName() string {
	return "history_versions"
}
