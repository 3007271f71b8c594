package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ErrInvalidTransition is returned when an appointment status change is
// not allowed; no transition leaves the completed state.
var ErrInvalidTransition = errors.New("invalid appointment status transition")

// Appointment links a patient, an attending doctor and a specialty at a
// scheduled time.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SpecialtyID int               `gorm:"not null;index" json:"specialty_id"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    User      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still pending
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// MarkCompleted transitions pending -> completed.
func (a *Appointment) MarkCompleted() error {
	if a.Status != AppointmentStatusPending {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

// Cancel transitions pending -> cancelled.
func (a *Appointment) Cancel() error {
	if a.Status != AppointmentStatusPending {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Query string // substring match over patient name/identification, doctor name, specialty name
}
