package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a clinic patient. Deleting a patient only flips
// Active to false so historical appointments and the clinical history
// keep resolving.
type Patient struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:varchar(100);not null" json:"name"`
	Identification string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"identification"`
	Phone          string     `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Email          string     `gorm:"type:varchar(100)" json:"email,omitempty"`
	Address        string     `gorm:"type:varchar(200)" json:"address,omitempty"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Sex            string     `gorm:"type:varchar(20)" json:"sex,omitempty"`
	Active         *bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsActive reports whether the patient appears in default listings.
func (p *Patient) IsActive() bool {
	return p.Active != nil && *p.Active
}

// AgeAt returns the patient's age in whole years as of the given date, or
// -1 when the birth date is unknown. The year difference is reduced by one
// when the as-of month/day falls before the birthday in that year.
func (p *Patient) AgeAt(asOf time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	birth := *p.BirthDate
	age := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		age--
	}
	return age
}
