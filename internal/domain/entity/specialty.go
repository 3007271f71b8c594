package entity

// Specialty is a lookup entity referenced by appointments. It cannot be
// deleted while any appointment references it.
type Specialty struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:SpecialtyID" json:"appointments,omitempty"`
}

func (Specialty) TableName() string {
	return "specialties"
}
