package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(200)" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Default role names seeded on first initialization
const (
	RoleAdmin         = "admin"
	RoleMedico        = "medico"
	RoleEnfermeria    = "enfermeria"
	RoleRecepcionista = "recepcionista"
)
