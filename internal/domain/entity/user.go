package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticatable principal with exactly one role.
// PasswordChanged stays false until the user replaces the temporary
// password assigned at creation.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID          int       `gorm:"not null;index" json:"role_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Email           string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"type:text;not null" json:"-"`
	Active          *bool     `gorm:"not null;default:true;index" json:"active"`
	PasswordChanged bool      `gorm:"not null;default:false" json:"password_changed"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.Active != nil && *u.Active
}

// Principal is the acting identity carried through every guarded
// operation. It is always passed explicitly, never read from global state.
type Principal struct {
	ID   uuid.UUID
	Name string
	Role string
}

// PrincipalOf extracts the acting identity from a loaded user.
func PrincipalOf(u *User) Principal {
	return Principal{ID: u.ID, Name: u.Name, Role: u.Role.Name}
}
