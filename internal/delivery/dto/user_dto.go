package dto

// Request DTOs

// CreateUserRequest provisions a staff account; the account receives the
// temporary password and must change it on first login.
type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,min=2"`
	Email  string `json:"email" validate:"required,email"`
	RoleID int    `json:"role_id" validate:"required"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2"`
	Email  string `json:"email" validate:"omitempty,email"`
	RoleID int    `json:"role_id" validate:"omitempty"`
}

// Response DTOs

// CreatedUserResponse carries the one-time temporary password back to the
// administrator who provisioned the account.
type CreatedUserResponse struct {
	User              UserResponse `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}

type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password"`
}
