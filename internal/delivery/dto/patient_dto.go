package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Identification string `json:"identification" validate:"required,max=20"`
	Phone          string `json:"phone" validate:"omitempty,max=15"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address" validate:"omitempty,max=200"`
	BirthDate      string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Sex            string `json:"sex" validate:"omitempty,max=20"`
}

type UpdatePatientRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2"`
	Identification string `json:"identification" validate:"omitempty,max=20"`
	Phone          string `json:"phone" validate:"omitempty,max=15"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address" validate:"omitempty,max=200"`
	BirthDate      string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Sex            string `json:"sex" validate:"omitempty,max=20"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Identification string    `json:"identification"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	BirthDate      string    `json:"birth_date,omitempty"`
	Sex            string    `json:"sex,omitempty"`
	Active         *bool     `json:"active"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
