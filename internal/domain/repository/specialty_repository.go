package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *entity.Specialty) error
	FindByID(ctx context.Context, id int) (*entity.Specialty, error)
	FindByName(ctx context.Context, name string) (*entity.Specialty, error)
	FindAll(ctx context.Context) ([]entity.Specialty, error)
	Update(ctx context.Context, specialty *entity.Specialty) error
	Delete(ctx context.Context, id int) (int64, error)
	// CountAppointments backs the referential guard on deletion.
	CountAppointments(ctx context.Context, specialtyID int) (int64, error)
}
