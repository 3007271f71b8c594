package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	// FindByID resolves soft-deleted patients too; direct lookups keep
	// working for historical references.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	// FindActive lists active patients, optionally narrowed by a substring
	// match over name or identification.
	FindActive(ctx context.Context, query string) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
}
