package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindNonAdmin lists every user whose role is not admin, role preloaded.
	FindNonAdmin(ctx context.Context) ([]entity.User, error)
	// FindActiveByRole lists active users holding the named role.
	FindActiveByRole(ctx context.Context, roleName string) ([]entity.User, error)
	CountByRole(ctx context.Context, roleName string) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
