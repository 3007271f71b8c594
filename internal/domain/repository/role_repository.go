package repository

import (
	"context"

	"go-clinic-management/internal/domain/entity"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	FindByID(ctx context.Context, id int) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	FindAll(ctx context.Context) ([]entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int) (int64, error)
	// CountUsers backs the referential guard on deletion.
	CountUsers(ctx context.Context, roleID int) (int64, error)
}
