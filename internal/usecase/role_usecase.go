package usecase

import (
	"context"
	"strings"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/apperrors"

	"github.com/sirupsen/logrus"
)

type RoleUsecase interface {
	CreateRole(ctx context.Context, actor entity.Principal, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	GetAllRoles(ctx context.Context) (*dto.RoleListResponse, error)
	UpdateRole(ctx context.Context, actor entity.Principal, roleID int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	DeleteRole(ctx context.Context, actor entity.Principal, roleID int) error
}

type roleUsecase struct {
	log          *logrus.Logger
	roleRepo     repository.RoleRepository
	auditService service.AuditService
}

func NewRoleUsecase(
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	auditService service.AuditService,
) RoleUsecase {
	return &roleUsecase{
		log:          log,
		roleRepo:     roleRepo,
		auditService: auditService,
	}
}

func (u *roleUsecase) CreateRole(ctx context.Context, actor entity.Principal, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	role := &entity.Role{Name: name, Description: req.Description}
	if err := u.roleRepo.Create(ctx, role); err != nil {
		u.log.Warnf("Failed to create role: %+v", err)
		if apperrors.IsDuplicateKey(err, "name") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionRoleCreate, "role", role.Name, converter.RoleToResponse(role)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetAllRoles(ctx context.Context) (*dto.RoleListResponse, error) {
	roles, err := u.roleRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}

	responses := converter.RolesToResponses(roles)
	return &dto.RoleListResponse{
		Roles: responses,
		Total: len(responses),
	}, nil
}

func (u *roleUsecase) UpdateRole(ctx context.Context, actor entity.Principal, roleID int, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	role, err := u.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ErrNotFound
	}

	existing, err := u.roleRepo.FindByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to check role name: %+v", err)
		return nil, err
	}
	if existing != nil && existing.ID != roleID {
		return nil, apperrors.ErrConflict
	}

	oldValue := converter.RoleToResponse(role)
	role.Name = name
	role.Description = strings.TrimSpace(req.Description)
	if err := u.roleRepo.Update(ctx, role); err != nil {
		u.log.Warnf("Failed to update role: %+v", err)
		if apperrors.IsDuplicateKey(err, "name") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionRoleUpdate, "role", role.Name, oldValue, converter.RoleToResponse(role)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.RoleToResponse(role), nil
}

// DeleteRole refuses to remove a role any user still holds.
func (u *roleUsecase) DeleteRole(ctx context.Context, actor entity.Principal, roleID int) error {
	role, err := u.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return err
	}
	if role == nil {
		return apperrors.ErrNotFound
	}

	holders, err := u.roleRepo.CountUsers(ctx, roleID)
	if err != nil {
		u.log.Warnf("Failed to count role users: %+v", err)
		return err
	}
	if holders > 0 {
		return apperrors.ErrConflict
	}

	oldValue := converter.RoleToResponse(role)
	affectedRows, err := u.roleRepo.Delete(ctx, roleID)
	if err != nil {
		u.log.Warnf("Failed to delete role: %+v", err)
		if apperrors.IsForeignKey(err, "role") {
			return apperrors.ErrConflict
		}
		return err
	}
	if affectedRows == 0 {
		return apperrors.ErrNotFound
	}

	if err := u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionRoleDelete, "role", oldValue.Name, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
