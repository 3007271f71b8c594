package usecase

import (
	"context"
	"errors"
	"testing"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newRoleUsecase() (RoleUsecase, *memRoleRepo) {
	repo := newMemRoleRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewRoleUsecase(log, repo, &recordingAuditService{}), repo
}

func TestCreateRoleDuplicateName(t *testing.T) {
	u, _ := newRoleUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	if _, err := u.CreateRole(ctx, actor, &dto.CreateRoleRequest{Name: "laboratorio"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := u.CreateRole(ctx, actor, &dto.CreateRoleRequest{Name: "laboratorio"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestDeleteRoleStillHeld(t *testing.T) {
	u, repo := newRoleUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	created, err := u.CreateRole(ctx, actor, &dto.CreateRoleRequest{Name: "laboratorio"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.userCounts[created.ID] = 2

	if err := u.DeleteRole(ctx, actor, created.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
	if _, ok := repo.roles[created.ID]; !ok {
		t.Error("role must survive a refused delete")
	}

	repo.userCounts[created.ID] = 0
	if err := u.DeleteRole(ctx, actor, created.ID); err != nil {
		t.Errorf("unheld delete: %v", err)
	}
}

func TestUpdateRoleNameTaken(t *testing.T) {
	u, _ := newRoleUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	first, _ := u.CreateRole(ctx, actor, &dto.CreateRoleRequest{Name: "laboratorio"})
	second, _ := u.CreateRole(ctx, actor, &dto.CreateRoleRequest{Name: "farmacia"})

	if _, err := u.UpdateRole(ctx, actor, second.ID, &dto.UpdateRoleRequest{Name: first.Name}); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}
