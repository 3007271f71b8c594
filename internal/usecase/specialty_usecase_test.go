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

func newSpecialtyUsecase() (SpecialtyUsecase, *memSpecialtyRepo) {
	repo := newMemSpecialtyRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewSpecialtyUsecase(log, repo, &recordingAuditService{}), repo
}

func TestCreateSpecialtyDuplicateName(t *testing.T) {
	u, _ := newSpecialtyUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	if _, err := u.CreateSpecialty(ctx, actor, &dto.CreateSpecialtyRequest{Name: "Cardiologia"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := u.CreateSpecialty(ctx, actor, &dto.CreateSpecialtyRequest{Name: "Cardiologia"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestCreateSpecialtyBlankName(t *testing.T) {
	u, _ := newSpecialtyUsecase()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	_, err := u.CreateSpecialty(context.Background(), actor, &dto.CreateSpecialtyRequest{Name: "   "})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateSpecialtyNameTaken(t *testing.T) {
	u, _ := newSpecialtyUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	first, _ := u.CreateSpecialty(ctx, actor, &dto.CreateSpecialtyRequest{Name: "Cardiologia"})
	second, _ := u.CreateSpecialty(ctx, actor, &dto.CreateSpecialtyRequest{Name: "Pediatria"})

	if _, err := u.UpdateSpecialty(ctx, actor, second.ID, &dto.UpdateSpecialtyRequest{Name: first.Name}); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// Renaming to its own current name is not a conflict.
	if _, err := u.UpdateSpecialty(ctx, actor, second.ID, &dto.UpdateSpecialtyRequest{Name: second.Name}); err != nil {
		t.Errorf("self rename: %v", err)
	}
}

func TestDeleteSpecialtyReferencedByAppointments(t *testing.T) {
	u, repo := newSpecialtyUsecase()
	ctx := context.Background()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	created, err := u.CreateSpecialty(ctx, actor, &dto.CreateSpecialtyRequest{Name: "Cardiologia"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.appointmentCounts[created.ID] = 3

	if err := u.DeleteSpecialty(ctx, actor, created.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
	if _, ok := repo.specialties[created.ID]; !ok {
		t.Error("specialty must survive a refused delete")
	}

	repo.appointmentCounts[created.ID] = 0
	if err := u.DeleteSpecialty(ctx, actor, created.ID); err != nil {
		t.Errorf("unreferenced delete: %v", err)
	}
}

func TestDeleteSpecialtyUnknown(t *testing.T) {
	u, _ := newSpecialtyUsecase()
	actor := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	if err := u.DeleteSpecialty(context.Background(), actor, 99); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
