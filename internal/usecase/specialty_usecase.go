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

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, actor entity.Principal, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, actor entity.Principal, specialtyID int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, actor entity.Principal, specialtyID int) error
}

type specialtyUsecase struct {
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewSpecialtyUsecase(
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		log:           log,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, actor entity.Principal, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	specialty := &entity.Specialty{Name: name}
	if err := u.specialtyRepo.Create(ctx, specialty); err != nil {
		u.log.Warnf("Failed to create specialty: %+v", err)
		if apperrors.IsDuplicateKey(err, "name") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionSpecialtyCreate, "specialty", specialty.Name, converter.SpecialtyToResponse(specialty)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	responses := converter.SpecialtiesToResponses(specialties)
	return &dto.SpecialtyListResponse{
		Specialties: responses,
		Total:       len(responses),
	}, nil
}

func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, actor entity.Principal, specialtyID int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	specialty, err := u.specialtyRepo.FindByID(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, apperrors.ErrNotFound
	}

	existing, err := u.specialtyRepo.FindByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to check specialty name: %+v", err)
		return nil, err
	}
	if existing != nil && existing.ID != specialtyID {
		return nil, apperrors.ErrConflict
	}

	oldValue := converter.SpecialtyToResponse(specialty)
	specialty.Name = name
	if err := u.specialtyRepo.Update(ctx, specialty); err != nil {
		u.log.Warnf("Failed to update specialty: %+v", err)
		if apperrors.IsDuplicateKey(err, "name") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionSpecialtyUpdate, "specialty", specialty.Name, oldValue, converter.SpecialtyToResponse(specialty)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

// DeleteSpecialty refuses to remove a specialty any appointment still
// references.
func (u *specialtyUsecase) DeleteSpecialty(ctx context.Context, actor entity.Principal, specialtyID int) error {
	specialty, err := u.specialtyRepo.FindByID(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return err
	}
	if specialty == nil {
		return apperrors.ErrNotFound
	}

	references, err := u.specialtyRepo.CountAppointments(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to count specialty appointments: %+v", err)
		return err
	}
	if references > 0 {
		return apperrors.ErrConflict
	}

	oldValue := converter.SpecialtyToResponse(specialty)
	affectedRows, err := u.specialtyRepo.Delete(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to delete specialty: %+v", err)
		if apperrors.IsForeignKey(err, "specialty") {
			return apperrors.ErrConflict
		}
		return err
	}
	if affectedRows == 0 {
		return apperrors.ErrNotFound
	}

	if err := u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionSpecialtyDelete, "specialty", oldValue.Name, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
