package usecase

import (
	"context"
	"time"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const birthDateLayout = "2006-01-02"

type PatientUsecase interface {
	CreatePatient(ctx context.Context, actor entity.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, query string) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, actor entity.Principal, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeactivatePatient(ctx context.Context, actor entity.Principal, patientID uuid.UUID) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, actor entity.Principal, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	active := true
	patient := &entity.Patient{
		Name:           req.Name,
		Identification: req.Identification,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		BirthDate:      birthDate,
		Sex:            req.Sex,
		Active:         &active,
	}
	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		if apperrors.IsDuplicateKey(err, "identification") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

// GetPatient resolves by id regardless of the active flag so historical
// references stay reachable.
func (u *patientUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.ErrNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// GetAllPatients lists active patients only, optionally narrowed by a
// name/identification search.
func (u *patientUsecase) GetAllPatients(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindActive(ctx, query)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	responses := converter.PatientsToResponses(patients)
	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actor entity.Principal, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.ErrNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Identification != "" {
		patient.Identification = req.Identification
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Sex != "" {
		patient.Sex = req.Sex
	}
	if req.BirthDate != "" {
		birthDate, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = birthDate
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		if apperrors.IsDuplicateKey(err, "identification") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

// DeactivatePatient soft-deletes: the row stays so appointments and the
// clinical history keep their references.
func (u *patientUsecase) DeactivatePatient(ctx context.Context, actor entity.Principal, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return apperrors.ErrNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	inactive := false
	patient.Active = &inactive
	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to deactivate patient: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionPatientDeactivate, "patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func parseBirthDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(birthDateLayout, value)
	if err != nil {
		return nil, apperrors.ErrValidation
	}
	return &parsed, nil
}
