package usecase

import (
	"context"
	"errors"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/policy"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actor entity.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context, query string) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	MarkCompleted(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	specialtyRepo   repository.SpecialtyRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		specialtyRepo:   specialtyRepo,
		auditService:    auditService,
	}
}

// CreateAppointment resolves every reference per request. A missing or
// inactive patient, a doctor without the medico role or an unknown
// specialty each reject the booking.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actor entity.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.IsActive() {
		return nil, apperrors.ErrValidation
	}

	doctor, err := u.userRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive() || !policy.RequireRole(entity.PrincipalOf(doctor), entity.RoleMedico) {
		return nil, apperrors.ErrValidation
	}

	specialty, err := u.specialtyRepo.FindByID(ctx, req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, apperrors.ErrValidation
	}

	appointment := &entity.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		SpecialtyID: specialty.ID,
		ScheduledAt: req.ScheduledAt,
		Status:      entity.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		if apperrors.IsForeignKey(err, "") {
			return nil, apperrors.ErrValidation
		}
		return nil, err
	}
	appointment.Patient = *patient
	appointment.Doctor = *doctor
	appointment.Specialty = *specialty

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context, query string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, &entity.AppointmentFilter{Query: query})
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) MarkCompleted(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AuditActionAppointmentComplete, (*entity.Appointment).MarkCompleted)
}

// CancelAppointment is a tracked transition rather than a row delete so the
// booking record survives cancellation.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, actor, appointmentID, entity.AuditActionAppointmentCancel, (*entity.Appointment).Cancel)
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, actor entity.Principal, appointmentID uuid.UUID) error {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	oldValue := converter.AppointmentToResponse(appointment)
	affectedRows, err := u.appointmentRepo.Delete(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return apperrors.ErrNotFound
	}

	if err := u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionAppointmentDelete, "appointment", appointmentID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, apperrors.ErrNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) transition(
	ctx context.Context,
	actor entity.Principal,
	appointmentID uuid.UUID,
	action string,
	apply func(*entity.Appointment) error,
) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	oldValue := converter.AppointmentToResponse(appointment)
	if err := apply(appointment); err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			return nil, apperrors.ErrValidation
		}
		return nil, err
	}
	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, &actor.ID, action, "appointment", appointmentID.String(), oldValue, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}
