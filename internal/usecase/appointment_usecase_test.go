package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type appointmentFixture struct {
	usecase     AppointmentUsecase
	patient     *entity.Patient
	doctor      *entity.User
	specialty   *entity.Specialty
	patientRepo *memPatientRepo
	userRepo    *memUserRepo
	actor       entity.Principal
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	appointmentRepo := newMemAppointmentRepo()
	patientRepo := newMemPatientRepo()
	userRepo := newMemUserRepo()
	specialtyRepo := newMemSpecialtyRepo()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ctx := context.Background()
	active := true

	patient := &entity.Patient{Name: "Ana Torres", Identification: "CC-1001", Active: &active}
	if err := patientRepo.Create(ctx, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	doctorActive := true
	doctor := &entity.User{
		Name:   "Dra. Rojas",
		Email:  "rojas@clinic.local",
		Active: &doctorActive,
		Role:   entity.Role{Name: entity.RoleMedico},
	}
	if err := userRepo.Create(ctx, doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}

	specialty := &entity.Specialty{Name: "Cardiologia"}
	if err := specialtyRepo.Create(ctx, specialty); err != nil {
		t.Fatalf("seed specialty: %v", err)
	}

	return &appointmentFixture{
		usecase:     NewAppointmentUsecase(log, appointmentRepo, patientRepo, userRepo, specialtyRepo, &recordingAuditService{}),
		patient:     patient,
		doctor:      doctor,
		specialty:   specialty,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		actor:       entity.Principal{ID: uuid.New(), Name: "Recepcion", Role: entity.RoleRecepcionista},
	}
}

func (f *appointmentFixture) request() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:   f.patient.ID,
		DoctorID:    f.doctor.ID,
		SpecialtyID: f.specialty.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	created, err := f.usecase.CreateAppointment(context.Background(), f.actor, f.request())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != string(entity.AppointmentStatusPending) {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.PatientName != "Ana Torres" || created.DoctorName != "Dra. Rojas" {
		t.Error("response must carry resolved names")
	}
}

func TestCreateAppointmentRejectsBadReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *appointmentFixture, req *dto.CreateAppointmentRequest)
	}{
		{"unknown patient", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			req.PatientID = uuid.New()
		}},
		{"inactive patient", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			inactive := false
			f.patient.Active = &inactive
		}},
		{"unknown doctor", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			req.DoctorID = uuid.New()
		}},
		{"inactive doctor", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			inactive := false
			f.doctor.Active = &inactive
		}},
		{"doctor without medico role", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			f.doctor.Role = entity.Role{Name: entity.RoleEnfermeria}
		}},
		{"unknown specialty", func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
			req.SpecialtyID = 99
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			ctx := context.Background()
			req := f.request()
			tt.mutate(f, req)
			// Entity mutations touch the seeded copies, push them back.
			f.patientRepo.Update(ctx, f.patient)
			f.userRepo.Update(ctx, f.doctor)

			if _, err := f.usecase.CreateAppointment(ctx, f.actor, req); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestAppointmentTransitions(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := f.usecase.CreateAppointment(ctx, f.actor, f.request())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed, err := f.usecase.MarkCompleted(ctx, f.actor, created.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != string(entity.AppointmentStatusCompleted) {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Completed appointments cannot be cancelled.
	if _, err := f.usecase.CancelAppointment(ctx, f.actor, created.ID); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("cancel after complete: err = %v, want ErrValidation", err)
	}
}

func TestCancelAppointmentKeepsRecord(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := f.usecase.CreateAppointment(ctx, f.actor, f.request())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled, err := f.usecase.CancelAppointment(ctx, f.actor, created.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != string(entity.AppointmentStatusCancelled) {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	// Cancellation is a status change, the booking stays retrievable.
	got, err := f.usecase.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after cancel: %v", err)
	}
	if got.Status != string(entity.AppointmentStatusCancelled) {
		t.Errorf("stored status = %q", got.Status)
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	if _, err := f.usecase.MarkCompleted(context.Background(), f.actor, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
