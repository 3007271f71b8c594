package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/report"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ReportUsecase interface {
	PatientRoster(ctx context.Context) (*report.Document, error)
	AppointmentLog(ctx context.Context, query string) (*report.Document, error)
	// AppointmentTicket renders the printable slip for a single booking.
	AppointmentTicket(ctx context.Context, appointmentID uuid.UUID) (*report.Document, error)
	SpecialtyList(ctx context.Context) (*report.Document, error)
	// ClinicalHistory renders the full record, or only the recent window
	// when recentOnly is set.
	ClinicalHistory(ctx context.Context, patientID uuid.UUID, recentOnly bool) (*report.Document, error)
}

type reportUsecase struct {
	log             *logrus.Logger
	renderer        report.Renderer
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	specialtyRepo   repository.SpecialtyRepository
	historyRepo     repository.HistoryRepository
}

func NewReportUsecase(
	log *logrus.Logger,
	renderer report.Renderer,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	specialtyRepo repository.SpecialtyRepository,
	historyRepo repository.HistoryRepository,
) ReportUsecase {
	return &reportUsecase{
		log:             log,
		renderer:        renderer,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		specialtyRepo:   specialtyRepo,
		historyRepo:     historyRepo,
	}
}

func displayBirthDate(birthDate *time.Time) string {
	if birthDate == nil {
		return "Unknown"
	}
	return birthDate.Format(birthDateLayout)
}

func displayAge(patient *entity.Patient, asOf time.Time) string {
	age := patient.AgeAt(asOf)
	if age < 0 {
		return "Unknown"
	}
	return strconv.Itoa(age)
}

func (u *reportUsecase) PatientRoster(ctx context.Context) (*report.Document, error) {
	patients, err := u.patientRepo.FindActive(ctx, "")
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	now := time.Now()
	data := &report.PatientRosterData{GeneratedAt: now}
	for i := range patients {
		p := &patients[i]
		data.Patients = append(data.Patients, report.PatientRow{
			Name:           p.Name,
			Identification: p.Identification,
			Phone:          p.Phone,
			Email:          p.Email,
			BirthDate:      displayBirthDate(p.BirthDate),
			Age:            displayAge(p, now),
			Active:         p.IsActive(),
		})
	}

	return u.render(report.TemplatePatientRoster, "patient-roster", now, data)
}

func (u *reportUsecase) AppointmentLog(ctx context.Context, query string) (*report.Document, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, &entity.AppointmentFilter{Query: query})
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	now := time.Now()
	data := &report.AppointmentLogData{GeneratedAt: now, Query: query}
	for i := range appointments {
		a := &appointments[i]
		data.Appointments = append(data.Appointments, report.AppointmentRow{
			PatientName:    a.Patient.Name,
			Identification: a.Patient.Identification,
			DoctorName:     a.Doctor.Name,
			SpecialtyName:  a.Specialty.Name,
			ScheduledAt:    a.ScheduledAt,
			Status:         string(a.Status),
		})
	}

	return u.render(report.TemplateAppointmentLog, "appointment-log", now, data)
}

func (u *reportUsecase) AppointmentTicket(ctx context.Context, appointmentID uuid.UUID) (*report.Document, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	code := ticketCode(appointment.ID)
	data := &report.AppointmentTicketData{
		GeneratedAt:    now,
		TicketCode:     code,
		PatientName:    appointment.Patient.Name,
		Identification: appointment.Patient.Identification,
		DoctorName:     appointment.Doctor.Name,
		SpecialtyName:  appointment.Specialty.Name,
		ScheduledAt:    appointment.ScheduledAt,
		Status:         string(appointment.Status),
	}

	name := fmt.Sprintf("appointment-ticket-%s", strings.ToLower(code))
	return u.render(report.TemplateAppointmentTicket, name, now, data)
}

// ticketCode is the short human-readable reference printed on the slip.
func ticketCode(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (u *reportUsecase) SpecialtyList(ctx context.Context) (*report.Document, error) {
	specialties, err := u.specialtyRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	now := time.Now()
	data := &report.SpecialtyListData{GeneratedAt: now}
	for i := range specialties {
		count, err := u.specialtyRepo.CountAppointments(ctx, specialties[i].ID)
		if err != nil {
			u.log.Warnf("Failed to count specialty appointments: %+v", err)
			return nil, err
		}
		data.Specialties = append(data.Specialties, report.SpecialtyRow{
			Name:         specialties[i].Name,
			Appointments: count,
		})
	}

	return u.render(report.TemplateSpecialtyList, "specialty-list", now, data)
}

func (u *reportUsecase) ClinicalHistory(ctx context.Context, patientID uuid.UUID, recentOnly bool) (*report.Document, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	data := &report.ClinicalHistoryData{
		GeneratedAt:    now,
		PatientName:    patient.Name,
		Identification: patient.Identification,
		BirthDate:      displayBirthDate(patient.BirthDate),
		Age:            displayAge(patient, now),
		Sex:            patient.Sex,
		RecentOnly:     recentOnly,
		WindowDays:     int(RecentEntriesWindow.Hours() / 24),
	}

	history, err := u.historyRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find clinical history: %+v", err)
		return nil, err
	}
	if history != nil {
		var since *time.Time
		if recentOnly {
			cutoff := now.Add(-RecentEntriesWindow)
			since = &cutoff
		}
		entries, err := u.historyRepo.ListEntries(ctx, history.ID, since)
		if err != nil {
			u.log.Warnf("Failed to list history entries: %+v", err)
			return nil, err
		}
		for i := range entries {
			data.Entries = append(data.Entries, report.HistoryEntryRow{
				AuthorName: entries[i].Author.Name,
				CreatedAt:  entries[i].CreatedAt,
				Content:    entries[i].Content,
			})
		}
	}

	name := fmt.Sprintf("clinical-history-%s", patient.Identification)
	return u.render(report.TemplateClinicalHistory, name, now, data)
}

func (u *reportUsecase) render(template, name string, generatedAt time.Time, data interface{}) (*report.Document, error) {
	body, err := u.renderer.Render(template, data)
	if err != nil {
		u.log.Warnf("Failed to render report: %+v", err)
		return nil, err
	}
	return &report.Document{
		Filename:    fmt.Sprintf("%s-%s.html", name, generatedAt.Format("20060102-150405")),
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}, nil
}
