package report

import "time"

// Document is a rendered report ready to serve.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// View models passed to the templates. They are flat on purpose so
// templates never reach into entities.

type PatientRow struct {
	Name           string
	Identification string
	Phone          string
	Email          string
	BirthDate      string
	Age            string
	Active         bool
}

type PatientRosterData struct {
	GeneratedAt time.Time
	Patients    []PatientRow
}

type AppointmentRow struct {
	PatientName    string
	Identification string
	DoctorName     string
	SpecialtyName  string
	ScheduledAt    time.Time
	Status         string
}

type AppointmentLogData struct {
	GeneratedAt  time.Time
	Query        string
	Appointments []AppointmentRow
}

// AppointmentTicketData backs the printable slip handed to the patient at
// booking time.
type AppointmentTicketData struct {
	GeneratedAt    time.Time
	TicketCode     string
	PatientName    string
	Identification string
	DoctorName     string
	SpecialtyName  string
	ScheduledAt    time.Time
	Status         string
}

type SpecialtyRow struct {
	Name         string
	Appointments int64
}

type SpecialtyListData struct {
	GeneratedAt time.Time
	Specialties []SpecialtyRow
}

type HistoryEntryRow struct {
	AuthorName string
	CreatedAt  time.Time
	Content    string
}

type ClinicalHistoryData struct {
	GeneratedAt    time.Time
	PatientName    string
	Identification string
	BirthDate      string
	Age            string
	Sex            string
	RecentOnly     bool
	WindowDays     int
	Entries        []HistoryEntryRow
}
