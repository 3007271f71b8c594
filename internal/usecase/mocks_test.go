package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory repository fakes. They mirror the constraints the real schema
// enforces (unique identification, unique specialty name, unique
// clinical_histories.patient_id) so the usecases exercise the same error
// paths.

func duplicateKey(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// --- patients ---

type memPatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
}

func (r *memPatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	for _, existing := range r.patients {
		if existing.Identification == patient.Identification {
			return duplicateKey("patients_identification_key")
		}
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

func (r *memPatientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	found := *patient
	return &found, nil
}

func (r *memPatientRepo) FindActive(_ context.Context, query string) ([]entity.Patient, error) {
	query = strings.ToLower(query)
	var result []entity.Patient
	for _, patient := range r.patients {
		if !patient.IsActive() {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(patient.Name), query) &&
			!strings.Contains(strings.ToLower(patient.Identification), query) {
			continue
		}
		result = append(result, *patient)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memPatientRepo) Update(_ context.Context, patient *entity.Patient) error {
	for id, existing := range r.patients {
		if id != patient.ID && existing.Identification == patient.Identification {
			return duplicateKey("patients_identification_key")
		}
	}
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

// --- clinical histories ---

type memHistoryRepo struct {
	histories   map[uuid.UUID]*entity.ClinicalHistory
	byPatient   map[uuid.UUID]uuid.UUID
	entries     map[uuid.UUID]*entity.HistoryEntry
	versions    map[uuid.UUID]*entity.HistoryVersion
	createCalls int

	// Injected store failures for the snapshot transactions. Like the real
	// transaction, a failure leaves neither the version nor the entry
	// touched.
	failUpdateEntry error
	failDeleteEntry error
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{
		histories: map[uuid.UUID]*entity.ClinicalHistory{},
		byPatient: map[uuid.UUID]uuid.UUID{},
		entries:   map[uuid.UUID]*entity.HistoryEntry{},
		versions:  map[uuid.UUID]*entity.HistoryVersion{},
	}
}

func (r *memHistoryRepo) GetOrCreate(_ context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	if historyID, ok := r.byPatient[patientID]; ok {
		found := *r.histories[historyID]
		return &found, nil
	}
	history := &entity.ClinicalHistory{ID: uuid.New(), PatientID: patientID, UpdatedAt: time.Now()}
	r.histories[history.ID] = history
	r.byPatient[patientID] = history.ID
	r.createCalls++
	found := *history
	return &found, nil
}

func (r *memHistoryRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) (*entity.ClinicalHistory, error) {
	historyID, ok := r.byPatient[patientID]
	if !ok {
		return nil, nil
	}
	found := *r.histories[historyID]
	return &found, nil
}

func (r *memHistoryRepo) CreateEntry(_ context.Context, entry *entity.HistoryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	stored := *entry
	r.entries[entry.ID] = &stored
	return nil
}

func (r *memHistoryRepo) FindEntryByID(_ context.Context, id uuid.UUID) (*entity.HistoryEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	found := *entry
	if history, ok := r.histories[entry.HistoryID]; ok {
		found.History = *history
	}
	return &found, nil
}

func (r *memHistoryRepo) UpdateEntryWithSnapshot(_ context.Context, entry *entity.HistoryEntry, version *entity.HistoryVersion) error {
	if r.failUpdateEntry != nil {
		return r.failUpdateEntry
	}
	r.storeVersion(version)
	stored := *entry
	stored.History = entity.ClinicalHistory{}
	r.entries[entry.ID] = &stored
	return nil
}

func (r *memHistoryRepo) DeleteEntryWithSnapshot(_ context.Context, entryID uuid.UUID, version *entity.HistoryVersion) (int64, error) {
	if r.failDeleteEntry != nil {
		return 0, r.failDeleteEntry
	}
	if _, ok := r.entries[entryID]; !ok {
		return 0, nil
	}
	r.storeVersion(version)
	delete(r.entries, entryID)
	return 1, nil
}

func (r *memHistoryRepo) ListEntries(_ context.Context, historyID uuid.UUID, since *time.Time) ([]entity.HistoryEntry, error) {
	var result []entity.HistoryEntry
	for _, entry := range r.entries {
		if entry.HistoryID != historyID {
			continue
		}
		if since != nil && entry.CreatedAt.Before(*since) {
			continue
		}
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *memHistoryRepo) storeVersion(version *entity.HistoryVersion) {
	if version.ID == uuid.Nil {
		version.ID = uuid.New()
	}
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now()
	}
	stored := *version
	r.versions[version.ID] = &stored
}

func (r *memHistoryRepo) FindVersionByID(_ context.Context, id uuid.UUID) (*entity.HistoryVersion, error) {
	version, ok := r.versions[id]
	if !ok {
		return nil, nil
	}
	found := *version
	if history, ok := r.histories[version.HistoryID]; ok {
		found.History = *history
	}
	return &found, nil
}

func (r *memHistoryRepo) ListVersions(_ context.Context, historyID uuid.UUID) ([]entity.HistoryVersion, error) {
	var result []entity.HistoryVersion
	for _, version := range r.versions {
		if version.HistoryID != historyID {
			continue
		}
		result = append(result, *version)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// --- specialties ---

type memSpecialtyRepo struct {
	specialties       map[int]*entity.Specialty
	appointmentCounts map[int]int64
	nextID            int
}

func newMemSpecialtyRepo() *memSpecialtyRepo {
	return &memSpecialtyRepo{
		specialties:       map[int]*entity.Specialty{},
		appointmentCounts: map[int]int64{},
	}
}

func (r *memSpecialtyRepo) Create(_ context.Context, specialty *entity.Specialty) error {
	for _, existing := range r.specialties {
		if existing.Name == specialty.Name {
			return duplicateKey("specialties_name_key")
		}
	}
	r.nextID++
	specialty.ID = r.nextID
	stored := *specialty
	r.specialties[specialty.ID] = &stored
	return nil
}

func (r *memSpecialtyRepo) FindByID(_ context.Context, id int) (*entity.Specialty, error) {
	specialty, ok := r.specialties[id]
	if !ok {
		return nil, nil
	}
	found := *specialty
	return &found, nil
}

func (r *memSpecialtyRepo) FindByName(_ context.Context, name string) (*entity.Specialty, error) {
	for _, specialty := range r.specialties {
		if specialty.Name == name {
			found := *specialty
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memSpecialtyRepo) FindAll(_ context.Context) ([]entity.Specialty, error) {
	var result []entity.Specialty
	for _, specialty := range r.specialties {
		result = append(result, *specialty)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memSpecialtyRepo) Update(_ context.Context, specialty *entity.Specialty) error {
	for id, existing := range r.specialties {
		if id != specialty.ID && existing.Name == specialty.Name {
			return duplicateKey("specialties_name_key")
		}
	}
	stored := *specialty
	r.specialties[specialty.ID] = &stored
	return nil
}

func (r *memSpecialtyRepo) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := r.specialties[id]; !ok {
		return 0, nil
	}
	delete(r.specialties, id)
	return 1, nil
}

func (r *memSpecialtyRepo) CountAppointments(_ context.Context, specialtyID int) (int64, error) {
	return r.appointmentCounts[specialtyID], nil
}

// --- roles ---

type memRoleRepo struct {
	roles      map[int]*entity.Role
	userCounts map[int]int64
	nextID     int
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{
		roles:      map[int]*entity.Role{},
		userCounts: map[int]int64{},
	}
}

func (r *memRoleRepo) Create(_ context.Context, role *entity.Role) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return duplicateKey("roles_name_key")
		}
	}
	r.nextID++
	role.ID = r.nextID
	stored := *role
	r.roles[role.ID] = &stored
	return nil
}

func (r *memRoleRepo) FindByID(_ context.Context, id int) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	found := *role
	return &found, nil
}

func (r *memRoleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			found := *role
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memRoleRepo) FindAll(_ context.Context) ([]entity.Role, error) {
	var result []entity.Role
	for _, role := range r.roles {
		result = append(result, *role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memRoleRepo) Update(_ context.Context, role *entity.Role) error {
	for id, existing := range r.roles {
		if id != role.ID && existing.Name == role.Name {
			return duplicateKey("roles_name_key")
		}
	}
	stored := *role
	r.roles[role.ID] = &stored
	return nil
}

func (r *memRoleRepo) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := r.roles[id]; !ok {
		return 0, nil
	}
	delete(r.roles, id)
	return 1, nil
}

func (r *memRoleRepo) CountUsers(_ context.Context, roleID int) (int64, error) {
	return r.userCounts[roleID], nil
}

// --- users ---

type memUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return duplicateKey("users_email_key")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (r *memUserRepo) FindNonAdmin(_ context.Context) ([]entity.User, error) {
	var result []entity.User
	for _, user := range r.users {
		if user.Role.Name == entity.RoleAdmin {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memUserRepo) FindActiveByRole(_ context.Context, roleName string) ([]entity.User, error) {
	var result []entity.User
	for _, user := range r.users {
		if user.Role.Name == roleName && user.IsActive() {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, roleName string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role.Name == roleName {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return duplicateKey("users_email_key")
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

// --- appointments ---

type memAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (r *memAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *memAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *appointment
	return &found, nil
}

func (r *memAppointmentRepo) FindAll(_ context.Context, _ *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appointment := range r.appointments {
		result = append(result, *appointment)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduledAt.After(result[j].ScheduledAt) })
	return result, nil
}

func (r *memAppointmentRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (r *memAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

// --- audit ---

// recordingAuditService captures action names so tests can assert the
// trail without a database.
type recordingAuditService struct {
	actions []string
}

func (s *recordingAuditService) LogCreate(_ context.Context, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *recordingAuditService) LogUpdate(_ context.Context, _ *uuid.UUID, action, _, _ string, _, _ interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *recordingAuditService) LogDelete(_ context.Context, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *recordingAuditService) LogAction(_ context.Context, _ *uuid.UUID, action string, _ entity.JSON) error {
	s.actions = append(s.actions, action)
	return nil
}
