package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type historyFixture struct {
	usecase     HistoryUsecase
	patientRepo *memPatientRepo
	historyRepo *memHistoryRepo
	audit       *recordingAuditService
	patient     *entity.Patient
	author      entity.Principal
}

func newHistoryFixture(t *testing.T) *historyFixture {
	t.Helper()

	patientRepo := newMemPatientRepo()
	historyRepo := newMemHistoryRepo()
	audit := &recordingAuditService{}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	active := true
	patient := &entity.Patient{Name: "Ana Torres", Identification: "CC-1001", Active: &active}
	if err := patientRepo.Create(context.Background(), patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	return &historyFixture{
		usecase:     NewHistoryUsecase(log, patientRepo, historyRepo, audit),
		patientRepo: patientRepo,
		historyRepo: historyRepo,
		audit:       audit,
		patient:     patient,
		author:      entity.Principal{ID: uuid.New(), Name: "Dra. Rojas", Role: entity.RoleMedico},
	}
}

func TestGetHistoryCreatesLazilyOnce(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	first, err := f.usecase.GetHistory(ctx, f.patient.ID, nil)
	if err != nil {
		t.Fatalf("first GetHistory: %v", err)
	}
	second, err := f.usecase.GetHistory(ctx, f.patient.ID, nil)
	if err != nil {
		t.Fatalf("second GetHistory: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("history IDs differ: %s vs %s", first.ID, second.ID)
	}
	if f.historyRepo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", f.historyRepo.createCalls)
	}
}

func TestGetHistoryUnknownPatient(t *testing.T) {
	f := newHistoryFixture(t)

	_, err := f.usecase.GetHistory(context.Background(), uuid.New(), nil)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if f.historyRepo.createCalls != 0 {
		t.Error("no history must be created for an unknown patient")
	}
}

func TestAddEntryEmptyContent(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, content)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("AddEntry(%q) err = %v, want ErrValidation", content, err)
		}
	}
	if len(f.historyRepo.entries) != 0 {
		t.Errorf("entries persisted = %d, want 0", len(f.historyRepo.entries))
	}
}

func TestAddEntryVisibleImmediately(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "  Control de rutina  ")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.Content != "Control de rutina" {
		t.Errorf("content = %q, want trimmed", entry.Content)
	}
	if entry.AuthorID != f.author.ID {
		t.Errorf("author = %s, want %s", entry.AuthorID, f.author.ID)
	}

	history, err := f.usecase.GetHistory(ctx, f.patient.ID, nil)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if history.Total != 1 || history.Entries[0].ID != entry.ID {
		t.Error("entry not visible in listing")
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	history, _ := f.historyRepo.GetOrCreate(ctx, f.patient.ID)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		entry := &entity.HistoryEntry{
			HistoryID: history.ID,
			AuthorID:  f.author.ID,
			Content:   "nota",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		f.historyRepo.CreateEntry(ctx, entry)
		ids = append(ids, entry.ID)
	}

	got, err := f.usecase.GetHistory(ctx, f.patient.ID, nil)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if got.Total != 3 {
		t.Fatalf("total = %d, want 3", got.Total)
	}
	for i, want := range []uuid.UUID{ids[2], ids[1], ids[0]} {
		if got.Entries[i].ID != want {
			t.Errorf("entry %d = %s, want %s", i, got.Entries[i].ID, want)
		}
	}
}

func TestListEntriesSinceWindow(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	history, _ := f.historyRepo.GetOrCreate(ctx, f.patient.ID)
	old := &entity.HistoryEntry{
		HistoryID: history.ID,
		AuthorID:  f.author.ID,
		Content:   "antigua",
		CreatedAt: time.Now().Add(-40 * 24 * time.Hour),
	}
	recent := &entity.HistoryEntry{
		HistoryID: history.ID,
		AuthorID:  f.author.ID,
		Content:   "reciente",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	f.historyRepo.CreateEntry(ctx, old)
	f.historyRepo.CreateEntry(ctx, recent)

	since := time.Now().Add(-RecentEntriesWindow)
	got, err := f.usecase.GetHistory(ctx, f.patient.ID, &since)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if got.Total != 1 || got.Entries[0].ID != recent.ID {
		t.Errorf("windowed listing = %d entries, want only the recent one", got.Total)
	}
}

func TestEditEntryNonAuthorForbidden(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "original")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	intruder := entity.Principal{ID: uuid.New(), Name: "Otro", Role: entity.RoleMedico}
	_, err = f.usecase.EditEntry(ctx, intruder, f.patient.ID, entry.ID, "alterado")
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	stored := f.historyRepo.entries[entry.ID]
	if stored.Content != "original" {
		t.Errorf("content = %q, must stay unchanged", stored.Content)
	}
	if len(f.historyRepo.versions) != 0 {
		t.Error("no version may be recorded for a rejected edit")
	}
}

// An administrator who is not the author gets the same denial.
func TestEditEntryAdminHasNoOverride(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "original")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	admin := entity.Principal{ID: uuid.New(), Name: "Admin", Role: entity.RoleAdmin}
	if _, err := f.usecase.EditEntry(ctx, admin, f.patient.ID, entry.ID, "alterado"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := f.usecase.DeleteEntry(ctx, admin, f.patient.ID, entry.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("delete err = %v, want ErrForbidden", err)
	}
}

func TestEditEntryCrossPatientNotFound(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "original")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	active := true
	other := &entity.Patient{Name: "Luis Vega", Identification: "CC-2002", Active: &active}
	f.patientRepo.Create(ctx, other)

	// The mismatch must read as not-found, never as forbidden, so entry
	// IDs cannot be probed across patients.
	_, err = f.usecase.EditEntry(ctx, f.author, other.ID, entry.ID, "alterado")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEditEntrySnapshotsPriorContent(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "primera redaccion")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	updated, err := f.usecase.EditEntry(ctx, f.author, f.patient.ID, entry.ID, "segunda redaccion")
	if err != nil {
		t.Fatalf("EditEntry: %v", err)
	}
	if updated.Content != "segunda redaccion" {
		t.Errorf("content = %q", updated.Content)
	}

	versions, err := f.usecase.ListVersions(ctx, f.patient.ID)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if versions.Total != 1 {
		t.Fatalf("versions = %d, want 1", versions.Total)
	}
	if versions.Versions[0].Content != "primera redaccion" {
		t.Errorf("snapshot content = %q, want the prior text", versions.Versions[0].Content)
	}
	if versions.Versions[0].RecordedByID != f.author.ID {
		t.Errorf("snapshot recorded by %s, want actor", versions.Versions[0].RecordedByID)
	}
}

func TestDeleteEntrySnapshotsContent(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "texto a eliminar")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	if err := f.usecase.DeleteEntry(ctx, f.author, f.patient.ID, entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	if _, ok := f.historyRepo.entries[entry.ID]; ok {
		t.Error("entry must be removed")
	}

	versions, err := f.usecase.ListVersions(ctx, f.patient.ID)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if versions.Total != 1 || versions.Versions[0].Content != "texto a eliminar" {
		t.Error("deleted content must survive in the version trail")
	}
}

func TestEditEntryFailedWriteLeavesNoVersion(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "original")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	storeErr := errors.New("connection reset")
	f.historyRepo.failUpdateEntry = storeErr

	if _, err := f.usecase.EditEntry(ctx, f.author, f.patient.ID, entry.ID, "alterado"); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want the store error", err)
	}
	if f.historyRepo.entries[entry.ID].Content != "original" {
		t.Error("content must stay unchanged after a failed edit")
	}
	if len(f.historyRepo.versions) != 0 {
		t.Errorf("versions persisted after failed edit: %d, want 0", len(f.historyRepo.versions))
	}
}

func TestDeleteEntryFailedWriteLeavesNoVersion(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "texto")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	storeErr := errors.New("connection reset")
	f.historyRepo.failDeleteEntry = storeErr

	if err := f.usecase.DeleteEntry(ctx, f.author, f.patient.ID, entry.ID); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want the store error", err)
	}
	if _, ok := f.historyRepo.entries[entry.ID]; !ok {
		t.Error("entry must survive a failed delete")
	}
	if len(f.historyRepo.versions) != 0 {
		t.Errorf("versions persisted after failed delete: %d, want 0", len(f.historyRepo.versions))
	}
}

func TestGetVersionCrossPatientNotFound(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	entry, err := f.usecase.AddEntry(ctx, f.author, f.patient.ID, "contenido")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if _, err := f.usecase.EditEntry(ctx, f.author, f.patient.ID, entry.ID, "nuevo"); err != nil {
		t.Fatalf("EditEntry: %v", err)
	}

	versions, _ := f.usecase.ListVersions(ctx, f.patient.ID)
	versionID := versions.Versions[0].ID

	active := true
	other := &entity.Patient{Name: "Luis Vega", Identification: "CC-2002", Active: &active}
	f.patientRepo.Create(ctx, other)

	if _, err := f.usecase.GetVersion(ctx, other.ID, versionID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := f.usecase.GetVersion(ctx, f.patient.ID, versionID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
}
