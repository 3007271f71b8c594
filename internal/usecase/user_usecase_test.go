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
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	usecase  UserUsecase
	userRepo *memUserRepo
	roleRepo *memRoleRepo
	medico   *entity.Role
	actor    entity.Principal
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	userRepo := newMemUserRepo()
	roleRepo := newMemRoleRepo()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	medico := &entity.Role{Name: entity.RoleMedico}
	if err := roleRepo.Create(context.Background(), medico); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	return &userFixture{
		usecase:  NewUserUsecase(log, userRepo, roleRepo, &recordingAuditService{}),
		userRepo: userRepo,
		roleRepo: roleRepo,
		medico:   medico,
		actor:    entity.Principal{ID: uuid.New(), Name: "Admin", Role: entity.RoleAdmin},
	}
}

func TestCreateUserIssuesTemporaryPassword(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.usecase.CreateUser(context.Background(), f.actor, &dto.CreateUserRequest{
		Name:   "Dra. Rojas",
		Email:  "Rojas@Clinic.Local",
		RoleID: f.medico.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.TemporaryPassword == "" {
		t.Fatal("temporary password must be returned on creation")
	}
	if created.User.Email != "rojas@clinic.local" {
		t.Errorf("email = %q, want lowercased", created.User.Email)
	}

	stored := f.userRepo.users[created.User.ID]
	if stored.PasswordChanged {
		t.Error("new accounts must be forced to change the password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(created.TemporaryPassword)); err != nil {
		t.Error("stored hash must match the returned temporary password")
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.usecase.CreateUser(context.Background(), f.actor, &dto.CreateUserRequest{
		Name:   "Dra. Rojas",
		Email:  "rojas@clinic.local",
		RoleID: 99,
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	req := &dto.CreateUserRequest{Name: "Dra. Rojas", Email: "rojas@clinic.local", RoleID: f.medico.ID}
	if _, err := f.usecase.CreateUser(ctx, f.actor, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.usecase.CreateUser(ctx, f.actor, &dto.CreateUserRequest{Name: "Otra", Email: "rojas@clinic.local", RoleID: f.medico.ID})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestResetPasswordForcesChange(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.usecase.CreateUser(ctx, f.actor, &dto.CreateUserRequest{
		Name:   "Dra. Rojas",
		Email:  "rojas@clinic.local",
		RoleID: f.medico.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Simulate a completed first login.
	stored := f.userRepo.users[created.User.ID]
	stored.PasswordChanged = true

	reset, err := f.usecase.ResetPassword(ctx, f.actor, created.User.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.TemporaryPassword == "" || reset.TemporaryPassword == created.TemporaryPassword {
		t.Error("reset must issue a fresh temporary password")
	}

	stored = f.userRepo.users[created.User.ID]
	if stored.PasswordChanged {
		t.Error("reset must force a password change on next login")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(reset.TemporaryPassword)); err != nil {
		t.Error("stored hash must match the new temporary password")
	}
}

func TestToggleActiveFlips(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	created, err := f.usecase.CreateUser(ctx, f.actor, &dto.CreateUserRequest{
		Name:   "Dra. Rojas",
		Email:  "rojas@clinic.local",
		RoleID: f.medico.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := f.usecase.ToggleActive(ctx, f.actor, created.User.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.Active == nil || *toggled.Active {
		t.Error("first toggle must deactivate")
	}

	toggled, err = f.usecase.ToggleActive(ctx, f.actor, created.User.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if toggled.Active == nil || !*toggled.Active {
		t.Error("second toggle must reactivate")
	}
}

func TestGetAllUsersExcludesAdmins(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	admin := &entity.Role{Name: entity.RoleAdmin}
	f.roleRepo.Create(ctx, admin)

	f.usecase.CreateUser(ctx, f.actor, &dto.CreateUserRequest{Name: "Dra. Rojas", Email: "rojas@clinic.local", RoleID: f.medico.ID})
	f.usecase.CreateUser(ctx, f.actor, &dto.CreateUserRequest{Name: "Root", Email: "root@clinic.local", RoleID: admin.ID})

	list, err := f.usecase.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || list.Users[0].Name != "Dra. Rojas" {
		t.Errorf("listing = %d users, admins must be excluded", list.Total)
	}
}
