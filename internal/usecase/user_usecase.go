package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, actor entity.Principal, req *dto.CreateUserRequest) (*dto.CreatedUserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor entity.Principal, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ToggleActive(ctx context.Context, actor entity.Principal, userID uuid.UUID) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, actor entity.Principal, userID uuid.UUID) (*dto.ResetPasswordResponse, error)
	DeleteUser(ctx context.Context, actor entity.Principal, userID uuid.UUID) error
}

type userUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	auditService service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		auditService: auditService,
	}
}

// temporaryPassword returns a random credential the account holder must
// replace on first login.
func temporaryPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (u *userUsecase) CreateUser(ctx context.Context, actor entity.Principal, req *dto.CreateUserRequest) (*dto.CreatedUserResponse, error) {
	role, err := u.roleRepo.FindByID(ctx, req.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, apperrors.ErrValidation
	}

	plain, err := temporaryPassword()
	if err != nil {
		u.log.Warnf("Failed to generate temporary password: %+v", err)
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		RoleID:          role.ID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        string(hashed),
		Active:          &active,
		PasswordChanged: false,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		if apperrors.IsDuplicateKey(err, "email") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	user.Role = *role

	if err := u.auditService.LogCreate(ctx, &actor.ID, entity.AuditActionUserCreate, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.CreatedUserResponse{
		User:              *converter.UserToResponse(user),
		TemporaryPassword: plain,
	}, nil
}

// GetAllUsers lists staff accounts; administrator accounts are excluded
// from the listing.
func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindNonAdmin(ctx)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	responses := converter.UsersToResponses(users)
	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}, nil
}

func (u *userUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, actor entity.Principal, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	oldValue := converter.UserToResponse(user)

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		user.Email = email
	}
	if req.RoleID != 0 && req.RoleID != user.RoleID {
		role, err := u.roleRepo.FindByID(ctx, req.RoleID)
		if err != nil {
			u.log.Warnf("Failed to find role: %+v", err)
			return nil, err
		}
		if role == nil {
			return nil, apperrors.ErrValidation
		}
		user.RoleID = role.ID
		user.Role = *role
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		if apperrors.IsDuplicateKey(err, "email") {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionUserUpdate, "user", user.ID.String(), oldValue, converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

// ToggleActive flips the account's active flag. Deactivated accounts fail
// login but keep authorship of their history entries.
func (u *userUsecase) ToggleActive(ctx context.Context, actor entity.Principal, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	oldValue := converter.UserToResponse(user)
	toggled := !user.IsActive()
	user.Active = &toggled
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &actor.ID, entity.AuditActionUserUpdate, "user", user.ID.String(), oldValue, converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

// ResetPassword assigns a fresh temporary password and forces a change on
// the next login.
func (u *userUsecase) ResetPassword(ctx context.Context, actor entity.Principal, userID uuid.UUID) (*dto.ResetPasswordResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	plain, err := temporaryPassword()
	if err != nil {
		u.log.Warnf("Failed to generate temporary password: %+v", err)
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user.Password = string(hashed)
	user.PasswordChanged = false
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, &actor.ID, entity.AuditActionUserPasswordReset, entity.JSON{
		"entity":    "user",
		"entity_id": user.ID.String(),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.ResetPasswordResponse{TemporaryPassword: plain}, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, actor entity.Principal, userID uuid.UUID) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return apperrors.ErrNotFound
	}

	oldValue := converter.UserToResponse(user)
	affectedRows, err := u.userRepo.Delete(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		if apperrors.IsForeignKey(err, "author") {
			return apperrors.ErrConflict
		}
		return err
	}
	if affectedRows == 0 {
		return apperrors.ErrNotFound
	}

	if err := u.auditService.LogDelete(ctx, &actor.ID, entity.AuditActionUserDelete, "user", user.ID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
