package database

import (
	"context"

	"go-clinic-management/config"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var defaultRoles = []entity.Role{
	{Name: entity.RoleAdmin, Description: "Administrador del sistema"},
	{Name: entity.RoleMedico, Description: "Profesional medico"},
	{Name: entity.RoleEnfermeria, Description: "Personal de enfermeria"},
	{Name: entity.RoleRecepcionista, Description: "Personal de recepcion"},
}

// Seed ensures the four default roles exist and creates the bootstrap
// administrator when no user holds the admin role yet. The admin password
// is a placeholder; PasswordChanged stays false so the first login forces
// a change.
func Seed(ctx context.Context, cfg config.SeedConfig, roleRepo repository.RoleRepository, userRepo repository.UserRepository) error {
	for _, role := range defaultRoles {
		existing, err := roleRepo.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		seeded := role
		if err := roleRepo.Create(ctx, &seeded); err != nil {
			return err
		}
		logrus.Infof("Seeded role %q", seeded.Name)
	}

	admins, err := userRepo.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	adminRole, err := roleRepo.FindByName(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	active := true
	admin := &entity.User{
		RoleID:          adminRole.ID,
		Name:            "Administrador",
		Email:           cfg.AdminEmail,
		Password:        string(hashed),
		Active:          &active,
		PasswordChanged: false,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logrus.Infof("Seeded administrator account %s with placeholder password; change it on first login", cfg.AdminEmail)

	return nil
}
