package server

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hirehub/internal/auth"
	"hirehub/internal/config"
	"hirehub/internal/logger"
	"hirehub/internal/models"
)

// seedFirstAdmin создает админа из FIRST_ADMIN_EMAIL/FIRST_ADMIN_PASSWORD, если его еще нет
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Auth.FirstAdminEmail
	adminPassword := cfg.Auth.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:                 models.NewID(),
		Name:               "Administrator",
		Email:              adminEmail,
		Role:               models.UserRoleAdmin,
		Status:             models.UserStatusActive,
		VerificationStatus: models.VerificationVerified,
		Following:          datatypes.JSONSlice[string]{},
		SavedCandidates:    datatypes.JSONSlice[string]{},
		Documents:          datatypes.JSONSlice[models.UserDocument]{},
		CreatedAt:          time.Now(),
		PasswordHash:       hash,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
