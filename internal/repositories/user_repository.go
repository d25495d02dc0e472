package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hirehub/internal/models"
)

type UserRepository interface {
	List(db *gorm.DB) ([]models.User, error)
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	SetOTP(db *gorm.DB, userID, code string, expiresAt time.Time) error
	Activate(db *gorm.DB, userID string) error
	// Delete удаляет пользователя вместе с его вакансиями и откликами
	Delete(db *gorm.DB, userID string) error
}

type UserRepositoryImpl struct {
	users collection[models.User]
}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{
		users: collection[models.User]{omit: []string{"password_hash", "otp_code", "otp_expires_at", "created_at"}},
	}
}

func (r *UserRepositoryImpl) List(db *gorm.DB) ([]models.User, error) {
	return r.users.list(db, "created_at ASC")
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.users.find(db, id)
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if _, err := r.FindByEmail(db, user.Email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return r.users.create(db, user)
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return r.users.update(db, user.ID, user)
}

func (r *UserRepositoryImpl) SetOTP(db *gorm.DB, userID, code string, expiresAt time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	}).Error
}

// Activate подтверждает регистрацию и стирает код
func (r *UserRepositoryImpl) Activate(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":         models.UserStatusActive,
		"otp_code":       "",
		"otp_expires_at": nil,
	}).Error
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		ownJobs := tx.Model(&models.Job{}).Select("id").Where("employer_id = ?", userID)

		if err := tx.Where("job_id IN (?)", ownJobs).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("seeker_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employer_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		return r.users.delete(tx, userID)
	})
}
