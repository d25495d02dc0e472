package repositories

import (
	"gorm.io/gorm"

	"hirehub/internal/models"
)

type ApplicationRepository interface {
	List(db *gorm.DB) ([]models.Application, error)
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	Create(db *gorm.DB, app *models.Application) error
	Update(db *gorm.DB, app *models.Application) error
	Delete(db *gorm.DB, id string) error
}

type ApplicationRepositoryImpl struct {
	apps collection[models.Application]
}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{apps: collection[models.Application]{omit: []string{"job_id", "seeker_id", "date"}}}
}

func (r *ApplicationRepositoryImpl) List(db *gorm.DB) ([]models.Application, error) {
	return r.apps.list(db, "date DESC")
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	return r.apps.find(db, id)
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	return r.apps.create(db, app)
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, app *models.Application) error {
	return r.apps.update(db, app.ID, app)
}

func (r *ApplicationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return r.apps.delete(db, id)
}
