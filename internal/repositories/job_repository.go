package repositories

import (
	"gorm.io/gorm"

	"hirehub/internal/models"
)

type JobRepository interface {
	List(db *gorm.DB) ([]models.Job, error)
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	Create(db *gorm.DB, job *models.Job) error
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct {
	jobs collection[models.Job]
}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{jobs: collection[models.Job]{omit: []string{"employer_id", "posted_at"}}}
}

func (r *JobRepositoryImpl) List(db *gorm.DB) ([]models.Job, error) {
	return r.jobs.list(db, "posted_at DESC")
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	return r.jobs.find(db, id)
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return r.jobs.create(db, job)
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	return r.jobs.update(db, job.ID, job)
}

// Delete не трогает отклики: клиент удаляет их сам при необходимости
func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return r.jobs.delete(db, id)
}
