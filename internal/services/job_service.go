package services

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

const jobAlertTitle = "New job matching your alert"

type JobService struct {
	env      *Env
	notifier *NotificationService
	activity *ActivityService
}

func NewJobService(env *Env, notifier *NotificationService, activity *ActivityService) *JobService {
	return &JobService{env: env, notifier: notifier, activity: activity}
}

// Add публикует вакансию от имени работодателя и рассылает уведомления по подходящим подпискам
func (s *JobService) Add(employer models.User, in models.JobInput) (models.Job, error) {
	if employer.Role != models.UserRoleEmployer && employer.Role != models.UserRoleAdmin {
		return models.Job{}, apperrors.ErrInsufficientPermissions
	}
	if err := s.validateInput(in); err != nil {
		return models.Job{}, err
	}

	job := models.Job{
		ID:         models.NewID(),
		EmployerID: employer.ID,
		Status:     models.JobStatusActive,
		PostedAt:   s.env.now(),
	}
	in.Apply(&job)
	if job.Requirements == nil {
		job.Requirements = datatypes.JSONSlice[string]{}
	}

	if err := s.env.Stores.Jobs.Insert(job); err != nil {
		return models.Job{}, err
	}
	s.env.track(store.NameJobs, ActionCreated, job.ID, job)
	s.activity.Log(employer.ID, ActivityJobCreated, job.Title)

	s.notifyAlerts(job)
	return job, nil
}

func (s *JobService) notifyAlerts(job models.Job) {
	alerts := s.env.Stores.JobAlerts.Filter(func(a models.JobAlert) bool {
		return a.UserID != job.EmployerID && AlertMatches(a, job)
	})
	for _, a := range alerts {
		s.notifier.Emit(a.UserID, jobAlertTitle,
			fmt.Sprintf("%s at %s (%s)", job.Title, job.Company, job.Location),
			models.NotificationAlert, "/jobs/"+job.ID)
	}
}

// AlertMatches - ключевые слова подстрокой в названии, локация (если задана) подстрокой в локации.
// Регистр не учитывается.
func AlertMatches(alert models.JobAlert, job models.Job) bool {
	keywords := strings.ToLower(strings.TrimSpace(alert.Keywords))
	if keywords == "" || !strings.Contains(strings.ToLower(job.Title), keywords) {
		return false
	}
	location := strings.ToLower(strings.TrimSpace(alert.Location))
	return location == "" || strings.Contains(strings.ToLower(job.Location), location)
}

// Update полностью заменяет редактируемые поля. employerId и postedAt не меняются.
func (s *JobService) Update(id string, in models.JobInput) (models.Job, error) {
	if err := s.validateInput(in); err != nil {
		return models.Job{}, err
	}
	updated, ok := s.env.Stores.Jobs.Update(id, func(j *models.Job) {
		in.Apply(j)
	})
	if !ok {
		return models.Job{}, apperrors.EntityNotFound("job", id)
	}
	s.env.track(store.NameJobs, ActionUpdated, id, updated)
	return updated, nil
}

// Delete удаляет вакансию. Отклики остаются и отфильтровываются при чтении.
func (s *JobService) Delete(id string) error {
	removed, ok := s.env.Stores.Jobs.Remove(id)
	if !ok {
		return apperrors.EntityNotFound("job", id)
	}
	s.env.track(store.NameJobs, ActionDeleted, id, nil)
	s.activity.Log(removed.EmployerID, ActivityJobDeleted, removed.Title)
	return nil
}

// validateInput - теги структуры плюс вилка зарплаты (salaryMax = 0 значит "не указана")
func (s *JobService) validateInput(in models.JobInput) error {
	if err := s.env.validate(in); err != nil {
		return err
	}
	if in.SalaryMax > 0 && in.SalaryMin > in.SalaryMax {
		return apperrors.ValidationError(map[string]string{
			"salaryMin": "must not exceed salaryMax",
		})
	}
	return nil
}

// CanManage - владелец вакансии или админ
func CanManage(user models.User, job models.Job) bool {
	return user.Role == models.UserRoleAdmin || job.EmployerID == user.ID
}
