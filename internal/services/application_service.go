package services

import (
	"fmt"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

const (
	applicationTitle   = "Application Update"
	newApplicantTitle  = "New Application"
	seekerDashboard    = "/dashboard/seeker"
	employerDashboard  = "/dashboard/employer"
	unknownJobFallback = "a position"
)

var defaultNotes = map[models.ApplicationStatus]string{
	models.StatusApplied:   "Application submitted",
	models.StatusScreening: "Your application is being reviewed",
	models.StatusInterview: "Interview scheduled",
	models.StatusOffer:     "Offer extended",
	models.StatusRejected:  "Application was not selected",
}

// ApplicationService - менеджер жизненного цикла отклика.
// Хронология хранится от старых к новым, статус всегда равен статусу последней записи.
type ApplicationService struct {
	env      *Env
	notifier *NotificationService
	activity *ActivityService
}

func NewApplicationService(env *Env, notifier *NotificationService, activity *ActivityService) *ApplicationService {
	return &ApplicationService{env: env, notifier: notifier, activity: activity}
}

// CanTransition проверяет ребро графа статусов.
//
//	applied → screening → interview → offer   (любой шаг вперед)
//	любой нетерминальный → rejected
//	interview | offer | rejected → screening (ручная коррекция)
//	interview → interview                    (перенос собеседования)
func CanTransition(from, to models.ApplicationStatus) error {
	if !to.Valid() {
		return apperrors.ErrInvalidStatus("application", fmt.Sprintf("unknown application status %q", to))
	}
	switch {
	case to == models.StatusRejected:
		if !from.Terminal() {
			return nil
		}
	case to == models.StatusScreening && (from == models.StatusInterview || from == models.StatusOffer || from == models.StatusRejected):
		return nil
	case from == models.StatusInterview && to == models.StatusInterview:
		return nil
	case !from.Terminal() && to.Rank() > from.Rank():
		return nil
	}
	return apperrors.ErrInvalidTransition.WithDetails(map[string]string{
		"from": string(from),
		"to":   string(to),
	})
}

// Submit создает отклик со статусом applied и одной записью в хронологии.
// Повторный отклик того же соискателя на ту же вакансию отклоняется.
func (s *ApplicationService) Submit(seeker models.User, in models.ApplicationInput) (models.Application, error) {
	if err := s.env.validate(in); err != nil {
		return models.Application{}, err
	}

	job, ok := s.env.Stores.Jobs.Get(in.JobID)
	if !ok {
		return models.Application{}, apperrors.EntityNotFound("job", in.JobID)
	}

	if _, dup := s.env.Stores.Applications.Find(func(a models.Application) bool {
		return a.JobID == in.JobID && a.SeekerID == seeker.ID
	}); dup {
		return models.Application{}, apperrors.ErrDuplicateApplication
	}

	now := s.env.now()
	app := models.Application{
		ID:          models.NewID(),
		JobID:       in.JobID,
		SeekerID:    seeker.ID,
		ResumeURL:   in.ResumeURL,
		CoverLetter: in.CoverLetter,
		Status:      models.StatusApplied,
		Date:        now,
		Timeline: []models.TimelineEntry{{
			Status: models.StatusApplied,
			Date:   now,
			Note:   defaultNotes[models.StatusApplied],
		}},
	}
	if err := s.env.Stores.Applications.Insert(app); err != nil {
		return models.Application{}, err
	}
	s.env.track(store.NameApplications, ActionCreated, app.ID, app)

	applicant := seeker.Name
	if applicant == "" {
		applicant = "A candidate"
	}
	s.notifier.Emit(job.EmployerID, newApplicantTitle,
		fmt.Sprintf("%s applied for %s", applicant, job.Title),
		models.NotificationApplication, employerDashboard)
	s.activity.Log(seeker.ID, ActivityApplicationSubmit, job.Title)

	return app, nil
}

// Transition меняет статус, добавляет ровно одну запись в хронологию
// и ровно одно уведомление соискателю. Причина отказа не обязательна.
func (s *ApplicationService) Transition(id string, to models.ApplicationStatus, extra models.TransitionExtra) (models.Application, error) {
	if err := s.env.validate(extra); err != nil {
		return models.Application{}, err
	}

	current, ok := s.env.Stores.Applications.Get(id)
	if !ok {
		return models.Application{}, apperrors.EntityNotFound("application", id)
	}
	if err := CanTransition(current.Status, to); err != nil {
		return models.Application{}, err
	}

	entry := models.TimelineEntry{
		Status: to,
		Date:   s.env.now(),
		Note:   noteFor(to, extra),
	}

	updated, _ := s.env.Stores.Applications.Update(id, func(a *models.Application) {
		a.Status = to
		// новый срез, чтобы снимки, выданные раньше, не видели добавленную запись
		timeline := make([]models.TimelineEntry, 0, len(a.Timeline)+1)
		timeline = append(timeline, a.Timeline...)
		a.Timeline = append(timeline, entry)

		if extra.InterviewDate != "" {
			a.InterviewDate = extra.InterviewDate
		}
		if extra.InterviewTime != "" {
			a.InterviewTime = extra.InterviewTime
		}
		if extra.InterviewMessage != "" {
			a.InterviewMessage = extra.InterviewMessage
		}
		if extra.RejectionReason != "" {
			a.RejectionReason = extra.RejectionReason
		}
	})
	s.env.track(store.NameApplications, ActionUpdated, id, updated)

	s.notifier.Emit(updated.SeekerID, applicationTitle,
		fmt.Sprintf("Your application for %s is now: %s", s.jobTitle(updated.JobID), to),
		models.NotificationApplication, seekerDashboard)
	s.activity.Log(updated.SeekerID, ActivityApplicationStatus, fmt.Sprintf("%s → %s", current.Status, to))

	return updated, nil
}

func noteFor(to models.ApplicationStatus, extra models.TransitionExtra) string {
	switch {
	case extra.Note != "":
		return extra.Note
	case to == models.StatusInterview && extra.InterviewMessage != "":
		return extra.InterviewMessage
	case to == models.StatusInterview && extra.InterviewDate != "":
		return fmt.Sprintf("%s on %s %s", defaultNotes[to], extra.InterviewDate, extra.InterviewTime)
	case to == models.StatusRejected && extra.RejectionReason != "":
		return extra.RejectionReason
	}
	return defaultNotes[to]
}

// UpdateMeta - заметки и оценка работодателя. Не трогает статус и хронологию, не шлет уведомлений.
func (s *ApplicationService) UpdateMeta(id string, meta models.ApplicationMeta) (models.Application, error) {
	if err := s.env.validate(meta); err != nil {
		return models.Application{}, err
	}
	updated, ok := s.env.Stores.Applications.Update(id, func(a *models.Application) {
		if meta.EmployerNotes != nil {
			a.EmployerNotes = *meta.EmployerNotes
		}
		if meta.EmployerRating != nil {
			a.EmployerRating = *meta.EmployerRating
		}
	})
	if !ok {
		return models.Application{}, apperrors.EntityNotFound("application", id)
	}
	s.env.track(store.NameApplications, ActionUpdated, id, updated)
	return updated, nil
}

// Withdraw удаляет отклик без уведомлений. Право на отзыв проверяет вызывающий.
func (s *ApplicationService) Withdraw(id string) error {
	removed, ok := s.env.Stores.Applications.Remove(id)
	if !ok {
		return apperrors.EntityNotFound("application", id)
	}
	s.env.track(store.NameApplications, ActionDeleted, id, nil)
	s.activity.Log(removed.SeekerID, ActivityApplicationWithdraw, s.jobTitle(removed.JobID))
	return nil
}

// ForSeeker - отклики соискателя, отклики на удаленные вакансии отфильтрованы
func (s *ApplicationService) ForSeeker(seekerID string) []models.Application {
	return s.env.Stores.Applications.Filter(func(a models.Application) bool {
		if a.SeekerID != seekerID {
			return false
		}
		_, ok := s.env.Stores.Jobs.Get(a.JobID)
		return ok
	})
}

// ForJob - отклики на вакансию. Для удаленной вакансии пусто.
func (s *ApplicationService) ForJob(jobID string) []models.Application {
	if _, ok := s.env.Stores.Jobs.Get(jobID); !ok {
		return nil
	}
	return s.env.Stores.Applications.Filter(func(a models.Application) bool {
		return a.JobID == jobID
	})
}

func (s *ApplicationService) jobTitle(jobID string) string {
	if job, ok := s.env.Stores.Jobs.Get(jobID); ok && job.Title != "" {
		return job.Title
	}
	return unknownJobFallback
}
