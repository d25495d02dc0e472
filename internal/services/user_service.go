package services

import (
	"fmt"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

type UserService struct {
	env      *Env
	session  *SessionService
	notifier *NotificationService
	activity *ActivityService
}

func NewUserService(env *Env, session *SessionService, notifier *NotificationService, activity *ActivityService) *UserService {
	return &UserService{env: env, session: session, notifier: notifier, activity: activity}
}

// update - общий путь всех изменений пользователя: store, write-through, сессия
func (s *UserService) update(id string, fn func(*models.User)) (models.User, error) {
	updated, ok := s.env.Stores.Users.Update(id, fn)
	if !ok {
		return models.User{}, apperrors.EntityNotFound("user", id)
	}
	s.env.track(store.NameUsers, ActionUpdated, id, updated)
	s.session.Refresh(updated)
	return updated, nil
}

// UpdateProfile - частичное слияние, полной замены нет
func (s *UserService) UpdateProfile(id string, in models.UserUpdate) (models.User, error) {
	if err := s.env.validate(in); err != nil {
		return models.User{}, err
	}
	return s.update(id, in.Apply)
}

func (s *UserService) AddDocument(userID string, in models.DocumentInput) (models.UserDocument, error) {
	if err := s.env.validate(in); err != nil {
		return models.UserDocument{}, err
	}
	doc := models.UserDocument{
		ID:         models.NewID(),
		Name:       in.Name,
		URL:        in.URL,
		Type:       in.Type,
		UploadedAt: s.env.now(),
	}
	_, err := s.update(userID, func(u *models.User) {
		docs := make([]models.UserDocument, 0, len(u.Documents)+1)
		docs = append(docs, u.Documents...)
		u.Documents = append(docs, doc)
	})
	if err != nil {
		return models.UserDocument{}, err
	}
	return doc, nil
}

func (s *UserService) RemoveDocument(userID, docID string) error {
	found := false
	_, err := s.update(userID, func(u *models.User) {
		docs := make([]models.UserDocument, 0, len(u.Documents))
		for _, d := range u.Documents {
			if d.ID == docID {
				found = true
				continue
			}
			docs = append(docs, d)
		}
		u.Documents = docs
	})
	if err != nil {
		return err
	}
	if !found {
		return apperrors.EntityNotFound("document", docID)
	}
	return nil
}

// Delete удаляет пользователя вместе с его вакансиями, откликами на них и его собственными откликами.
// Сервер выполняет такой же каскад, поэтому write-through уходит только для пользователя.
func (s *UserService) Delete(actor models.User, id string) error {
	removed, ok := s.env.Stores.Users.Remove(id)
	if !ok {
		return apperrors.EntityNotFound("user", id)
	}
	s.env.track(store.NameUsers, ActionDeleted, id, nil)

	ownedJobs := map[string]bool{}
	for _, j := range s.env.Stores.Jobs.RemoveWhere(func(j models.Job) bool { return j.EmployerID == id }) {
		ownedJobs[j.ID] = true
		s.env.note(store.NameJobs, ActionDeleted, j.ID)
	}
	for _, a := range s.env.Stores.Applications.RemoveWhere(func(a models.Application) bool {
		return ownedJobs[a.JobID] || a.SeekerID == id
	}) {
		s.env.note(store.NameApplications, ActionDeleted, a.ID)
	}

	s.activity.Log(actor.ID, ActivityUserDeleted, removed.Email)
	s.session.Forget(id)
	return nil
}

func (s *UserService) SetStatus(actor models.User, id string, status models.UserStatus) (models.User, error) {
	if !status.Valid() {
		return models.User{}, apperrors.ErrInvalidStatus("user", fmt.Sprintf("unknown user status %q", status))
	}
	updated, err := s.update(id, func(u *models.User) { u.Status = status })
	if err != nil {
		return models.User{}, err
	}
	s.activity.Log(actor.ID, ActivityUserStatus, fmt.Sprintf("%s: %s", updated.Email, status))
	if status == models.UserStatusSuspended {
		s.notifier.Emit(id, "Account suspended", "Your account has been suspended by an administrator",
			models.NotificationSystem, "")
	}
	return updated, nil
}

// RequestVerification переводит пользователя в pending. Уже проверенного не трогает.
func (s *UserService) RequestVerification(id string) (models.User, error) {
	current, ok := s.env.Stores.Users.Get(id)
	if !ok {
		return models.User{}, apperrors.EntityNotFound("user", id)
	}
	if current.VerificationStatus == models.VerificationVerified {
		return current, nil
	}
	return s.update(id, func(u *models.User) { u.VerificationStatus = models.VerificationPending })
}

func (s *UserService) SetVerification(actor models.User, id string, status models.VerificationStatus) (models.User, error) {
	if !status.Valid() {
		return models.User{}, apperrors.ErrInvalidStatus("user", fmt.Sprintf("unknown verification status %q", status))
	}
	updated, err := s.update(id, func(u *models.User) { u.VerificationStatus = status })
	if err != nil {
		return models.User{}, err
	}
	s.activity.Log(actor.ID, ActivityVerification, fmt.Sprintf("%s: %s", updated.Email, status))

	msg := "Your verification request was declined"
	if status == models.VerificationVerified {
		msg = "Your account is now verified"
	}
	if status != models.VerificationPending {
		s.notifier.Emit(id, "Verification update", msg, models.NotificationSystem, "")
	}
	return updated, nil
}

// ToggleFollow - подписка на компанию, возвращает новое членство
func (s *UserService) ToggleFollow(userID, companyID string) (bool, error) {
	var following bool
	_, err := s.update(userID, func(u *models.User) {
		u.Following, following = models.ToggleMember(u.Following, companyID)
	})
	return following, err
}

// ToggleSaveCandidate - избранные кандидаты работодателя
func (s *UserService) ToggleSaveCandidate(employerID, seekerID string) (bool, error) {
	var saved bool
	_, err := s.update(employerID, func(u *models.User) {
		u.SavedCandidates, saved = models.ToggleMember(u.SavedCandidates, seekerID)
	})
	return saved, err
}
