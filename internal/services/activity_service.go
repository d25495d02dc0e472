package services

import (
	"hirehub/internal/models"
	"hirehub/internal/store"
)

// Действия журнала
const (
	ActivityLogin               = "login"
	ActivityRegister            = "register"
	ActivityLogout              = "logout"
	ActivityJobCreated          = "job_created"
	ActivityJobDeleted          = "job_deleted"
	ActivityApplicationSubmit   = "application_submitted"
	ActivityApplicationStatus   = "application_status_changed"
	ActivityApplicationWithdraw = "application_withdrawn"
	ActivityUserDeleted         = "user_deleted"
	ActivityUserStatus          = "user_status_changed"
	ActivityVerification        = "verification_changed"
	ActivityReportResolved      = "report_resolved"
)

type ActivityService struct {
	env *Env
}

func NewActivityService(env *Env) *ActivityService {
	return &ActivityService{env: env}
}

// Log добавляет запись в журнал. Пустой userID допустим (системные действия).
func (s *ActivityService) Log(userID, action, details string) models.ActivityLog {
	entry := models.ActivityLog{
		ID:      models.NewID(),
		UserID:  userID,
		Action:  action,
		Details: details,
		Date:    s.env.now(),
	}
	_ = s.env.Stores.ActivityLogs.Insert(entry)
	s.env.track(store.NameActivityLogs, ActionCreated, entry.ID, entry)
	return entry
}

// ForUser - записи пользователя, новые в конце
func (s *ActivityService) ForUser(userID string) []models.ActivityLog {
	return s.env.Stores.ActivityLogs.Filter(func(a models.ActivityLog) bool {
		return a.UserID == userID
	})
}
