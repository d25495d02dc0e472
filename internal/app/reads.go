package app

import (
	"hirehub/internal/algorithms"
	"hirehub/internal/gateway"
	"hirehub/internal/models"
)

// Чтения не ходят в сеть и не берут блокировку движка: только снимки коллекций.

func (e *Engine) CurrentUser() (models.User, bool) { return e.svc.Session.CurrentUser() }
func (e *Engine) IsOffline() bool { return e.detector.IsOffline() }
func (e *Engine) Mode() gateway.Mode { return e.detector.Mode() }

func (e *Engine) Jobs() []models.Job { return e.stores.Jobs.All() }
func (e *Engine) Applications() []models.Application { return e.stores.Applications.All() }
func (e *Engine) Users() []models.User { return e.stores.Users.All() }
func (e *Engine) AllNotifications() []models.Notification { return e.stores.Notifications.All() }
func (e *Engine) Messages() []models.ChatMessage { return e.stores.Messages.All() }
func (e *Engine) CommunityPosts() []models.CommunityPost { return e.stores.CommunityPosts.All() }
func (e *Engine) Reviews() []models.Review { return e.stores.Reviews.All() }
func (e *Engine) BlogPosts() []models.BlogPost { return e.stores.BlogPosts.All() }
func (e *Engine) Reports() []models.Report { return e.stores.Reports.All() }
func (e *Engine) Announcements() []models.Announcement { return e.stores.Announcements.All() }
func (e *Engine) JobAlerts() []models.JobAlert { return e.stores.JobAlerts.All() }
func (e *Engine) ActivityLogs() []models.ActivityLog { return e.stores.ActivityLogs.All() }

func (e *Engine) JobByID(id string) (models.Job, bool) { return e.stores.Jobs.Get(id) }
func (e *Engine) ApplicationByID(id string) (models.Application, bool) { return e.stores.Applications.Get(id) }
func (e *Engine) UserByID(id string) (models.User, bool) { return e.stores.Users.Get(id) }

// Notifications - уведомления текущего пользователя
func (e *Engine) Notifications() []models.Notification {
	u, ok := e.CurrentUser()
	if !ok {
		return nil
	}
	return e.svc.Notifications.ForUser(u.ID)
}

func (e *Engine) UnreadNotificationCount() int {
	u, ok := e.CurrentUser()
	if !ok {
		return 0
	}
	return e.svc.Notifications.UnreadCount(u.ID)
}

func (e *Engine) SavedJobIDs() []string { return e.svc.Session.SavedJobIDs() }

// ApplicationsForSeeker - без откликов на удаленные вакансии
func (e *Engine) ApplicationsForSeeker(seekerID string) []models.Application {
	return e.svc.Applications.ForSeeker(seekerID)
}

func (e *Engine) ApplicationsForJob(jobID string) []models.Application {
	return e.svc.Applications.ForJob(jobID)
}

// Conversation - переписка текущего пользователя с other
func (e *Engine) Conversation(otherID string) []models.ChatMessage {
	u, ok := e.CurrentUser()
	if !ok {
		return nil
	}
	return e.svc.Chat.Conversation(u.ID, otherID)
}

func (e *Engine) UnreadMessageCount() int {
	u, ok := e.CurrentUser()
	if !ok {
		return 0
	}
	return e.svc.Chat.UnreadCount(u.ID)
}

// CompanyRating - средняя оценка компании по отзывам
func (e *Engine) CompanyRating(companyID string) (float64, int) {
	return e.svc.Content.CompanyRating(companyID)
}

// VisibleAnnouncements - объявления для роли текущего пользователя
func (e *Engine) VisibleAnnouncements() []models.Announcement {
	u, ok := e.CurrentUser()
	if !ok {
		return e.svc.Content.AnnouncementsFor("")
	}
	return e.svc.Content.AnnouncementsFor(u.Role)
}

// RecommendedJobs - активные вакансии для текущего соискателя, без тех, на которые он уже откликнулся
func (e *Engine) RecommendedJobs(limit int) []algorithms.JobMatch {
	u, ok := e.CurrentUser()
	if !ok || u.Role != models.UserRoleSeeker {
		return nil
	}
	applied := make(map[string]bool)
	for _, a := range e.svc.Applications.ForSeeker(u.ID) {
		applied[a.JobID] = true
	}
	return algorithms.RankJobs(e.Jobs(), u, applied, limit)
}
