package store

import (
	"hirehub/internal/models"
	"hirehub/internal/storage"
)

// Имена коллекций, они же идут в события наблюдателей
const (
	NameJobs           = "jobs"
	NameApplications   = "applications"
	NameUsers          = "users"
	NameNotifications  = "notifications"
	NameMessages       = "messages"
	NameCommunityPosts = "community_posts"
	NameReviews        = "reviews"
	NameBlogPosts      = "blog_posts"
	NameReports        = "reports"
	NameAnnouncements  = "announcements"
	NameJobAlerts      = "job_alerts"
	NameActivityLogs   = "activity_logs"
)

// Set - все коллекции клиента
type Set struct {
	Jobs           *EntityStore[models.Job]
	Applications   *EntityStore[models.Application]
	Users          *EntityStore[models.User]
	Notifications  *EntityStore[models.Notification]
	Messages       *EntityStore[models.ChatMessage]
	CommunityPosts *EntityStore[models.CommunityPost]
	Reviews        *EntityStore[models.Review]
	BlogPosts      *EntityStore[models.BlogPost]
	Reports        *EntityStore[models.Report]
	Announcements  *EntityStore[models.Announcement]
	JobAlerts      *EntityStore[models.JobAlert]
	ActivityLogs   *EntityStore[models.ActivityLog]
}

func NewSet(persist *storage.PersistentStore) *Set {
	return &Set{
		Jobs:           New[models.Job](NameJobs, storage.KeyJobs, persist),
		Applications:   New[models.Application](NameApplications, storage.KeyApplications, persist),
		Users:          New[models.User](NameUsers, storage.KeyUsers, persist),
		Notifications:  New[models.Notification](NameNotifications, storage.KeyNotifications, persist),
		Messages:       New[models.ChatMessage](NameMessages, storage.KeyMessages, persist),
		CommunityPosts: New[models.CommunityPost](NameCommunityPosts, storage.KeyCommunityPosts, persist),
		Reviews:        New[models.Review](NameReviews, storage.KeyReviews, persist),
		BlogPosts:      New[models.BlogPost](NameBlogPosts, storage.KeyBlogPosts, persist),
		Reports:        New[models.Report](NameReports, storage.KeyReports, persist),
		Announcements:  New[models.Announcement](NameAnnouncements, storage.KeyAnnouncements, persist),
		JobAlerts:      New[models.JobAlert](NameJobAlerts, storage.KeyJobAlerts, persist),
		ActivityLogs:   New[models.ActivityLog](NameActivityLogs, storage.KeyActivityLogs, persist),
	}
}
