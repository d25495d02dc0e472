package services

import (
	"hirehub/internal/fixtures"
	"hirehub/internal/gateway"
	"hirehub/internal/storage"
)

// Container содержит все сервисы движка.
type Container struct {
	Notifications *NotificationService
	Activity      *ActivityService
	Session       *SessionService
	Applications  *ApplicationService
	Jobs          *JobService
	Users         *UserService
	Chat          *ChatService
	Community     *CommunityService
	Content       *ContentService
}

// NewContainer собирает сервисы. Порядок важен: эмиттер и журнал нужны остальным.
func NewContainer(
	env *Env,
	persist *storage.PersistentStore,
	remote gateway.Remote,
	detector *gateway.Detector,
	demo *fixtures.Set,
) *Container {
	notifications := NewNotificationService(env)
	activity := NewActivityService(env)
	session := NewSessionService(env, persist, remote, detector, demo, activity)

	return &Container{
		Notifications: notifications,
		Activity:      activity,
		Session:       session,
		Applications:  NewApplicationService(env, notifications, activity),
		Jobs:          NewJobService(env, notifications, activity),
		Users:         NewUserService(env, session, notifications, activity),
		Chat:          NewChatService(env),
		Community:     NewCommunityService(env),
		Content:       NewContentService(env, activity),
	}
}
