package services

import (
	"hirehub/internal/models"
	"hirehub/internal/store"
)

// NotificationService - эмиттер уведомлений. Без дедупликации и батчей.
type NotificationService struct {
	env *Env
}

func NewNotificationService(env *Env) *NotificationService {
	return &NotificationService{env: env}
}

// Emit добавляет непрочитанное уведомление. userId может не совпадать ни с одним загруженным пользователем.
func (s *NotificationService) Emit(userID, title, message string, kind models.NotificationKind, link string) models.Notification {
	n := models.Notification{
		ID:      models.NewID(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
		IsRead:  false,
		Date:    s.env.now(),
		Link:    link,
	}
	// id свежий, Insert не может упасть на дубликате
	_ = s.env.Stores.Notifications.Insert(n)
	s.env.track(store.NameNotifications, ActionCreated, n.ID, n)
	return n
}

// MarkRead помечает одно уведомление. Повторный вызов ничего не меняет и возвращает 0.
func (s *NotificationService) MarkRead(id string) int {
	changed := s.env.Stores.Notifications.UpdateWhere(
		func(n models.Notification) bool { return n.ID == id },
		func(n *models.Notification) bool {
			if n.IsRead {
				return false
			}
			n.IsRead = true
			return true
		},
	)
	if changed > 0 {
		s.env.track(store.NameNotifications, ActionUpdated, id, nil)
	}
	return changed
}

// MarkAllRead помечает все непрочитанные уведомления пользователя
func (s *NotificationService) MarkAllRead(userID string) int {
	var ids []string
	changed := s.env.Stores.Notifications.UpdateWhere(
		func(n models.Notification) bool { return n.UserID == userID && !n.IsRead },
		func(n *models.Notification) bool {
			n.IsRead = true
			ids = append(ids, n.ID)
			return true
		},
	)
	for _, id := range ids {
		s.env.track(store.NameNotifications, ActionUpdated, id, nil)
	}
	return changed
}

func (s *NotificationService) ForUser(userID string) []models.Notification {
	return s.env.Stores.Notifications.Filter(func(n models.Notification) bool {
		return n.UserID == userID
	})
}

func (s *NotificationService) UnreadCount(userID string) int {
	return len(s.env.Stores.Notifications.Filter(func(n models.Notification) bool {
		return n.UserID == userID && !n.IsRead
	}))
}
