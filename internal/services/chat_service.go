package services

import (
	"strings"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

// ChatService - личные сообщения. Лента только дополняется, прочтение отмечается пачкой по отправителю.
type ChatService struct {
	env *Env
}

func NewChatService(env *Env) *ChatService {
	return &ChatService{env: env}
}

func (s *ChatService) Send(senderID, receiverID, content string) (models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ChatMessage{}, apperrors.NewBadRequestError("Message is empty")
	}
	if receiverID == "" || receiverID == senderID {
		return models.ChatMessage{}, apperrors.NewBadRequestError("Invalid message receiver")
	}
	msg := models.ChatMessage{
		ID:         models.NewID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  s.env.now(),
	}
	if err := s.env.Stores.Messages.Insert(msg); err != nil {
		return models.ChatMessage{}, err
	}
	s.env.track(store.NameMessages, ActionCreated, msg.ID, msg)
	return msg, nil
}

// MarkConversationRead отмечает прочитанными все сообщения от senderID к receiverID
func (s *ChatService) MarkConversationRead(receiverID, senderID string) int {
	var ids []string
	changed := s.env.Stores.Messages.UpdateWhere(
		func(m models.ChatMessage) bool {
			return m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead
		},
		func(m *models.ChatMessage) bool {
			m.IsRead = true
			ids = append(ids, m.ID)
			return true
		},
	)
	for _, id := range ids {
		s.env.track(store.NameMessages, ActionUpdated, id, nil)
	}
	return changed
}

// Conversation - переписка двух пользователей в порядке отправки
func (s *ChatService) Conversation(a, b string) []models.ChatMessage {
	return s.env.Stores.Messages.Filter(func(m models.ChatMessage) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	})
}

func (s *ChatService) UnreadCount(userID string) int {
	return len(s.env.Stores.Messages.Filter(func(m models.ChatMessage) bool {
		return m.ReceiverID == userID && !m.IsRead
	}))
}
