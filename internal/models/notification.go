package models

import "time"

type Notification struct {
	ID      string           `json:"id"`
	UserID  string           `json:"userId"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
	IsRead  bool             `json:"isRead"`
	Date    time.Time        `json:"date"`
	Link    string           `json:"link,omitempty"`
}

func (n Notification) GetID() string { return n.ID }

// ActivityLog - запись журнала действий (для админки)
type ActivityLog struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	Action  string    `json:"action"`
	Details string    `json:"details,omitempty"`
	Date    time.Time `json:"date"`
}

func (a ActivityLog) GetID() string { return a.ID }
