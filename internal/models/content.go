package models

import (
	"time"

	"gorm.io/datatypes"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

func (m ChatMessage) GetID() string { return m.ID }

type CommunityPost struct {
	ID       string                       `json:"id"`
	AuthorID string                       `json:"authorId"`
	Content  string                       `json:"content"`
	Tags     datatypes.JSONSlice[string]  `json:"tags,omitempty"`
	Likes    datatypes.JSONSlice[string]  `json:"likes"`
	Comments datatypes.JSONSlice[Comment] `json:"comments"`
	Date     time.Time                    `json:"date"`
}

type Comment struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"authorId"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}

func (p CommunityPost) GetID() string { return p.ID }

// Review - отзыв о компании (companyId - id пользователя-работодателя)
type Review struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	AuthorID  string    `json:"authorId"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
}

func (r Review) GetID() string { return r.ID }

type BlogPost struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"authorId"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category,omitempty"`
	Image    string    `json:"image,omitempty"`
	Date     time.Time `json:"date"`
}

func (b BlogPost) GetID() string { return b.ID }

type Report struct {
	ID         string       `json:"id"`
	ReporterID string       `json:"reporterId"`
	TargetType string       `json:"targetType"`
	TargetID   string       `json:"targetId"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	Date       time.Time    `json:"date"`
}

func (r Report) GetID() string { return r.ID }

type Announcement struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Audience string    `json:"audience"` // all, seeker, employer
	Date     time.Time `json:"date"`
}

func (a Announcement) GetID() string { return a.ID }

type JobAlert struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Keywords  string    `json:"keywords"`
	Location  string    `json:"location,omitempty"`
	Frequency string    `json:"frequency,omitempty"` // instant, daily, weekly
	Date      time.Time `json:"date"`
}

func (a JobAlert) GetID() string { return a.ID }
