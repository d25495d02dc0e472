package models

import (
	"time"

	"gorm.io/datatypes"
)

type Application struct {
	ID          string            `json:"id" gorm:"primaryKey;type:varchar(64)"`
	JobID       string            `json:"jobId" gorm:"index;type:varchar(64);not null"`
	SeekerID    string            `json:"seekerId" gorm:"index;type:varchar(64);not null"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
	CoverLetter string            `json:"coverLetter,omitempty" gorm:"type:text"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);not null"`
	Date        time.Time         `json:"date"`

	// Хронология, новые записи в конце
	Timeline datatypes.JSONSlice[TimelineEntry] `json:"timeline"`

	InterviewDate    string `json:"interviewDate,omitempty"`
	InterviewTime    string `json:"interviewTime,omitempty"`
	InterviewMessage string `json:"interviewMessage,omitempty" gorm:"type:text"`
	RejectionReason  string `json:"rejectionReason,omitempty" gorm:"type:text"`
	EmployerNotes    string `json:"employerNotes,omitempty" gorm:"type:text"`
	EmployerRating   int    `json:"employerRating,omitempty"`
}

type TimelineEntry struct {
	Status ApplicationStatus `json:"status"`
	Date   time.Time         `json:"date"`
	Note   string            `json:"note,omitempty"`
}

func (a Application) GetID() string { return a.ID }

// LastEntry - последняя запись хронологии, ok=false для пустой
func (a Application) LastEntry() (TimelineEntry, bool) {
	if len(a.Timeline) == 0 {
		return TimelineEntry{}, false
	}
	return a.Timeline[len(a.Timeline)-1], true
}
