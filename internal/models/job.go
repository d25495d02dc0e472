package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(64)"`
	EmployerID   string                      `json:"employerId" gorm:"index;type:varchar(64);not null"`
	Title        string                      `json:"title" gorm:"type:varchar(255);not null"`
	Company      string                      `json:"company" gorm:"type:varchar(255)"`
	Location     string                      `json:"location"`
	Type         JobType                     `json:"type" gorm:"type:varchar(20)"`
	Category     string                      `json:"category,omitempty"`
	Description  string                      `json:"description" gorm:"type:text"`
	Requirements datatypes.JSONSlice[string] `json:"requirements,omitempty"`
	SalaryMin    int                         `json:"salaryMin,omitempty"`
	SalaryMax    int                         `json:"salaryMax,omitempty"`
	Currency     string                      `json:"currency,omitempty" gorm:"type:varchar(8)"`
	Status       JobStatus                   `json:"status" gorm:"type:varchar(20);default:'active'"`
	IsFeatured   bool                        `json:"isFeatured"`
	IsUrgent     bool                        `json:"isUrgent"`
	PostedAt     time.Time                   `json:"postedAt"`
}

func (j Job) GetID() string { return j.ID }
