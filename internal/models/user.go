package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID                 string             `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name               string             `json:"name" gorm:"type:varchar(255)"`
	Email              string             `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Role               UserRole           `json:"role" gorm:"type:varchar(20);not null"`
	Plan               string             `json:"plan,omitempty" gorm:"type:varchar(32)"`
	VerificationStatus VerificationStatus `json:"verificationStatus" gorm:"type:varchar(20);default:'unverified'"`
	Status             UserStatus         `json:"status" gorm:"type:varchar(20);default:'active'"`

	Headline    string `json:"headline,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty" gorm:"type:text"`
	Avatar      string `json:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Industry    string `json:"industry,omitempty"`

	Skills          datatypes.JSONSlice[string]       `json:"skills,omitempty"`
	Following       datatypes.JSONSlice[string]       `json:"following"`
	SavedCandidates datatypes.JSONSlice[string]       `json:"savedCandidates"`
	Documents       datatypes.JSONSlice[UserDocument] `json:"documents"`

	CreatedAt time.Time `json:"createdAt"`

	// Только на сервере
	PasswordHash string     `json:"-" gorm:"type:varchar(255)"`
	OTPCode      string     `json:"-" gorm:"type:varchar(12)"`
	OTPExpiresAt *time.Time `json:"-"`
}

type UserDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (u User) GetID() string { return u.ID }

func (u User) IsFollowing(companyID string) bool {
	return slices.Contains(u.Following, companyID)
}

func (u User) HasSavedCandidate(seekerID string) bool {
	return slices.Contains(u.SavedCandidates, seekerID)
}
