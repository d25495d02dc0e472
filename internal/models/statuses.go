package models

type UserRole string
type UserStatus string
type VerificationStatus string
type JobStatus string
type JobType string
type ApplicationStatus string
type NotificationKind string
type ReportStatus string

const (
	UserRoleSeeker   UserRole = "seeker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusPending   UserStatus = "pending"
	UserStatusSuspended UserStatus = "suspended"

	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"

	JobStatusActive   JobStatus = "active"
	JobStatusClosed   JobStatus = "closed"
	JobStatusPending  JobStatus = "pending"
	JobStatusRejected JobStatus = "rejected"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"

	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"

	NotificationAlert       NotificationKind = "alert"
	NotificationApplication NotificationKind = "application"
	NotificationSystem      NotificationKind = "system"

	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSeeker, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusPending, UserStatusSuspended:
		return true
	}
	return false
}

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationUnverified, VerificationPending, VerificationVerified:
		return true
	}
	return false
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusPending, JobStatusRejected:
		return true
	}
	return false
}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationRank[s]
	return ok
}

// Порядок прямого пути. Rejected вне линейки.
var applicationRank = map[ApplicationStatus]int{
	StatusApplied:   1,
	StatusScreening: 2,
	StatusInterview: 3,
	StatusOffer:     4,
	StatusRejected:  0,
}

// Rank - позиция на прямом пути Applied → Offer, 0 для Rejected
func (s ApplicationStatus) Rank() int {
	return applicationRank[s]
}

// Terminal - Offer и Rejected
func (s ApplicationStatus) Terminal() bool {
	return s == StatusOffer || s == StatusRejected
}

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationAlert, NotificationApplication, NotificationSystem:
		return true
	}
	return false
}

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusOpen, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}
