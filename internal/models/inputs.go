package models

import "gorm.io/datatypes"

// UserUpdate - частичное обновление профиля. nil-поле не трогается.
type UserUpdate struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Headline    *string   `json:"headline,omitempty" validate:"omitempty,max=200"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Bio         *string   `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Avatar      *string   `json:"avatar,omitempty"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Website     *string   `json:"website,omitempty" validate:"omitempty,url"`
	CompanyName *string   `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Industry    *string   `json:"industry,omitempty" validate:"omitempty,max=100"`
	Plan        *string   `json:"plan,omitempty" validate:"omitempty,oneof=free pro premium enterprise"`
	Skills      *[]string `json:"skills,omitempty" validate:"omitempty,max=50"`
}

// Apply переносит заданные поля в user
func (u UserUpdate) Apply(user *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&user.Name, u.Name)
	set(&user.Headline, u.Headline)
	set(&user.Location, u.Location)
	set(&user.Bio, u.Bio)
	set(&user.Avatar, u.Avatar)
	set(&user.Phone, u.Phone)
	set(&user.Website, u.Website)
	set(&user.CompanyName, u.CompanyName)
	set(&user.Industry, u.Industry)
	set(&user.Plan, u.Plan)
	if u.Skills != nil {
		user.Skills = datatypes.JSONSlice[string](append([]string(nil), (*u.Skills)...))
	}
}

// JobInput - создание и полная замена вакансии
type JobInput struct {
	Title        string    `json:"title" validate:"required,min=2,max=200"`
	Company      string    `json:"company" validate:"required,max=200"`
	Location     string    `json:"location" validate:"required,max=200"`
	Type         JobType   `json:"type" validate:"required,is-job-type"`
	Category     string    `json:"category,omitempty" validate:"max=100"`
	Description  string    `json:"description" validate:"required"`
	Requirements []string  `json:"requirements,omitempty"`
	SalaryMin    int       `json:"salaryMin,omitempty" validate:"gte=0"`
	SalaryMax    int       `json:"salaryMax,omitempty" validate:"gte=0"`
	Currency     string    `json:"currency,omitempty" validate:"max=8"`
	Status       JobStatus `json:"status,omitempty" validate:"omitempty,is-job-status"`
	IsFeatured   bool      `json:"isFeatured"`
	IsUrgent     bool      `json:"isUrgent"`
}

// Apply переписывает редактируемые поля вакансии
func (in JobInput) Apply(job *Job) {
	job.Title = in.Title
	job.Company = in.Company
	job.Location = in.Location
	job.Type = in.Type
	job.Category = in.Category
	job.Description = in.Description
	job.Requirements = datatypes.JSONSlice[string](append([]string(nil), in.Requirements...))
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.Currency = in.Currency
	if in.Status != "" {
		job.Status = in.Status
	}
	job.IsFeatured = in.IsFeatured
	job.IsUrgent = in.IsUrgent
}

type ApplicationInput struct {
	JobID       string `json:"jobId" validate:"required"`
	ResumeURL   string `json:"resumeUrl,omitempty" validate:"max=2048"`
	CoverLetter string `json:"coverLetter,omitempty" validate:"max=10000"`
}

// TransitionExtra - данные, которые сопровождают смену статуса
type TransitionExtra struct {
	InterviewDate    string `json:"interviewDate,omitempty"`
	InterviewTime    string `json:"interviewTime,omitempty"`
	InterviewMessage string `json:"interviewMessage,omitempty" validate:"max=5000"`
	RejectionReason  string `json:"rejectionReason,omitempty" validate:"max=5000"`
	Note             string `json:"note,omitempty" validate:"max=1000"`
}

// ApplicationMeta - заметки работодателя, без записи в хронологию
type ApplicationMeta struct {
	EmployerNotes  *string `json:"employerNotes,omitempty" validate:"omitempty,max=10000"`
	EmployerRating *int    `json:"employerRating,omitempty" validate:"omitempty,min=0,max=5"`
}

type LoginInput struct {
	Role     UserRole `json:"role" validate:"required,is-user-role"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        UserRole `json:"role" validate:"required,is-user-role"`
	CompanyName string   `json:"companyName,omitempty" validate:"max=200"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type DocumentInput struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required"`
	Type string `json:"type,omitempty" validate:"max=50"`
}

type PostInput struct {
	Content string   `json:"content" validate:"required,max=5000"`
	Tags    []string `json:"tags,omitempty" validate:"max=10"`
}

type ReviewInput struct {
	CompanyID string `json:"companyId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content" validate:"required,max=5000"`
}

type BlogPostInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty" validate:"max=100"`
	Image    string `json:"image,omitempty"`
}

type ReportInput struct {
	TargetType string `json:"targetType" validate:"required,oneof=job user post review message"`
	TargetID   string `json:"targetId" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=2000"`
}

type AnnouncementInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Audience string `json:"audience,omitempty" validate:"omitempty,oneof=all seeker employer"`
}

type JobAlertInput struct {
	Keywords  string `json:"keywords" validate:"required,max=200"`
	Location  string `json:"location,omitempty" validate:"max=200"`
	Frequency string `json:"frequency,omitempty" validate:"omitempty,oneof=instant daily weekly"`
}
