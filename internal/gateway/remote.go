package gateway

import (
	"context"
	"encoding/json"
	"io"

	"hirehub/internal/models"
)

// Collection - REST-коллекция сервера
type Collection string

const (
	CollectionJobs         Collection = "jobs"
	CollectionApplications Collection = "applications"
	CollectionUsers        Collection = "users"
)

// Remote - граница с сервером. Все методы возвращают Result, а не error.
type Remote interface {
	FetchJobs(ctx context.Context) Result[[]models.Job]
	FetchApplications(ctx context.Context) Result[[]models.Application]
	FetchUsers(ctx context.Context) Result[[]models.User]

	Create(ctx context.Context, c Collection, record any) Result[json.RawMessage]
	Update(ctx context.Context, c Collection, id string, record any) Result[json.RawMessage]
	Delete(ctx context.Context, c Collection, id string) Result[json.RawMessage]

	Login(ctx context.Context, req LoginRequest) Result[AuthPayload]
	Register(ctx context.Context, req RegisterRequest) Result[AuthPayload]
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) Result[AuthPayload]

	Upload(ctx context.Context, filename string, r io.Reader) Result[UploadPayload]
	Generate(ctx context.Context, req GenerateRequest) Result[GeneratePayload]

	SetToken(token string)
}

type LoginRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type RegisterRequest struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        models.UserRole `json:"role"`
	CompanyName string          `json:"companyName,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// AuthPayload - ответ login/register/verify-otp
type AuthPayload struct {
	User                *models.User `json:"user,omitempty"`
	Token               string       `json:"token,omitempty"`
	RequireVerification bool         `json:"requireVerification,omitempty"`
	Message             string       `json:"message,omitempty"`
}

type UploadPayload struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

type GenerateConfig struct {
	MaxTokens    int64   `json:"maxTokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	ResponseJSON bool    `json:"responseJson,omitempty"`
}

type GenerateRequest struct {
	Prompt string         `json:"prompt"`
	Model  string         `json:"model,omitempty"`
	Config GenerateConfig `json:"config,omitempty"`
}

type GeneratePayload struct {
	Text string `json:"text"`
}
