package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки бизнес-логики.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// EntityNotFound - "не найдено" с указанием сущности
func EntityNotFound(domain, id string) *AppError {
	return New(CodeNotFound, domain, domain+" not found", http.StatusNotFound).WithDetails(map[string]string{"id": id})
}

// ErrGatewayUnreachable - сервер недоступен (сеть, таймаут, DNS)
func ErrGatewayUnreachable(err error) *AppError {
	return Wrap(err, CodeGatewayUnreachable, "gateway", "Remote service is unreachable", http.StatusServiceUnavailable)
}

// --- Auth & Session ---

var ErrNoSession = New(
	CodeNoSession,
	"session",
	"Sign in to continue",
	http.StatusUnauthorized,
)

var ErrUserNotFound = New(
	CodeUserNotFound,
	"auth",
	"No account found for this email",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeEmailExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInvalidOTP = New(
	CodeInvalidToken,
	"auth",
	"Invalid verification code",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrRoleMismatch = New(
	CodeForbidden,
	"auth",
	"This account is registered with a different role",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Applications ---

var ErrInvalidTransition = New(
	CodeInvalidTransition,
	"application",
	"Status change is not allowed",
	http.StatusConflict,
)

var ErrDuplicateApplication = New(
	CodeAlreadyExists,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)

// --- Storage ---

var ErrStorageFull = New(
	CodeStorageFull,
	"storage",
	"Local storage quota exceeded",
	http.StatusInsufficientStorage,
)

var ErrStorageCorrupt = New(
	CodeStorageCorrupt,
	"storage",
	"Stored value could not be decoded",
	http.StatusInternalServerError,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
