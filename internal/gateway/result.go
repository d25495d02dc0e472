package gateway

import (
	"fmt"

	"hirehub/pkg/apperrors"
)

// FailureKind - почему запрос к серверу не дал данных
type FailureKind string

const (
	// FailureUnreachable - сеть, таймаут, DNS, отмена контекста
	FailureUnreachable FailureKind = "unreachable"
	// FailureRejected - сервер ответил не-2xx
	FailureRejected FailureKind = "rejected"
	// FailureMalformed - 2xx, но тело не разбирается
	FailureMalformed FailureKind = "malformed"
)

type Failure struct {
	Kind       FailureKind
	StatusCode int
	Code       apperrors.ErrorCode
	Message    string
	Err        error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureRejected:
		return fmt.Sprintf("gateway rejected (%d %s): %s", f.StatusCode, f.Code, f.Message)
	case FailureMalformed:
		return fmt.Sprintf("gateway malformed response: %v", f.Err)
	default:
		return fmt.Sprintf("gateway unreachable: %v", f.Err)
	}
}

func (f *Failure) Unwrap() error { return f.Err }

// Unreachable - true, если сервер не ответил вообще
func (f *Failure) Unreachable() bool {
	return f != nil && f.Kind == FailureUnreachable
}

// Status - true для отказа сервера с данным HTTP кодом
func (f *Failure) Status(code int) bool {
	return f != nil && f.Kind == FailureRejected && f.StatusCode == code
}

// AppError переводит отказ в доменную ошибку
func (f *Failure) AppError() *apperrors.AppError {
	if f == nil {
		return nil
	}
	switch f.Kind {
	case FailureUnreachable:
		return apperrors.ErrGatewayUnreachable(f.Err)
	case FailureMalformed:
		return apperrors.Wrap(f.Err, apperrors.CodeExternalServiceError, "gateway", "Unexpected server response", f.StatusCode)
	}
	code := f.Code
	if code == "" {
		code = apperrors.CodeExternalServiceError
	}
	msg := f.Message
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", f.StatusCode)
	}
	return apperrors.New(code, "gateway", msg, f.StatusCode)
}

// Result - либо Data, либо Failure. Шлюз не возвращает голых ошибок.
type Result[T any] struct {
	Data    T
	Failure *Failure
}

func (r Result[T]) OK() bool { return r.Failure == nil }

func ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func fail[T any](f *Failure) Result[T] {
	return Result[T]{Failure: f}
}
