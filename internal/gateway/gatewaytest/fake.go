// Package gatewaytest - управляемая подмена gateway.Remote для тестов движка
package gatewaytest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"hirehub/internal/gateway"
	"hirehub/internal/models"
	"hirehub/pkg/apperrors"
)

var errDown = errors.New("connection refused")

// Write - запомненный write-through
type Write struct {
	Method     string
	Collection gateway.Collection
	ID         string
	Record     any
}

// Remote отвечает заранее заданными результатами и запоминает все записи.
// Down=true делает недоступными все вызовы.
type Remote struct {
	mu sync.Mutex

	Down bool

	Jobs         []models.Job
	Applications []models.Application
	Users        []models.User

	LoginResult    gateway.Result[gateway.AuthPayload]
	RegisterResult gateway.Result[gateway.AuthPayload]
	VerifyResult   gateway.Result[gateway.AuthPayload]

	// WriteFailure возвращается на каждую запись (nil - успех)
	WriteFailure *gateway.Failure

	writes []Write
	token  string
}

var _ gateway.Remote = (*Remote)(nil)

func OK[T any](v T) gateway.Result[T] {
	return gateway.Result[T]{Data: v}
}

func Unreachable[T any]() gateway.Result[T] {
	return gateway.Result[T]{Failure: &gateway.Failure{Kind: gateway.FailureUnreachable, Err: errDown}}
}

func Rejected[T any](status int, code apperrors.ErrorCode, message string) gateway.Result[T] {
	return gateway.Result[T]{Failure: &gateway.Failure{
		Kind:       gateway.FailureRejected,
		StatusCode: status,
		Code:       code,
		Message:    message,
	}}
}

func (r *Remote) down() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Down
}

func (r *Remote) FetchJobs(context.Context) gateway.Result[[]models.Job] {
	if r.down() {
		return Unreachable[[]models.Job]()
	}
	return OK(r.Jobs)
}

func (r *Remote) FetchApplications(context.Context) gateway.Result[[]models.Application] {
	if r.down() {
		return Unreachable[[]models.Application]()
	}
	return OK(r.Applications)
}

func (r *Remote) FetchUsers(context.Context) gateway.Result[[]models.User] {
	if r.down() {
		return Unreachable[[]models.User]()
	}
	return OK(r.Users)
}

func (r *Remote) record(method string, c gateway.Collection, id string, rec any) gateway.Result[json.RawMessage] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return Unreachable[json.RawMessage]()
	}
	r.writes = append(r.writes, Write{Method: method, Collection: c, ID: id, Record: rec})
	if r.WriteFailure != nil {
		return gateway.Result[json.RawMessage]{Failure: r.WriteFailure}
	}
	return OK(json.RawMessage(`{}`))
}

func (r *Remote) Create(_ context.Context, c gateway.Collection, rec any) gateway.Result[json.RawMessage] {
	id := ""
	if e, ok := rec.(models.Entity); ok {
		id = e.GetID()
	}
	return r.record("POST", c, id, rec)
}

func (r *Remote) Update(_ context.Context, c gateway.Collection, id string, rec any) gateway.Result[json.RawMessage] {
	return r.record("PUT", c, id, rec)
}

func (r *Remote) Delete(_ context.Context, c gateway.Collection, id string) gateway.Result[json.RawMessage] {
	return r.record("DELETE", c, id, nil)
}

func (r *Remote) auth(res gateway.Result[gateway.AuthPayload]) gateway.Result[gateway.AuthPayload] {
	if r.down() {
		return Unreachable[gateway.AuthPayload]()
	}
	return res
}

func (r *Remote) Login(context.Context, gateway.LoginRequest) gateway.Result[gateway.AuthPayload] {
	return r.auth(r.LoginResult)
}

func (r *Remote) Register(context.Context, gateway.RegisterRequest) gateway.Result[gateway.AuthPayload] {
	return r.auth(r.RegisterResult)
}

func (r *Remote) VerifyOTP(context.Context, gateway.VerifyOTPRequest) gateway.Result[gateway.AuthPayload] {
	return r.auth(r.VerifyResult)
}

func (r *Remote) Upload(_ context.Context, filename string, _ io.Reader) gateway.Result[gateway.UploadPayload] {
	if r.down() {
		return Unreachable[gateway.UploadPayload]()
	}
	return OK(gateway.UploadPayload{URL: "/uploads/" + filename, Name: filename})
}

func (r *Remote) Generate(_ context.Context, req gateway.GenerateRequest) gateway.Result[gateway.GeneratePayload] {
	if r.down() {
		return Unreachable[gateway.GeneratePayload]()
	}
	return OK(gateway.GeneratePayload{Text: "generated: " + req.Prompt})
}

func (r *Remote) SetToken(token string) {
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
}

func (r *Remote) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Writes - копия всех принятых записей по порядку
func (r *Remote) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}
