package services

import (
	"errors"
	"time"

	"hirehub/internal/store"
	"hirehub/internal/validator"
	"hirehub/pkg/apperrors"
)

// Action - вид изменения коллекции
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionReset   Action = "reset"
)

// Change - одно изменение одной записи
type Change struct {
	Collection string `json:"collection"`
	Action     Action `json:"action"`
	ID         string `json:"id,omitempty"`
}

// Tracker получает каждое изменение, которое сделали сервисы.
// Track - локальная мутация, для серверных коллекций уходит write-through.
// Note - изменение пришло с сервера, отправлять его обратно не нужно.
type Tracker interface {
	Track(c Change, record any)
	Note(c Change)
}

// Env - общие зависимости сервисов движка
type Env struct {
	Stores    *store.Set
	Tracker   Tracker
	Validator *validator.Validator
	Now       func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

func (e *Env) track(collection string, action Action, id string, record any) {
	if e.Tracker != nil {
		e.Tracker.Track(Change{Collection: collection, Action: action, ID: id}, record)
	}
}

func (e *Env) note(collection string, action Action, id string) {
	if e.Tracker != nil {
		e.Tracker.Note(Change{Collection: collection, Action: action, ID: id})
	}
}

// validate переводит ошибки валидатора в AppError
func (e *Env) validate(in any) error {
	if e.Validator == nil {
		return nil
	}
	err := e.Validator.Validate(in)
	if err == nil {
		return nil
	}
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		appErr := apperrors.ValidationError(verr.Errors)
		appErr.Message = verr.Error()
		return appErr
	}
	return apperrors.InternalError(err)
}
