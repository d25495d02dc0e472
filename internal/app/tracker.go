package app

import (
	"context"

	"hirehub/internal/gateway"
	"hirehub/internal/services"
	"hirehub/internal/store"
)

var _ services.Tracker = (*Engine)(nil)

// remoteCollections - коллекции, у которых есть REST-эндпоинты
var remoteCollections = map[string]gateway.Collection{
	store.NameJobs:         gateway.CollectionJobs,
	store.NameApplications: gateway.CollectionApplications,
	store.NameUsers:        gateway.CollectionUsers,
}

// Track копит событие и ставит write-through в очередь. Вызывается только под e.mu.
func (e *Engine) Track(c services.Change, record any) {
	e.pending = append(e.pending, c)

	col, ok := remoteCollections[c.Collection]
	if !ok {
		return
	}

	var fn gateway.WriteFunc
	switch c.Action {
	case services.ActionCreated:
		fn = func(ctx context.Context) *gateway.Failure {
			return e.remote.Create(ctx, col, record).Failure
		}
	case services.ActionUpdated:
		fn = func(ctx context.Context) *gateway.Failure {
			return e.remote.Update(ctx, col, c.ID, record).Failure
		}
	case services.ActionDeleted:
		fn = func(ctx context.Context) *gateway.Failure {
			return e.remote.Delete(ctx, col, c.ID).Failure
		}
	default:
		return
	}
	e.syncer.Dispatch(col, string(c.Action), c.ID, fn)
}

// Note - событие без write-through
func (e *Engine) Note(c services.Change) {
	e.pending = append(e.pending, c)
}
