// Package app - движок состояния клиента: коллекции, сервисы, режим связи и write-through
// за одним фасадом. UI работает только с Engine.
package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hirehub/internal/fixtures"
	"hirehub/internal/gateway"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/services"
	"hirehub/internal/storage"
	"hirehub/internal/store"
	"hirehub/internal/validator"
)

// Event - изменение коллекции, которое видят наблюдатели
type Event = services.Change

type Observer func(Event)

// Options - зависимости движка. Remote и Persist подменяются в тестах.
type Options struct {
	Remote   gateway.Remote
	Persist  *storage.PersistentStore
	Fixtures *fixtures.Set
	Sync     gateway.SyncerConfig
	Now      func() time.Time
}

type Engine struct {
	// mu сериализует действия: порядок вызовов = порядок в коллекциях
	mu      sync.Mutex
	pending []Event

	base   context.Context
	cancel context.CancelFunc

	remote   gateway.Remote
	persist  *storage.PersistentStore
	detector *gateway.Detector
	syncer   *gateway.Syncer
	demo     *fixtures.Set
	stores   *store.Set
	svc      *services.Container

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

func New(opts Options) *Engine {
	base, cancel := context.WithCancel(context.Background())

	demo := opts.Fixtures
	if demo == nil {
		demo = fixtures.MustLoad()
	}
	detector := gateway.NewDetector()

	e := &Engine{
		base:      base,
		cancel:    cancel,
		remote:    opts.Remote,
		persist:   opts.Persist,
		detector:  detector,
		syncer:    gateway.NewSyncer(base, detector, opts.Sync),
		demo:      demo,
		stores:    store.NewSet(opts.Persist),
		observers: make(map[int]Observer),
	}

	env := &services.Env{
		Stores:    e.stores,
		Tracker:   e,
		Validator: validator.New(),
		Now:       opts.Now,
	}
	e.svc = services.NewContainer(env, opts.Persist, opts.Remote, detector, demo)
	return e
}

// Bootstrap загружает jobs, applications и users параллельно.
// Любая ошибка переводит сессию в offline: коллекции поднимаются из снимков или демо-данных.
func (e *Engine) Bootstrap(ctx context.Context) gateway.Mode {
	var (
		jobs  []models.Job
		apps  []models.Application
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res := e.remote.FetchJobs(gctx)
		if !res.OK() {
			return res.Failure
		}
		jobs = res.Data
		return nil
	})
	g.Go(func() error {
		res := e.remote.FetchApplications(gctx)
		if !res.OK() {
			return res.Failure
		}
		apps = res.Data
		return nil
	})
	g.Go(func() error {
		res := e.remote.FetchUsers(gctx)
		if !res.OK() {
			return res.Failure
		}
		users = res.Data
		return nil
	})
	fetchErr := g.Wait()

	var mode gateway.Mode
	_ = e.do(func() error {
		mode = e.detector.Latch(fetchErr == nil)

		if mode == gateway.ModeOnline {
			e.stores.Jobs.Seed(jobs)
			e.stores.Applications.Seed(apps)
			e.stores.Users.Seed(users)
		} else {
			logger.Warn("bootstrap failed, switching to offline mode", "error", fetchErr)
			e.stores.Jobs.LoadSnapshot(e.demo.Jobs)
			e.stores.Applications.LoadSnapshot(e.demo.Applications)
			e.stores.Users.LoadSnapshot(e.demo.Users)
		}

		// у вторичных коллекций нет серверных эндпоинтов
		e.stores.Notifications.LoadSnapshot(nil)
		e.stores.Messages.LoadSnapshot(nil)
		e.stores.CommunityPosts.LoadSnapshot(e.demo.CommunityPosts)
		e.stores.Reviews.LoadSnapshot(nil)
		e.stores.BlogPosts.LoadSnapshot(e.demo.BlogPosts)
		e.stores.Reports.LoadSnapshot(nil)
		e.stores.Announcements.LoadSnapshot(e.demo.Announcements)
		e.stores.JobAlerts.LoadSnapshot(nil)
		e.stores.ActivityLogs.LoadSnapshot(nil)

		e.svc.Session.Restore()

		for _, name := range []string{
			store.NameJobs, store.NameApplications, store.NameUsers, store.NameNotifications,
			store.NameMessages, store.NameCommunityPosts, store.NameReviews, store.NameBlogPosts,
			store.NameReports, store.NameAnnouncements, store.NameJobAlerts, store.NameActivityLogs,
		} {
			e.pending = append(e.pending, Event{Collection: name, Action: services.ActionReset})
		}
		return nil
	})

	logger.Info("bootstrap completed",
		"mode", mode,
		"jobs", e.stores.Jobs.Len(),
		"applications", e.stores.Applications.Len(),
		"users", e.stores.Users.Len(),
	)
	return mode
}

// Reconnect пробует вернуться в online. Коллекции не перезагружаются:
// локальные изменения, сделанные offline, остаются источником истины и на сервер не уходят.
// Пока открыта offline-сессия без токена, переход не делается: сервер отклонил бы каждую запись.
func (e *Engine) Reconnect(ctx context.Context) bool {
	if !e.detector.IsOffline() {
		return true
	}
	if u, ok := e.CurrentUser(); ok && e.svc.Session.Token() == "" {
		logger.Info("reconnect postponed: session has no server token, sign in again after logout", "user_id", u.ID)
		return false
	}
	ok := e.detector.Reconnect(ctx, func(ctx context.Context) bool {
		return e.remote.FetchJobs(ctx).OK()
	})
	if ok {
		logger.Info("connection restored, write-through resumed")
		e.publish([]Event{{Collection: "mode", Action: services.ActionUpdated, ID: string(gateway.ModeOnline)}})
	}
	return ok
}

// Subscribe регистрирует наблюдателя. Вызовы идут после фиксации изменения, вне блокировки движка.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	e.obsMu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	e.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.obsMu.Lock()
			delete(e.observers, id)
			e.obsMu.Unlock()
		})
	}
}

func (e *Engine) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	e.obsMu.RLock()
	observers := make([]Observer, 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	e.obsMu.RUnlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// do выполняет действие под блокировкой и публикует накопленные события после нее
func (e *Engine) do(fn func() error) error {
	e.mu.Lock()
	err := fn()
	events := e.pending
	e.pending = nil
	e.mu.Unlock()

	e.publish(events)
	return err
}

// WaitSync ждет, пока уйдут все write-through (для тестов и завершения работы)
func (e *Engine) WaitSync() {
	e.syncer.Wait()
}

// Close дожидается очередей, останавливает воркеры и закрывает хранилище.
// Если ctx истек раньше, неотправленные write-through отменяются.
func (e *Engine) Close(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		e.syncer.Close()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		logger.Warn("closing with pending write-through requests", "error", ctx.Err())
		e.cancel()
		<-drained
	}
	e.cancel()
	return e.persist.Close(context.WithoutCancel(ctx))
}
