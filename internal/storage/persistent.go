package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hirehub/internal/logger"
	"hirehub/pkg/apperrors"
)

// Ключи снимков
const (
	KeyJobs           = "jobs"
	KeyApplications   = "applications"
	KeyUsers          = "users"
	KeyNotifications  = "notifications"
	KeyMessages       = "messages"
	KeyCommunityPosts = "community_posts"
	KeyReviews        = "reviews"
	KeyBlogPosts      = "blog_posts"
	KeyReports        = "reports"
	KeyAnnouncements  = "announcements"
	KeyJobAlerts      = "job_alerts"
	KeyActivityLogs   = "activity_logs"
	KeyCurrentUser    = "session.current_user"
	KeySessionToken   = "session.token"
)

// SavedJobsKey - избранные вакансии хранятся отдельно на каждого пользователя
func SavedJobsKey(userID string) string {
	return "saved_jobs." + userID
}

// PersistentStore - адаптер над KVBackend, который никогда не возвращает ошибок.
// Переполнение и битые данные логируются и проглатываются.
type PersistentStore struct {
	backend KVBackend
	prefix  string
	timeout time.Duration
}

func NewPersistentStore(backend KVBackend, prefix string) *PersistentStore {
	return &PersistentStore{
		backend: backend,
		prefix:  prefix,
		timeout: 5 * time.Second,
	}
}

func (p *PersistentStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

// LoadOr возвращает сохраненное значение или fallback, если ключа нет или он не читается
func LoadOr[T any](p *PersistentStore, key string, fallback T) T {
	v, ok := Load[T](p, key)
	if !ok {
		return fallback
	}
	return v
}

// Load - то же, но сообщает, нашлось ли значение
func Load[T any](p *PersistentStore, key string) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}

	ctx, cancel := p.ctx()
	defer cancel()

	raw, err := p.backend.Get(ctx, p.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logger.StorageLog("load", key, err)
		}
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.StorageLog("decode", key, apperrors.ErrStorageCorrupt.WithError(err))
		return zero, false
	}
	return v, true
}

// Save сериализует значение. Ошибки только в лог.
func (p *PersistentStore) Save(key string, value any) {
	if p == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.StorageLog("encode", key, err)
		return
	}

	ctx, cancel := p.ctx()
	defer cancel()

	if err := p.backend.Set(ctx, p.prefix+key, raw); err != nil {
		logger.StorageLog("save", key, err)
		return
	}
	logger.StorageLog("save", key, nil)
}

func (p *PersistentStore) Remove(key string) {
	if p == nil {
		return
	}

	ctx, cancel := p.ctx()
	defer cancel()

	if err := p.backend.Delete(ctx, p.prefix+key); err != nil {
		logger.StorageLog("remove", key, err)
	}
}

// Close закрывает бэкенд (redis/mongo соединения)
func (p *PersistentStore) Close(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.backend.Close(ctx)
}
