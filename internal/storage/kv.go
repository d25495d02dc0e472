package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound - ключа нет в хранилище (это не ошибка для PersistentStore)
var ErrKeyNotFound = errors.New("key not found")

// KVBackend - сырое key-value хранилище для снимков коллекций и сессии
type KVBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// KVConfig - выбор бэкенда
type KVConfig struct {
	Type          string // file, redis, mongo, memory
	Path          string
	RedisURL      string
	MongoURI      string
	MongoDatabase string
}

// NewKVBackend создает бэкенд по конфигу
func NewKVBackend(ctx context.Context, cfg KVConfig) (KVBackend, error) {
	switch cfg.Type {
	case "", "file":
		return NewFileKV(cfg.Path)
	case "memory":
		return NewMemoryKV(), nil
	case "redis":
		return NewRedisKV(ctx, cfg.RedisURL)
	case "mongo":
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return NewMongoKV(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported persist type: %s", cfg.Type)
	}
}
