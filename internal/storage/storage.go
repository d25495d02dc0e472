package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - файловое хранилище загрузок (резюме, аватары, документы)
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)

	// Open retrieves a file from the given path
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for the file
	GetURL(path string) string
}

// Config holds storage configuration
type Config struct {
	Type     string // local
	BasePath string
	BaseURL  string
	MaxSize  int64
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
