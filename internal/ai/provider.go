// Package ai - генерация текста для /api/ai/generate
package ai

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("ai provider is not configured")

type Request struct {
	Prompt       string
	Model        string
	MaxTokens    int64
	Temperature  float64
	ResponseJSON bool
}

type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
