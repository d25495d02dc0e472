package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"hirehub/internal/logger"
)

type ClaudeConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// ClaudeProvider реализует Provider через Anthropic Messages API
type ClaudeProvider struct {
	client anthropic.Client
	config ClaudeConfig
}

func NewClaudeProvider(cfg ClaudeConfig, opts ...option.RequestOption) *ClaudeProvider {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &ClaudeProvider{
		client: anthropic.NewClient(opts...),
		config: cfg,
	}
}

func (p *ClaudeProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.config.APIKey == "" {
		return "", ErrNotConfigured
	}
	start := time.Now()

	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.config.MaxTokens
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = p.config.Temperature
	}

	prompt := req.Prompt
	if req.ResponseJSON {
		prompt += "\n\nReturn ONLY valid JSON, no additional text or explanation."
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}
	if req.ResponseJSON {
		text = stripCodeFence(text)
	}

	logger.CtxDebug(ctx, "claude completion done",
		"model", model,
		"duration", time.Since(start),
		"output_length", len(text),
	)
	return text, nil
}

func extractText(resp *anthropic.Message) string {
	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.AsText().Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// stripCodeFence убирает ```json обертку, которую модель иногда добавляет
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
