package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirehub/internal/ai"
	"hirehub/pkg/apperrors"
)

type AIHandler struct {
	*BaseHandler
	provider ai.Provider
}

func NewAIHandler(base *BaseHandler, provider ai.Provider) *AIHandler {
	return &AIHandler{BaseHandler: base, provider: provider}
}

func (h *AIHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.POST("/ai/generate", h.Generate)
}

type generateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=20000"`
	Model  string `json:"model,omitempty" validate:"max=100"`
	Config struct {
		MaxTokens    int64   `json:"maxTokens,omitempty" validate:"gte=0,lte=8192"`
		Temperature  float64 `json:"temperature,omitempty" validate:"gte=0,lte=1"`
		ResponseJSON bool    `json:"responseJson,omitempty"`
	} `json:"config"`
}

func (h *AIHandler) Generate(c *gin.Context) {
	var req generateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	text, err := h.provider.Generate(c.Request.Context(), ai.Request{
		Prompt:       req.Prompt,
		Model:        req.Model,
		MaxTokens:    req.Config.MaxTokens,
		Temperature:  req.Config.Temperature,
		ResponseJSON: req.Config.ResponseJSON,
	})
	if errors.Is(err, ai.ErrNotConfigured) {
		apperrors.HandleError(c, apperrors.New(apperrors.CodeExternalServiceError, "ai",
			"AI assistant is not configured", http.StatusServiceUnavailable))
		return
	}
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "ai",
			"AI request failed", http.StatusBadGateway))
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
