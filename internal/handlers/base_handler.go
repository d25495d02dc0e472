package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hirehub/internal/auth"
	"hirehub/internal/logger"
	"hirehub/internal/middleware"
	"hirehub/internal/repositories"
	"hirehub/internal/validator"
	"hirehub/pkg/apperrors"
	"hirehub/pkg/contextkeys"
)

// Publisher - рассылка изменений коллекций подписчикам /api/ws
type Publisher interface {
	Publish(collection, action, id string, record any)
}

type BaseHandler struct {
	validator *validator.Validator
	events    Publisher
}

func NewBaseHandler(v *validator.Validator, events Publisher) *BaseHandler {
	return &BaseHandler{
		validator: v,
		events:    events,
	}
}

func (h *BaseHandler) publish(collection, action, id string, record any) {
	if h.events != nil {
		h.events.Publish(collection, action, id, record)
	}
}

// GetDB извлекает *gorm.DB (пул или транзакцию), который положил DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError переводит ошибки репозиториев в AppError
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		apperrors.HandleError(c, apperrors.ErrAlreadyExists(err))
		return
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// клиентский id уже занят другой записью
		apperrors.HandleError(c, apperrors.ErrConflict(err, "resource", "Record with this id already exists"))
		return
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// RequireClaims - claims из AuthMiddleware, иначе 401
func (h *BaseHandler) RequireClaims(c *gin.Context) (*auth.Claims, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: claims not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return nil, false
	}
	return claims, true
}

func (h *BaseHandler) Forbidden(c *gin.Context) {
	apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
}
