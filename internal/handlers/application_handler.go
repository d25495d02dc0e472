package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hirehub/internal/auth"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/pkg/apperrors"
)

type ApplicationHandler struct {
	*BaseHandler
	apps repositories.ApplicationRepository
	jobs repositories.JobRepository
}

func NewApplicationHandler(base *BaseHandler, apps repositories.ApplicationRepository, jobs repositories.JobRepository) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, apps: apps, jobs: jobs}
}

func (h *ApplicationHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/applications", h.List)

	protected.POST("/applications", h.Create)
	protected.PUT("/applications/:id", h.Update)
	protected.DELETE("/applications/:id", h.Delete)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.apps.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}
	db := h.GetDB(c)

	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if app.ID == "" {
		app.ID = models.NewID()
	}
	if app.SeekerID == "" {
		app.SeekerID = claims.UserID
	}
	if app.SeekerID != claims.UserID && !auth.IsAdmin(claims) {
		h.Forbidden(c)
		return
	}
	if _, err := h.jobs.FindByID(db, app.JobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			apperrors.HandleError(c, apperrors.EntityNotFound("job", app.JobID))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	if app.Date.IsZero() {
		app.Date = time.Now()
	}

	if err := h.apps.Create(db, &app); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("applications", "created", app.ID, app)
	c.JSON(http.StatusCreated, app)
}

// authorize загружает отклик и проверяет право на запись
func (h *ApplicationHandler) authorize(c *gin.Context, db *gorm.DB) (*models.Application, bool) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return nil, false
	}
	existing, err := h.apps.FindByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	job, err := h.jobs.FindByID(db, existing.JobID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		h.HandleServiceError(c, err)
		return nil, false
	}
	if !auth.CanWriteApplication(claims, *existing, job) {
		h.Forbidden(c)
		return nil, false
	}
	return existing, true
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	db := h.GetDB(c)
	existing, ok := h.authorize(c, db)
	if !ok {
		return
	}

	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if !app.Status.Valid() {
		apperrors.HandleError(c, apperrors.ErrInvalidStatus("application", "Unknown application status"))
		return
	}
	app.ID = existing.ID
	app.JobID = existing.JobID
	app.SeekerID = existing.SeekerID
	app.Date = existing.Date

	if err := h.apps.Update(db, &app); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("applications", "updated", app.ID, app)
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)
	existing, ok := h.authorize(c, db)
	if !ok {
		return
	}
	if err := h.apps.Delete(db, existing.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("applications", "deleted", existing.ID, nil)
	c.Status(http.StatusNoContent)
}
