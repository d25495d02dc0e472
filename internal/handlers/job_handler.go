package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/internal/auth"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobs repositories.JobRepository
}

func NewJobHandler(base *BaseHandler, jobs repositories.JobRepository) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

func (h *JobHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/jobs", h.List)
	public.GET("/jobs/:id", h.Get)

	protected.POST("/jobs", h.Create)
	protected.PUT("/jobs/:id", h.Update)
	protected.DELETE("/jobs/:id", h.Delete)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.FindByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}

	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	if job.ID == "" {
		job.ID = models.NewID()
	}
	if job.EmployerID == "" {
		job.EmployerID = claims.UserID
	}
	if job.Title == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("title is required"))
		return
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now()
	}
	if !auth.CanCreateJob(claims, job) {
		h.Forbidden(c)
		return
	}

	if err := h.jobs.Create(h.GetDB(c), &job); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("jobs", "created", job.ID, job)
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}
	db := h.GetDB(c)

	existing, err := h.jobs.FindByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !auth.CanWriteJob(claims, *existing) {
		h.Forbidden(c)
		return
	}

	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	job.ID = existing.ID
	job.EmployerID = existing.EmployerID
	job.PostedAt = existing.PostedAt

	if err := h.jobs.Update(db, &job); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("jobs", "updated", job.ID, job)
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}
	db := h.GetDB(c)

	existing, err := h.jobs.FindByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !auth.CanWriteJob(claims, *existing) {
		h.Forbidden(c)
		return
	}
	if err := h.jobs.Delete(db, existing.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("jobs", "deleted", existing.ID, nil)
	c.Status(http.StatusNoContent)
}
