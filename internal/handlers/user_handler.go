package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirehub/internal/auth"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	users repositories.UserRepository
}

func NewUserHandler(base *BaseHandler, users repositories.UserRepository) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

// Пользователи создаются только через /api/register
func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/users", h.List)
	public.GET("/users/:id", h.Get)

	protected.PUT("/users/:id", h.Update)
	protected.DELETE("/users/:id", h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.FindByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !auth.CanWriteUser(claims, id) {
		h.Forbidden(c)
		return
	}
	db := h.GetDB(c)

	existing, err := h.users.FindByID(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	user.ID = existing.ID
	user.Email = existing.Email
	user.CreatedAt = existing.CreatedAt

	// роль и статус меняет только админ, сам пользователь может лишь запросить проверку
	if !auth.IsAdmin(claims) {
		user.Role = existing.Role
		user.Status = existing.Status
		if user.VerificationStatus != existing.VerificationStatus && user.VerificationStatus != models.VerificationPending {
			user.VerificationStatus = existing.VerificationStatus
		}
	}

	if err := h.users.Update(db, &user); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.publish("users", "updated", user.ID, user)
	c.JSON(http.StatusOK, user)
}

// Delete удаляет пользователя и каскадом его вакансии и отклики
func (h *UserHandler) Delete(c *gin.Context) {
	claims, ok := h.RequireClaims(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !auth.CanWriteUser(claims, id) {
		h.Forbidden(c)
		return
	}

	if err := h.users.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "user deleted with cascade", "user_id", id, "actor", claims.UserID)
	h.publish("users", "deleted", id, nil)
	c.Status(http.StatusNoContent)
}
