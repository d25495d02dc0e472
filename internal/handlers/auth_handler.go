package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hirehub/internal/auth"
	"hirehub/internal/email"
	"hirehub/internal/logger"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/pkg/apperrors"
)

type AuthSettings struct {
	RequireVerification bool
	OTPTTL              time.Duration
}

type AuthHandler struct {
	*BaseHandler
	users    repositories.UserRepository
	tokens   *auth.JWTManager
	mailer   email.Provider
	settings AuthSettings
	now      func() time.Time
}

func NewAuthHandler(base *BaseHandler, users repositories.UserRepository, tokens *auth.JWTManager, mailer email.Provider, settings AuthSettings) *AuthHandler {
	if settings.OTPTTL <= 0 {
		settings.OTPTTL = 15 * time.Minute
	}
	return &AuthHandler{
		BaseHandler: base,
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		settings:    settings,
		now:         time.Now,
	}
}

// RegisterRoutes - /api/login, /api/register, /api/verify-otp
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/register", h.Register)
	rg.POST("/verify-otp", h.VerifyOTP)
}

type registerRequest struct {
	ID string `json:"id,omitempty" validate:"max=64"`
	models.RegisterInput
}

var errEmailNotVerified = apperrors.New(apperrors.CodeForbidden, "auth", "Email is not verified", http.StatusForbidden).
	WithHint(apperrors.HintVerifyOTP)

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginInput
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	db := h.GetDB(c)

	user, err := h.users.FindByEmail(db, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		apperrors.HandleError(c, apperrors.ErrUserNotFound.WithHint(apperrors.HintRegister))
		return
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		apperrors.HandleError(c, apperrors.ErrInvalidCredentials.WithHint(apperrors.HintResetPassword))
		return
	}
	switch user.Status {
	case models.UserStatusSuspended:
		apperrors.HandleError(c, apperrors.ErrUserSuspended)
		return
	case models.UserStatusPending:
		apperrors.HandleError(c, errEmailNotVerified)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	if req.Role == models.UserRoleAdmin {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Admin accounts cannot be self-registered"))
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	id := req.ID
	if id == "" {
		id = models.NewID()
	}
	user := &models.User{
		ID:                 id,
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Role:               req.Role,
		CompanyName:        req.CompanyName,
		Status:             models.UserStatusActive,
		VerificationStatus: models.VerificationUnverified,
		Following:          datatypes.JSONSlice[string]{},
		SavedCandidates:    datatypes.JSONSlice[string]{},
		Documents:          datatypes.JSONSlice[models.UserDocument]{},
		CreatedAt:          h.now(),
		PasswordHash:       hash,
	}
	if h.settings.RequireVerification {
		user.Status = models.UserStatusPending
	}

	db := h.GetDB(c)
	if err := h.users.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			apperrors.HandleError(c, apperrors.ErrEmailAlreadyExists.WithHint(apperrors.HintSignIn))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "user registered", "user_id", user.ID, "role", user.Role)

	if !h.settings.RequireVerification {
		h.respondWithToken(c, http.StatusCreated, user)
		return
	}

	if err := h.issueOTP(c, user); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"requireVerification": true,
		"message":             "Verification code sent to " + user.Email,
	})
}

func (h *AuthHandler) issueOTP(c *gin.Context, user *models.User) error {
	code, err := auth.NewOTP()
	if err != nil {
		return err
	}
	if err := h.users.SetOTP(h.GetDB(c), user.ID, code, h.now().Add(h.settings.OTPTTL)); err != nil {
		return err
	}
	if err := h.mailer.SendOTP(c.Request.Context(), user.Email, user.Name, code, h.settings.OTPTTL); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email",
			"Failed to send verification code", http.StatusBadGateway)
	}
	return nil
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPInput
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	db := h.GetDB(c)

	user, err := h.users.FindByEmail(db, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		apperrors.HandleError(c, apperrors.ErrInvalidOTP.WithHint(apperrors.HintVerifyOTP))
		return
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !auth.CheckOTP(user.OTPCode, user.OTPExpiresAt, req.Code, h.now()) {
		apperrors.HandleError(c, apperrors.ErrInvalidOTP.WithHint(apperrors.HintVerifyOTP))
		return
	}
	if err := h.users.Activate(db, user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	user.Status = models.UserStatusActive
	user.OTPCode = ""
	user.OTPExpiresAt = nil

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.Generate(*user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(status, gin.H{"user": user, "token": token})
}
