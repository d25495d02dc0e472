package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hirehub/internal/auth"
	"hirehub/internal/logger"
	"hirehub/pkg/apperrors"
	"hirehub/pkg/contextkeys"
)

// AuthMiddleware - проверка Bearer JWT. Claims кладутся в gin.Context.
func AuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected token", "error", err)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.ClaimsContextKey), claims)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetClaims - claims текущего запроса или nil
func GetClaims(c *gin.Context) *auth.Claims {
	val, ok := c.Get(string(contextkeys.ClaimsContextKey))
	if !ok {
		return nil
	}
	claims, _ := val.(*auth.Claims)
	return claims
}
