package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirehub/internal/handlers"
	"hirehub/internal/logger"
)

// Middlewares - проверка токена и лимит на auth маршрутах
type Middlewares struct {
	Auth      gin.HandlerFunc
	RateLimit gin.HandlerFunc
}

// RegisterRoutes регистрирует REST API под /api
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, mw Middlewares) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("")
	if mw.RateLimit != nil {
		authGroup.Use(mw.RateLimit)
	}
	appHandlers.AuthHandler.RegisterRoutes(authGroup)

	protected := api.Group("")
	protected.Use(mw.Auth)

	for _, h := range appHandlers.Collections() {
		h.RegisterRoutes(api, protected)
	}
	router.GET("/uploads/*path", appHandlers.UploadHandler.Serve)
	if appHandlers.LiveHandler != nil {
		api.GET("/ws", appHandlers.LiveHandler.ServeWS)
	}

	logger.Info("HTTP routes registered", "routes", len(router.Routes()))
}
