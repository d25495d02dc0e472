package handlers

import (
	"github.com/gin-gonic/gin"

	"hirehub/ws"
)

// CollectionRoutes - обработчик с публичными и защищенными маршрутами
type CollectionRoutes interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	UserHandler        *UserHandler
	UploadHandler      *UploadHandler
	AIHandler          *AIHandler
	LiveHandler        *ws.Handler
}

// Collections - все обработчики, кроме auth
func (h *AppHandlers) Collections() []CollectionRoutes {
	return []CollectionRoutes{
		h.JobHandler,
		h.ApplicationHandler,
		h.UserHandler,
		h.UploadHandler,
		h.AIHandler,
	}
}
