package chat

import (
	"leavehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	chat := r.Group("/chat")
	chat.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		chat.POST("/webhook", handler.Webhook)
	}
}
