package auth

import (
	"leavehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitByIP(rate.Limit(5), 10))
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}
}
