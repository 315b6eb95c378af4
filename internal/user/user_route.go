package user

import (
	"leavehub/internal/middleware"
	"leavehub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handler.Me)
		users.GET("", rbac.Authorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/:id", rbac.Authorize(rbacService, "user", "read"), handler.GetById)
		users.GET("/:id/reports", rbac.Authorize(rbacService, "user", "read"), handler.GetReports)
		users.PATCH("/:id", rbac.Authorize(rbacService, "user", "update"), handler.Update)
	}
}
