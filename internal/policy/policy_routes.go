package policy

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
	policies := r.Group("/policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("", rbac.Authorize(rbacService, "policy", "read"), handler.List)
		policies.PATCH("/:category/:name", rbac.Authorize(rbacService, "policy", "update"), handler.Patch)
	}
}
