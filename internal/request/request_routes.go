package request

import (
	"leavehub/internal/middleware"
	"leavehub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ExtractUserID())
	{
		requests.POST("",
			rbac.Authorize(rbacService, "request", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		requests.GET("", rbac.Authorize(rbacService, "request", "read"), handler.List)
		requests.GET("/pending-approvals", rbac.Authorize(rbacService, "request", "approve"), handler.PendingApprovals)
		requests.GET("/:id", rbac.Authorize(rbacService, "request", "read"), handler.GetById)
		requests.POST("/:id/approve", rbac.Authorize(rbacService, "request", "approve"), handler.Approve)
		requests.POST("/:id/deny", rbac.Authorize(rbacService, "request", "approve"), handler.Deny)
		requests.POST("/:id/cancel", rbac.Authorize(rbacService, "request", "create"), handler.Cancel)
		requests.POST("/:id/admin-cancel", rbac.Authorize(rbacService, "request", "admin_cancel"), handler.AdminCancel)
	}

	balance := r.Group("/balance")
	balance.Use(middleware.AuthMiddleware())
	balance.Use(middleware.ExtractUserID())
	{
		balance.GET("", rbac.Authorize(rbacService, "balance", "read"), handler.Balance)
	}
}
