package app

import (
	"fmt"

	"leavehub/internal/auth"
	"leavehub/internal/chat"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/policy"
	"leavehub/internal/rbac"
	"leavehub/internal/request"
	"leavehub/internal/user"
)

func registerModules(app *App) error {
	rbacService, err := rbac.NewService()
	if err != nil {
		return fmt.Errorf("build rbac: %w", err)
	}

	userRepo := user.NewRepository(app.DB)
	userService := user.NewService(userRepo, app.Logger)
	userHandler := user.NewHandler(userService, app.Logger)

	policyRepo := policy.NewRepository(app.DB)
	policyService := policy.NewService(policyRepo, app.Logger)
	policyHandler := policy.NewHandler(policyService, app.Logger)

	outboxRepo := kafka.NewOutboxRepository(app.SQLDB)

	requestRepo := request.NewRepository(app.DB)
	requestService := request.NewServiceWithOutbox(
		app.SQLDB, requestRepo, userRepo, policyService, outboxRepo, app.Logger,
	)
	requestHandler := request.NewHandler(requestService, app.Logger)

	authRepo := auth.NewRepository(app.DB)
	authService := auth.NewService(authRepo, userService, app.Logger)
	authHandler := auth.NewHandler(authService, app.Logger)

	chatService := chat.NewService(userService, requestService, app.Logger)
	chatHandler := chat.NewHandler(chatService, app.Logger)

	v1 := app.Router.Group("/api/v1")
	auth.RegisterRoutes(v1, authHandler)
	user.RegisterRoutes(v1, userHandler, rbacService)
	policy.RegisterRoutes(v1, policyHandler, rbacService)
	request.RegisterRoutes(v1, requestHandler, rbacService, app.Redis)
	chat.RegisterRoutes(v1, chatHandler)

	return nil
}
