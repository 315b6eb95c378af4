package main

import (
	"context"
	"log"

	"leavehub/internal/app"
	"leavehub/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	application, err := app.BuildApp(logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	server := bootstrap.NewServer(application.Config.HTTPAddr, application.Router, application.Audit, logger)
	if err := server.Run(context.Background()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
