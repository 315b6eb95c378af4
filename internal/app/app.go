package app

import (
	"database/sql"
	"fmt"
	"os"

	"leavehub/internal/bootstrap"
	"leavehub/internal/middleware"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

type Config struct {
	HTTPAddr    string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	RedisAddr   string
	KafkaBroker string
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "leavehub"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type App struct {
	Config Config
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Router *gin.Engine
	Audit  bootstrap.AuditLogger
	Logger *zap.Logger
}

// BuildApp connects the backing stores and assembles the HTTP surface.
// The worker and consumer binaries reuse the store half via BuildStores.
func BuildApp(logger *zap.Logger) (*App, error) {
	apperror.Init()
	cfg := LoadConfig()

	db, sqlDB, rdb, err := BuildStores(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrate(db, sqlDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seedPolicies(db, logger); err != nil {
		return nil, fmt.Errorf("seed policies: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	app := &App{
		Config: cfg,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Router: router,
		Audit:  bootstrap.NewStdoutAuditLogger(logger),
		Logger: logger,
	}

	if err := registerModules(app); err != nil {
		return nil, fmt.Errorf("register modules: %w", err)
	}
	return app, nil
}

func BuildStores(cfg Config) (*gorm.DB, *sql.DB, *redis.Client, error) {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, sqlDB, rdb, nil
}
