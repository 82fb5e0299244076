package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/library-api/docs" // Swagger docs
	"github.com/redmonkez12/library-api/internal/auth"
	"github.com/redmonkez12/library-api/internal/catalog"
	"github.com/redmonkez12/library-api/internal/config"
	"github.com/redmonkez12/library-api/internal/database"
	httpServer "github.com/redmonkez12/library-api/internal/http"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/otp"
	"github.com/redmonkez12/library-api/internal/sms"
	"github.com/redmonkez12/library-api/internal/telemetry"
	"github.com/redmonkez12/library-api/internal/user"
	"github.com/redmonkez12/library-api/internal/validation"
)

// @title           Library API
// @version         1.0
// @description     User registration with phone OTP verification, sign-in, and book and author management.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.WithError(err).Warn("failed to flush traces")
		}
	}()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.CreateSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	sender, err := initSMS(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize SMS client: %w", err)
	}

	validator := validation.New()

	userRepo := user.NewRepository(db)
	otps := otp.NewManager(otp.NewRedisStore(redisClient), cfg.OTP.TTL, cfg.OTP.MaxAttempts)
	authService := auth.NewService(userRepo, otps, sender, validator, logger)
	catalogService := catalog.NewService(catalog.NewRepository(db), validator, logger)

	handlers := httpServer.Handlers{
		Auth:    auth.NewHandler(authService),
		Users:   user.NewHandler(userRepo, validator),
		Catalog: catalog.NewHandler(catalogService),
	}

	checks := map[string]httpServer.HealthCheck{
		"database": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}

	router := httpServer.NewRouter(cfg, handlers, checks, logger)

	server := httpServer.NewServer(
		cfg.Server.Address(),
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// initSMS returns the gateway client, or a sender that only logs codes when
// running in dev without credentials.
func initSMS(cfg *config.Config, logger *logging.Logger) (sms.Sender, error) {
	if !cfg.SMS.HasCredentials() {
		logger.Warn("SMS credentials not set, OTP codes will be logged instead of sent")
		return sms.NewLogSender(logger), nil
	}

	return sms.NewClient(sms.Config{
		BaseURL:    cfg.SMS.BaseURL,
		APIKey:     cfg.SMS.APIKey,
		LineNumber: cfg.SMS.LineNumber,
		Timeout:    cfg.SMS.Timeout,
	})
}
