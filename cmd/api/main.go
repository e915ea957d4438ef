package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pitlane/internal/api/adapters/cache"
	"pitlane/internal/api/adapters/ergast"
	httpServer "pitlane/internal/api/adapters/http"
	"pitlane/internal/api/adapters/postgres"
	"pitlane/internal/api/app"
	"pitlane/internal/api/config"
	db "pitlane/pkg/db/postgres"
	"pitlane/pkg/logger"
	"pitlane/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "API_LOGGER_MODE"
	EnvLoggerLevel = "API_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrConnectDatabase      = "failed to connect to database"
	ErrCreateRedisClient    = "failed to create Redis client, cache endpoints degraded"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "api service started"
	LogServiceShutdownDone = "api service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogApplyingMigrations  = "applying database migrations"
	LogInitDatabase        = "initializing database connection"
	LogInitCache           = "initializing cache"
	LogInitErgastClient    = "initializing Ergast client"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogApplyingMigrations)
		if err := db.MigrateDSN(ctx, cfg.Postgres.DSN, cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, cfg.Postgres.DSN, cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		// Недоступный Redis не мешает запуску: операции кэша будут
		// возвращать ошибку, остальные эндпоинты работают.
		log.Info(ctx, LogInitCache)
		cacheClient, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
			cacheClient = cache.NewUnavailable()
		}

		log.Info(ctx, LogInitErgastClient)
		f1Client := ergast.NewClient(&cfg.Ergast)

		log.Info(ctx, LogInitUseCases)
		userRepo := postgres.NewUserRepository(database.Pool())
		userService := app.NewUserUseCase(userRepo)
		f1Service := app.NewF1UseCase(f1Client)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, userService, f1Service, cacheClient)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Сервер останавливается первым, чтобы дорабатывающие запросы
		// не остались без соединений с хранилищами.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, "Closing Redis connection")
				return cacheClient.Close()
			},
			// Закрытие соединения с базой данных.
			func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
