package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	config "task-store.com/task-store/internal/configs"
	httpapi "task-store.com/task-store/internal/http"
	middleware "task-store.com/task-store/internal/http/middlewares"
	"task-store.com/task-store/internal/logger"
	"task-store.com/task-store/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task store HTTP API backed by a process-local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err := logger.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)
		if err != nil {
			return err
		}
		if envErr != nil {
			log.Debug().Msg(".env file not found, using environment variables")
		}

		taskRepo, closer, err := config.NewTaskRepository(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		taskService := services.NewTaskService(taskRepo, services.WithLocation(cfg.Location))

		limiter, cleanup, err := rateLimiter(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		e := echo.New()
		var middlewares []echo.MiddlewareFunc
		if limiter != nil {
			middlewares = append(middlewares, limiter)
		}
		httpapi.Register(e, httpapi.NewHandler(taskService), log, middlewares...)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Info().
				Str("addr", cfg.AppURL).
				Str("store", cfg.StoreDriver).
				Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("HTTP server shutdown incomplete")
		}

		log.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

// rateLimiter returns nil when rate limiting is disabled.
func rateLimiter(cfg config.Config, log zerolog.Logger) (echo.MiddlewareFunc, func(), error) {
	if cfg.RateLimit == 0 {
		return nil, func() {}, nil
	}

	if cfg.RateLimitBackend != config.RateLimitBackendRedis {
		return middleware.RateLimiter(middleware.NewMemoryCounter(), cfg.RateLimit, time.Minute, log), func() {}, nil
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	counter := middleware.NewRedisCounter(redisClient, cfg.RedisKeyPrefix)
	return middleware.RateLimiter(counter, cfg.RateLimit, time.Minute, log), redisClient.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
