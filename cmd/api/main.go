// Package main is the entrypoint for the PantryChef API server.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/pantrychef/pantrychef/internal/broker"
	"github.com/pantrychef/pantrychef/internal/config"
	"github.com/pantrychef/pantrychef/internal/handler"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/recipe"
	"github.com/pantrychef/pantrychef/internal/reminder"
	"github.com/pantrychef/pantrychef/internal/repository"
	"github.com/pantrychef/pantrychef/internal/server"
	"github.com/pantrychef/pantrychef/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", sanitizeError(err, cfg.DatabaseURL))
		os.Exit(1)
	}

	// Redis is optional. Without it reminders are only logged.
	var redisBroker *broker.Broker
	if cfg.RedisURL != "" {
		redisBroker, err = broker.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer redisBroker.Close()
		logger.Info("connected to Redis")
	}

	metricsRecorder := metrics.NewInMemory()
	recipeClient := recipe.NewClient(recipe.Config{
		BaseURL: cfg.SpoonacularBaseURL,
		APIKey:  cfg.SpoonacularAPIKey,
	}, nil, metricsRecorder)
	pantryService := service.NewPantryService(repo, repo, recipeClient, cfg.RecipeResultLimit, metricsRecorder)

	var healthRedis handler.HealthChecker
	if redisBroker != nil {
		healthRedis = redisBroker
	}

	r := handler.NewRouter(handler.Handlers{
		Base:    handler.New(),
		Health:  handler.NewHealthHandler(repo, healthRedis),
		Metrics: handler.NewMetricsHandler(metricsRecorder),
		Pantry:  handler.NewPantryHandler(pantryService, logger),
		Recipes: handler.NewRecipeHandler(pantryService, logger),
	}, handler.RouterOptions{
		IsDevelopment:      cfg.IsDevelopment(),
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if cfg.ReminderEnabled {
		if err := startReminders(ctx, cfg, repo, redisBroker, metricsRecorder, srv, logger); err != nil {
			logger.Error("failed to start reminders", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"reminders", cfg.ReminderEnabled,
		"reminder_driver", cfg.ReminderDriver,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// reminderScheduler is implemented by both reminder drivers.
type reminderScheduler interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// startReminders wires the expiry reminder job to the configured driver
// and registers its shutdown with srv.
func startReminders(
	ctx context.Context,
	cfg *config.Config,
	repo *repository.Repository,
	redisBroker *broker.Broker,
	recorder metrics.Recorder,
	srv *server.Server,
	logger *slog.Logger,
) error {
	loc, err := cfg.ReminderLocation()
	if err != nil {
		return err
	}

	notifiers := reminder.MultiNotifier{reminder.NewLogNotifier(logger)}
	if redisBroker != nil && cfg.ReminderStreamEnabled {
		notifiers = append(notifiers, reminder.NewStreamNotifier(redisBroker))
	}
	job := reminder.NewJob(repo, notifiers, loc, logger, recorder)

	var scheduler reminderScheduler
	switch cfg.ReminderDriver {
	case config.ReminderDriverQueue:
		scheduler = reminder.NewQueueScheduler(job, cfg.ReminderInterval, redisBroker.Client(), loc, logger)
	default:
		scheduler = reminder.NewTickerScheduler(job, cfg.ReminderInterval, cfg.ReminderRunOnStart, logger)
	}

	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	srv.OnShutdown("reminder-"+cfg.ReminderDriver, scheduler.Shutdown)
	return nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(newLogHandler(cfg, os.Stdout)).With("service", "pantrychef")
	slog.SetDefault(logger)

	return logger
}

// newLogHandler picks the handler for LOG_FORMAT. Production always logs JSON.
func newLogHandler(cfg *config.Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" || cfg.IsProduction() {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
