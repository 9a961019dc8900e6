package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"freelance/cmd"
	"freelance/internal/adapters/out/codestore"
	"freelance/internal/adapters/out/email"
	postgres_adapter "freelance/internal/adapters/out/postgres"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultCodeTTL               = 10 * time.Minute
	defaultNotificationRetention = 30 * 24 * time.Hour
	shutdownTimeout              = 10 * time.Second
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogFormat)

	gormDB := mustGormOpen(configs)
	if err := postgres_adapter.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		newCodeStore(configs),
		newEmailSender(configs, logger),
		logger,
	)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}

	startWebServer(app, configs.HTTPPort, logger)

	jobManager.StopAll()
	app.Hub().Close()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		SMTPHost:              goDotEnvVariable("SMTP_HOST"),
		SMTPPort:              intVariable("SMTP_PORT", 587),
		SMTPUsername:          goDotEnvVariable("SMTP_USERNAME"),
		SMTPPassword:          goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:              goDotEnvVariable("SMTP_FROM"),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:         goDotEnvVariable("REDIS_PASSWORD"),
		VerificationCodeTTL:   durationVariable("VERIFICATION_CODE_TTL", defaultCodeTTL),
		NotificationRetention: durationVariable("NOTIFICATION_RETENTION", defaultNotificationRetention),
		LogFormat:             goDotEnvVariable("LOG_FORMAT"),
	}
	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func intVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return v
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return v
}

func newLogger(format string) *slog.Logger {
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func mustGormOpen(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	return gormDB
}

func newCodeStore(config cmd.Config) ports.CodeStore {
	if config.RedisAddr == "" {
		return codestore.NewMemoryStore(kernel.SystemClock{})
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}
	return codestore.NewRedisStore(client)
}

func newEmailSender(config cmd.Config, logger *slog.Logger) ports.EmailSender {
	if config.SMTPHost == "" {
		return email.NewLogSender(logger)
	}
	return email.NewGomailSender(email.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	})
}

// startWebServer blocks until SIGINT or SIGTERM, then drains in-flight
// requests.
func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	app.CreateHTTPServer().RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
