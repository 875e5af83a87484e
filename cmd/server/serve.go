package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/domain/fiber/handler"
	"github.com/fadilmartias/nexo-carreira/internal/middleware"
	"github.com/fadilmartias/nexo-carreira/internal/repository"
	"github.com/fadilmartias/nexo-carreira/internal/service"
	"github.com/fadilmartias/nexo-carreira/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// newFiberApp applies the global middleware stack. ready backs /readyz.
func newFiberApp(appConfig *config.AppConfig, limiterStorage fiber.Storage, ready func() bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: usecase.MaxResumeSize + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.AllowOrigins,
		AllowHeaders: "authorization, x-client-info, apikey, content-type",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return ready == nil || ready()
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute, limiterStorage,
		middleware.ByPathPrefix("/api/", handler.EnvelopeError, middleware.PlainError)))
	return app
}

func runServe(ctx context.Context) error {
	appConfig := config.LoadAppConfig()
	geminiConfig := config.LoadGeminiConfig()

	db, err := ConnectDB()
	if err != nil {
		return err
	}
	if err := Migrate(db, geminiConfig.CareerTracksEnabled); err != nil {
		return err
	}

	var limiterStorage fiber.Storage
	if url := config.LoadRedisConfig().URL; url != "" {
		redisStorage, err := middleware.NewRedisStorage(url)
		if err != nil {
			return err
		}
		defer redisStorage.Close()
		limiterStorage = redisStorage
		appLog.Info("Rate limiter backed by Redis")
	}

	gemini, err := service.NewGeminiService(ctx, geminiConfig, appLog)
	if err != nil {
		return err
	}
	gateway := service.NewGatewayService(config.LoadGatewayConfig(), appLog)
	resumes, err := service.NewResumeStorage(ctx, config.LoadStorageConfig())
	if err != nil {
		return err
	}
	verifier := service.NewTokenVerifier(config.LoadSupabaseConfig(), appLog)

	uc := usecase.NewAssessmentUsecase(repository.NewAssessmentRepository(db), gemini, gateway, resumes, appLog)
	if geminiConfig.CareerTracksEnabled {
		uc.WithCareerTracks(repository.NewCareerTrackRepository(db), gemini)
	}

	app := newFiberApp(appConfig, limiterStorage, dbReady(db))
	handler.NewFunctionHandler(uc, appLog).RegisterRoutes(app, middleware.Auth(verifier, appLog, middleware.PlainError))
	apiAuth := middleware.Auth(verifier, appLog, handler.EnvelopeError)
	handler.NewAssessmentHandler(uc, appLog).RegisterRoutes(app, apiAuth, limiterStorage)
	handler.NewDashboardHandler(uc, appLog).RegisterRoutes(app, apiAuth)

	go monitorGoroutines(ctx)

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("Server running", "port", appConfig.Port, "env", appConfig.Env)
		errCh <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		appLog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func dbReady(db *gorm.DB) func() bool {
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx) == nil
	}
}

func monitorGoroutines(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			appLog.Debug("Active goroutines", "count", runtime.NumGoroutine())
		}
	}
}
