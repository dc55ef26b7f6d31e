package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/applify/internal/app"
	"github.com/fadilmartias/applify/internal/config"
	"github.com/fadilmartias/applify/internal/domain/fiber/handler"
	applog "github.com/fadilmartias/applify/internal/logger"
	"github.com/fadilmartias/applify/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zapLogger, err := applog.New(appConfig.IsProduction(), appConfig.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build application", zap.Error(err))
	}

	server := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})
	server.Use(logger.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	server.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	server.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	server.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	server.Use(healthcheck.New())

	server.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	server.Use(middleware.RateLimiter(50, 1*time.Minute))

	handler.NewGenerateHandler(container.Generation, zapLogger).RegisterRoutes(server)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zapLogger.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		zapLogger.Info("shutting down server")
		if err := server.ShutdownWithTimeout(30 * time.Second); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := server.Listen(appConfig.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
