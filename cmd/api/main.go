package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/passforge/coupon-pass-service/internal/artwork"
	"github.com/passforge/coupon-pass-service/internal/config"
	"github.com/passforge/coupon-pass-service/internal/handler"
	"github.com/passforge/coupon-pass-service/internal/passkit"
	"github.com/passforge/coupon-pass-service/internal/repository"
	"github.com/passforge/coupon-pass-service/internal/service"
	"github.com/passforge/coupon-pass-service/internal/validator"
	"github.com/passforge/coupon-pass-service/pkg/passsign"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Load the signing identity once at startup; requests never re-read
	// certificate material from disk.
	identity, err := passsign.LoadIdentity(
		cfg.Signing.CertPath,
		cfg.Signing.KeyPath,
		cfg.Signing.KeyPassword,
		cfg.Signing.IntermediatePath,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load signing identity")
	}

	// Load the immutable pass template and its icon set.
	template, err := passkit.Load(cfg.Pass.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load pass template")
	}

	// Initialize the archive store.
	archives, err := repository.NewArchiveRepository(cfg.Pass.StoreDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize archive store")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Coupon Pass Service",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Initialize pass components (layered architecture)
	deriver := artwork.NewDeriver(cfg.Pass.ScratchDir)
	builder := passkit.NewBuilder(template)
	signer := passsign.NewSigner(identity)
	passService := service.NewPassService(deriver, builder, signer, archives)
	passHandler := handler.NewPassHandler(passService, archives, validate, cfg.Pass.PublicBaseURL)

	// Health handler
	healthHandler := handler.NewHealthHandler(archives)
	app.Get("/health", healthHandler.Check)

	// Pass routes
	app.Post("/api/passes", passHandler.CreatePass)
	app.Get("/passes/:filename", passHandler.DownloadPass)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
