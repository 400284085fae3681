package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/turfgrid/turf-booking-backend/internal/app"
	"github.com/turfgrid/turf-booking-backend/internal/booking"
	"github.com/turfgrid/turf-booking-backend/internal/config"
	"github.com/turfgrid/turf-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Structured logger
	var logger *zap.Logger
	if cfg.IsProduction {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// Init app container
	container := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		Logger:            logger,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		RazorpayKeyID:     cfg.RazorpayKeyID,
		RazorpayKeySecret: cfg.RazorpayKeySecret,
		Currency:          cfg.Currency,
		Policy: booking.Policy{
			PlatformFeeRate: cfg.PlatformFeeRate,
			PenaltyTotal:    cfg.CancelPenaltyTotal,
			PenaltyOwner:    cfg.CancelPenaltyOwner,
			PenaltyPlatform: cfg.CancelPenaltyPlatform,
		},
	})

	if cfg.RazorpayKeyID == "" {
		logger.Warn("payment gateway credentials not set; order creation disabled, refunds skipped")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
