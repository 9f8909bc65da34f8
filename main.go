package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/product-catalog/internal/app/dto"
	"github.com/mrops-br/product-catalog/internal/app/service"
	"github.com/mrops-br/product-catalog/internal/infrastructure/config"
	"github.com/mrops-br/product-catalog/internal/infrastructure/http"
	"github.com/mrops-br/product-catalog/internal/infrastructure/http/handler"
	"github.com/mrops-br/product-catalog/internal/infrastructure/repository/memory"
	"github.com/mrops-br/product-catalog/internal/infrastructure/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var telem *telemetry.Telemetry
	if cfg.OTLP.ExportEnabled {
		telem, err = telemetry.NewTelemetry(ctx, &cfg.OTLP, cfg.Log.SlogLevel())
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP, cfg.Log.SlogLevel())
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API")

	repo := memory.NewProductRepository(tracer, logger)
	productService := service.NewProductService(repo, dto.ProductMapper{}, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, logger, telem.TracerProvider, telem.MeterProvider)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}
