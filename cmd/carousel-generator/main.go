package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
	"go.uber.org/automaxprocs/maxprocs"

	carouselhandler "github.com/aliskhannn/carousel-generator/internal/api/handlers/carousel"
	"github.com/aliskhannn/carousel-generator/internal/api/router"
	"github.com/aliskhannn/carousel-generator/internal/api/server"
	"github.com/aliskhannn/carousel-generator/internal/assets"
	"github.com/aliskhannn/carousel-generator/internal/compose"
	"github.com/aliskhannn/carousel-generator/internal/config"
	"github.com/aliskhannn/carousel-generator/internal/infra/gemini"
	"github.com/aliskhannn/carousel-generator/internal/infra/kafka/consumer"
	"github.com/aliskhannn/carousel-generator/internal/infra/kafka/producer"
	taskmsg "github.com/aliskhannn/carousel-generator/internal/kafka/handlers/carousel"
	"github.com/aliskhannn/carousel-generator/internal/pdf"
	carouselsvc "github.com/aliskhannn/carousel-generator/internal/service/carousel"
	"github.com/aliskhannn/carousel-generator/internal/storage/file"
	"github.com/aliskhannn/carousel-generator/internal/translate"
)

func main() {
	// Context & signals: used for graceful shutdown on system interrupts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger and load application configuration.
	zlog.Init()
	cfg := config.MustLoad("./config/config.yml")

	// Align GOMAXPROCS with the container CPU quota.
	if _, err := maxprocs.Set(maxprocs.Logger(zlog.Logger.Printf)); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to set GOMAXPROCS")
	}

	// Retry strategy for Kafka and other infrastructure calls.
	strategy := retry.Strategy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
		Backoff:  cfg.Retry.Backoff,
	}

	// Initialize file storage (MinIO).
	storage, err := file.NewStorage(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.BucketName, cfg.Storage.UseSSL)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to storage")
	}

	// One Gemini client serves both image generation and translation.
	gem, err := gemini.NewClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to gemini")
	}

	// Document rendering: measurement and assembly share the same fonts so
	// composed line breaks hold in the output.
	fonts := pdf.FontConfig{
		Regular: cfg.PDF.RegularFont,
		Bold:    cfg.PDF.BoldFont,
		Oblique: cfg.PDF.ObliqueFont,
	}
	metrics, err := pdf.NewMetrics(fonts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load measurement fonts")
	}
	assembler, err := pdf.NewAssembler(fonts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load document fonts")
	}

	// Pipeline stages and the service layer.
	fetcher := assets.NewFetcher(gemini.NewImageClient(gem, cfg.Gemini.ImageModel))
	batcher := translate.NewBatcher(gemini.NewTranslationClient(gem, cfg.Gemini.TextModel))
	composer := compose.NewComposer(metrics)
	p := producer.New(&cfg.Kafka, strategy)
	service := carouselsvc.NewService(fetcher, batcher, composer, assembler, storage, p)

	// Kafka message handler for queued generation tasks.
	taskHandler := taskmsg.NewTaskHandler(service)

	// HTTP handler for carousel routes.
	apiHandler := carouselhandler.NewHandler(service)

	// Kafka consumer for processing queued generation tasks.
	c := consumer.New(&cfg.Kafka, strategy, taskHandler)

	// Start Kafka consumer in a separate goroutine.
	var wg sync.WaitGroup
	wg.Add(1)
	go c.Consume(ctx, &wg)

	// Start HTTP server in a separate goroutine.
	r := router.Setup(apiHandler)
	s := server.New(cfg.Server.HTTPPort, r)
	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Block until context is canceled (SIGINT/SIGTERM).
	<-ctx.Done()
	zlog.Logger.Info().Msg("context done")

	// Wait for Kafka consumer goroutine to finish.
	wg.Wait()

	// Graceful shutdown with timeout for HTTP server.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	// Close Kafka producer and consumer clients.
	if err = p.Client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close kafka producer client")
	}
	if err = c.Client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close kafka consumer client")
	}
}
