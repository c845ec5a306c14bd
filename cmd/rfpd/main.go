package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/async"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/convert"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/excel"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/extract"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/jobstore"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/llm/openai"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/pipeline"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/server"
	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/storage"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs, err := jobstore.Open(cfg.JobStore.Path, logger)
	if err != nil {
		logger.Error("failed to open job store", "path", cfg.JobStore.Path, "error", err)
		os.Exit(1)
	}
	defer jobs.Close()

	results, err := newResultStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize result storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	llmClient := openai.NewClient(openai.Config{
		Endpoint:            cfg.LLM.Endpoint,
		Deployment:          cfg.LLM.Deployment,
		APIVersion:          cfg.LLM.APIVersion,
		APIKey:              cfg.LLM.APIKey,
		Timeout:             cfg.LLM.Timeout,
		MaxCompletionTokens: cfg.LLM.MaxCompletionTokens,
	}, logger)

	processor := pipeline.NewProcessor(
		convert.NewPDFConverter(logger),
		extract.NewOrchestrator(llmClient, logger),
		excel.NewService(logger, cfg.Pipeline.ProjectionWorkers),
		cfg.Pipeline,
		logger,
	)

	runner := server.NewJobRunner(processor, jobs, results, logger)
	queue := async.NewJobQueue(runner, logger,
		async.WithWorkers(cfg.Pipeline.QueueWorkers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithJobTimeout(cfg.Pipeline.JobTimeout),
	)

	uploadDir := filepath.Join(cfg.Pipeline.WorkDir, "uploads")
	api, err := server.New(queue, jobs, uploadDir, logger)
	if err != nil {
		logger.Error("failed to initialize http server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: api}
	go func() {
		logger.Info("rfpd listening", "addr", cfg.Server.Addr, "storage_backend", cfg.Storage.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "error", err)
	}
	queue.Shutdown(shutdownCtx)
}

func newResultStore(cfg *common.Config, logger *slog.Logger) (storage.ResultStore, error) {
	switch cfg.Storage.Backend {
	case "azblob":
		return storage.NewBlobStore(cfg.Storage.ConnectionString, cfg.Storage.Container, logger)
	default:
		return storage.NewFSStore(cfg.Storage.ResultsDir, logger)
	}
}
