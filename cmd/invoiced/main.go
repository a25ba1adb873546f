package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/parsewell/invoice-tracker/internal/async"
	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/inference"
	"github.com/parsewell/invoice-tracker/internal/ingest"
	"github.com/parsewell/invoice-tracker/internal/pipeline"
	"github.com/parsewell/invoice-tracker/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if len(cfg.Ingest.WatchRoots) == 0 {
		logger.Error("WATCH_ROOTS is required for the daemon")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, 3*time.Second, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}

	invoices := repository.NewInvoiceRepository(pool, logger)

	textExtractor := inference.NewClient(inference.Config{
		BaseURL:       cfg.Inference.BaseURL,
		APIKey:        cfg.Inference.APIKey,
		Model:         cfg.Inference.Model,
		Timeout:       cfg.Inference.Timeout,
		MaxImageBytes: cfg.Inference.MaxImageBytes,
	}, logger)

	proc := pipeline.NewProcessor(textExtractor, pipeline.NewParseStage(invoices, logger), logger)
	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
	)

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.WatchRoots,
		InitialScan: cfg.Ingest.InitialScan,
		Debounce:    cfg.Ingest.Debounce,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("start watcher", "error", err)
		os.Exit(1)
	}

	go func() {
		for path := range events {
			_ = queue.Enqueue(ctx, async.Job{
				Path:        path,
				SubmittedAt: time.Now().UTC(),
				TraceID:     uuid.NewString(),
			})
		}
	}()
	go func() {
		for werr := range watchErrs {
			logger.Error("watch error", "error", werr)
		}
	}()

	// gRPC health endpoint so orchestrators can probe the daemon.
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("gRPC health serving", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
		}
	}()

	logger.Info("invoiced started",
		"watch_roots", cfg.Ingest.WatchRoots,
		"workers", cfg.Queue.Workers,
		"model", cfg.Inference.Model,
	)

	<-ctx.Done()
	logger.Info("shutting down...")

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(drainCtx)

	logger.Info("stopped")
}
