package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/inference"
	"github.com/parsewell/invoice-tracker/internal/ingest"
	"github.com/parsewell/invoice-tracker/internal/pipeline"
	"github.com/parsewell/invoice-tracker/internal/repository"
)

// invoice-batch walks a directory once and processes every invoice image in
// it, storing the extracted records.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "invoice-batch <directory>")
		os.Exit(2)
	}
	root := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	invoices, closeDB, err := repository.OpenRepository(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer closeDB()
	textExtractor := inference.NewClient(inference.Config{
		BaseURL:       cfg.Inference.BaseURL,
		APIKey:        cfg.Inference.APIKey,
		Model:         cfg.Inference.Model,
		Timeout:       cfg.Inference.Timeout,
		MaxImageBytes: cfg.Inference.MaxImageBytes,
	}, logger)
	proc := pipeline.NewProcessor(textExtractor, pipeline.NewParseStage(invoices, logger), logger)

	var empty int
	results, stats, err := ingest.ScanDirectory(ctx, root, true, func(path string) error {
		_, perr := proc.ProcessFile(ctx, path)
		if errors.Is(perr, common.ErrNoFields) {
			empty++
			return nil // counted separately, not a batch failure
		}
		return perr
	})
	if err != nil {
		logger.Error("batch walk failed", "root", root, "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Err != "" {
			logger.Warn("file failed", "path", r.Path, "error", r.Err)
		}
	}
	logger.Info("batch complete",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"failed", stats.Failed,
		"no_data", empty,
	)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
