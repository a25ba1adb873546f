package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/parsewell/invoice-tracker/internal/export"
	"github.com/parsewell/invoice-tracker/internal/repository"
)

// invoice-export writes an XLSX workbook of stored invoices.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		out      = flag.String("out", "invoices.xlsx", "output file path")
		fromFlag = flag.String("from", "", "start date (YYYY-MM-DD), optional")
		toFlag   = flag.String("to", "", "end date (YYYY-MM-DD), optional")
	)
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		logger.Error("DB_URL required")
		os.Exit(1)
	}

	var from, to *time.Time
	if *fromFlag != "" {
		t, err := time.ParseInLocation("2006-01-02", *fromFlag, time.UTC)
		if err != nil {
			logger.Error("invalid -from date", "value", *fromFlag, "error", err)
			os.Exit(2)
		}
		from = &t
	}
	if *toFlag != "" {
		t, err := time.ParseInLocation("2006-01-02", *toFlag, time.UTC)
		if err != nil {
			logger.Error("invalid -to date", "value", *toFlag, "error", err)
			os.Exit(2)
		}
		to = &t
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	invoices, closeDB, err := repository.OpenRepository(ctx, repository.Config{
		DSN:             dbURL,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 10 * time.Minute,
		MaxConnIdleTime: time.Minute,
		DialTimeout:     3 * time.Second,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	svc := export.NewService(invoices, logger)

	b, err := svc.ExportInvoicesXLSX(ctx, from, to)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		logger.Error("write output", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "bytes", len(b))
}
