// Package pipeline coordinates the two stages of invoice processing:
// remote inference (image -> text) and field parsing (text -> record -> row).
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parsewell/invoice-tracker/internal/entity"
	"github.com/parsewell/invoice-tracker/internal/extract"
)

// Processor runs text extraction then the parse stage for one invoice file.
type Processor struct {
	Logger *slog.Logger
	Text   extract.TextExtractor
	Parse  *ParseStage
}

func NewProcessor(text extract.TextExtractor, parse *ParseStage, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Parse: parse}
}

// ProcessFile reads text from the file via the inference endpoint, parses
// the invoice fields, and persists the result. The text source may return
// an empty string; the parse stage accepts that and reports ErrNoFields.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.Invoice, error) {
	res, err := p.Text.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("processor.text.failed", "source_path", path, "error", err)
		return nil, fmt.Errorf("extract text: %w", err)
	}
	p.Logger.Info("processor.text.ok",
		"source_path", path,
		"model", res.Model,
		"text_bytes", len(res.Text),
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)

	inv, err := p.Parse.Run(ctx, res.Text, path)
	if err != nil {
		p.Logger.Error("processor.parse.failed", "source_path", path, "error", err)
		return nil, err
	}
	p.Logger.Info("processor.parse.ok", "source_path", path, "invoice_id", inv.ID)
	return inv, nil
}
