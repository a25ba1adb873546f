package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/entity"
	"github.com/parsewell/invoice-tracker/internal/fields"
	"github.com/parsewell/invoice-tracker/internal/ocr"
	"github.com/parsewell/invoice-tracker/internal/repository"
)

// ParseStage is Stage 2: normalize raw text, run the field matcher, and
// persist the result.
type ParseStage struct {
	Logger   *slog.Logger
	Invoices repository.InvoiceRepository
}

func NewParseStage(invoices repository.InvoiceRepository, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{Logger: logger, Invoices: invoices}
}

// Run extracts fields from text and stores an invoice row.
// An all-empty record is not persisted: the stage returns common.ErrNoFields
// and callers decide how to report "no data extracted". Field-level misses
// are not errors; a partially matched record is stored with empty strings.
func (p *ParseStage) Run(ctx context.Context, text, sourcePath string) (*entity.Invoice, error) {
	rec := fields.Extract(ocr.Normalize(text))

	p.Logger.Info("parse fields done",
		"source_path", sourcePath,
		"amount", rec.Amount, "buyer", rec.Buyer,
		"seller", rec.Seller, "date", rec.Date,
	)

	if rec.IsEmpty() {
		p.Logger.Warn("no fields extracted", "source_path", sourcePath, "text_bytes", len(text))
		return nil, common.ErrNoFields
	}

	// Guard the wire shape before it reaches the sink.
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := fields.ValidateRecordJSON(b); err != nil {
		return nil, fmt.Errorf("record schema: %w", err)
	}

	inv := &entity.Invoice{
		ID:          uuid.New(),
		Amount:      rec.Amount,
		Buyer:       rec.Buyer,
		Seller:      rec.Seller,
		InvoiceDate: rec.Date,
		SourcePath:  sourcePath,
		ProcessedAt: time.Now().UTC(),
	}
	if err := p.Invoices.Insert(ctx, inv); err != nil {
		return nil, fmt.Errorf("store invoice: %w", err)
	}

	p.Logger.Info("stored invoice",
		"invoice_id", inv.ID, "source_path", sourcePath, "processed_at", inv.ProcessedAt)
	return inv, nil
}
