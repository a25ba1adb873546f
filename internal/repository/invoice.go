package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/entity"
)

// InvoiceRepository is the persistence sink for extracted invoices.
type InvoiceRepository interface {
	Insert(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Invoice, error)
}

type pgInvoiceRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewInvoiceRepository returns a Postgres-backed InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &pgInvoiceRepository{pool: pool, logger: logger}
}

func (r *pgInvoiceRepository) Insert(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.ProcessedAt.IsZero() {
		inv.ProcessedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO invoices (id, amount, buyer, seller, invoice_date, source_path, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, q,
		inv.ID, inv.Amount, inv.Buyer, inv.Seller, inv.InvoiceDate, inv.SourcePath, inv.ProcessedAt)
	if err != nil {
		r.logger.Error("failed to insert invoice", "invoice_id", inv.ID, "source_path", inv.SourcePath, "error", err)
		return common.WrapError(err, "insert invoice")
	}
	return nil
}

func (r *pgInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	const q = `
		SELECT id, amount, buyer, seller, invoice_date, source_path, processed_at, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&inv.ID, &inv.Amount, &inv.Buyer, &inv.Seller, &inv.InvoiceDate,
		&inv.SourcePath, &inv.ProcessedAt, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, common.WrapError(err, "get invoice")
	}
	return &inv, nil
}

func (r *pgInvoiceRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.Invoice, error) {
	q := `
		SELECT id, amount, buyer, seller, invoice_date, source_path, processed_at, created_at
		FROM invoices WHERE 1=1`
	args := make([]any, 0, 2)
	if from != nil {
		args = append(args, *from)
		q += ` AND processed_at >= $1`
	}
	if to != nil {
		args = append(args, *to)
		if len(args) == 2 {
			q += ` AND processed_at <= $2`
		} else {
			q += ` AND processed_at <= $1`
		}
	}
	q += ` ORDER BY processed_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, common.WrapError(err, "list invoices")
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.Amount, &inv.Buyer, &inv.Seller, &inv.InvoiceDate,
			&inv.SourcePath, &inv.ProcessedAt, &inv.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan invoice")
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
