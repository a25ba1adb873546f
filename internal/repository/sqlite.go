package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id           TEXT PRIMARY KEY,
	amount       TEXT NOT NULL DEFAULT '',
	buyer        TEXT NOT NULL DEFAULT '',
	seller       TEXT NOT NULL DEFAULT '',
	invoice_date TEXT NOT NULL DEFAULT '',
	source_path  TEXT NOT NULL DEFAULT '',
	processed_at TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS invoices_processed_at ON invoices (processed_at);`

// Fixed-width UTC layout so string comparison on processed_at matches
// chronological order; RFC3339Nano drops trailing zeros and breaks that.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteInvoiceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and bootstraps) a local SQLite invoices database and
// returns an InvoiceRepository over it. Meant for single-machine use; the
// daemon uses Postgres.
func OpenSQLite(ctx context.Context, dsn string, logger *slog.Logger) (InvoiceRepository, *sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; also keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}
	logger.Info("opened sqlite database", "dsn", dsn)
	return &sqliteInvoiceRepository{db: db, logger: logger}, db, nil
}

func (r *sqliteInvoiceRepository) Insert(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.ProcessedAt.IsZero() {
		inv.ProcessedAt = time.Now().UTC()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO invoices (id, amount, buyer, seller, invoice_date, source_path, processed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		inv.ID.String(), inv.Amount, inv.Buyer, inv.Seller, inv.InvoiceDate, inv.SourcePath,
		inv.ProcessedAt.UTC().Format(sqliteTimeLayout), inv.CreatedAt.UTC().Format(sqliteTimeLayout))
	if err != nil {
		r.logger.Error("failed to insert invoice", "invoice_id", inv.ID, "error", err)
		return common.WrapError(err, "insert invoice")
	}
	return nil
}

func (r *sqliteInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	const q = `
		SELECT id, amount, buyer, seller, invoice_date, source_path, processed_at, created_at
		FROM invoices WHERE id = ?`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, common.WrapError(err, "get invoice")
	}
	return inv, nil
}

func (r *sqliteInvoiceRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.Invoice, error) {
	q := `
		SELECT id, amount, buyer, seller, invoice_date, source_path, processed_at, created_at
		FROM invoices WHERE 1=1`
	args := make([]any, 0, 2)
	if from != nil {
		q += ` AND processed_at >= ?`
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if to != nil {
		q += ` AND processed_at <= ?`
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	q += ` ORDER BY processed_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, common.WrapError(err, "list invoices")
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan invoice")
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv                    entity.Invoice
		id, processed, created string
	)
	if err := row.Scan(&id, &inv.Amount, &inv.Buyer, &inv.Seller, &inv.InvoiceDate,
		&inv.SourcePath, &processed, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse invoice id %q: %w", id, err)
	}
	inv.ID = parsed
	if inv.ProcessedAt, err = time.Parse(sqliteTimeLayout, processed); err != nil {
		return nil, fmt.Errorf("parse processed_at %q: %w", processed, err)
	}
	if inv.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return &inv, nil
}
