// Package store archives parsed invoice records in a relational database.
// The driver is picked from the DSN: postgres:// URLs go through pgx,
// anything else is treated as a sqlite path (":memory:" included).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/docufin/invoice-parser/internal/common"
	"github.com/docufin/invoice-parser/internal/entity"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	invoice_number TEXT NOT NULL,
	invoice_date   TEXT NOT NULL,
	vendor_name    TEXT NOT NULL,
	subtotal       REAL NOT NULL,
	tax_amount     REAL NOT NULL,
	total_amount   REAL NOT NULL,
	is_valid       INTEGER NOT NULL,
	archived_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS invoice_items (
	invoice_id  TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	description TEXT NOT NULL,
	quantity    INTEGER NOT NULL,
	unit_price  REAL NOT NULL,
	line_total  REAL NOT NULL,
	PRIMARY KEY (invoice_id, position)
);`

// Store persists invoice records and their line items.
type Store struct {
	db     *sql.DB
	pg     bool
	logger *slog.Logger
}

// Open connects per cfg, applies the schema, and returns the store.
func Open(ctx context.Context, cfg common.ArchiveConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: archive DSN is empty", common.ErrInvalidInput)
	}

	driver, pg := "sqlite", false
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver, pg = "pgx", true
	}
	logger.Info("opening archive store", "driver", driver)

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping archive db: %v", common.ErrDatabase, err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}

	logger.Info("archive store ready")
	return &Store{db: db, pg: pg, logger: logger}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	s.logger.Info("closing archive store")
	return s.db.Close()
}

// HealthCheck pings the database to catch DSN issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.db.PingContext(ctx)
}

// rebind converts ? placeholders to the $n form pgx expects. Queries are
// written once in sqlite style.
func (s *Store) rebind(query string) string {
	if !s.pg {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveInvoice archives rec under a fresh id, line items in extraction order.
func (s *Store) SaveInvoice(ctx context.Context, sourcePath string, rec *entity.InvoiceRecord) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	valid := 0
	if rec.IsValid() {
		valid = 1
	}
	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO invoices (id, source_path, invoice_number, invoice_date, vendor_name,
			subtotal, tax_amount, total_amount, is_valid, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id.String(), sourcePath, rec.InvoiceNumber, rec.InvoiceDate, rec.VendorName,
		rec.Subtotal, rec.TaxAmount, rec.TotalAmount, valid,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert invoice: %w", err)
	}

	for i, item := range rec.Items {
		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO invoice_items (invoice_id, position, description, quantity, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`),
			id.String(), i, item.Description, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert line item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit archive tx: %w", err)
	}
	s.logger.Info("invoice archived", "id", id, "source", sourcePath, "items", len(rec.Items))
	return id, nil
}

// GetInvoice loads an archived record and its source path by id.
func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, string, error) {
	rec := entity.NewInvoiceRecord()
	var sourcePath string
	var valid int
	var archivedAt string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT source_path, invoice_number, invoice_date, vendor_name,
			subtotal, tax_amount, total_amount, is_valid, archived_at
		FROM invoices WHERE id = ?`), id.String(),
	).Scan(&sourcePath, &rec.InvoiceNumber, &rec.InvoiceDate, &rec.VendorName,
		&rec.Subtotal, &rec.TaxAmount, &rec.TotalAmount, &valid, &archivedAt)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("%w: invoice %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("query invoice: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT description, quantity, unit_price, line_total
		FROM invoice_items WHERE invoice_id = ? ORDER BY position`), id.String())
	if err != nil {
		return nil, "", fmt.Errorf("query line items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var item entity.LineItem
		if err := rows.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, "", fmt.Errorf("scan line item: %w", err)
		}
		rec.Items = append(rec.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate line items: %w", err)
	}
	return rec, sourcePath, nil
}

// CountInvoices returns the number of archived invoices.
func (s *Store) CountInvoices(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}
