package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docufin/invoice-parser/internal/common"
	"github.com/docufin/invoice-parser/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), common.ArchiveConfig{
		DSN:         filepath.Join(t.TempDir(), "archive.db"),
		DialTimeout: 3 * time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), common.ArchiveConfig{}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSaveAndGetInvoice(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := entity.NewInvoiceRecord()
	rec.InvoiceNumber = "INV-001"
	rec.InvoiceDate = "2024-01-15"
	rec.VendorName = "Acme Co"
	rec.Subtotal = 100.00
	rec.TaxAmount = 13.00
	rec.TotalAmount = 113.00
	rec.Items = []entity.LineItem{
		{Description: "Widget", Quantity: 2, UnitPrice: 25.00, LineTotal: 50.00},
		{Description: "Gadget", Quantity: 1, UnitPrice: 50.00, LineTotal: 50.00},
	}

	id, err := st.SaveInvoice(ctx, "/in/invoice.csv", rec)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	got, sourcePath, err := st.GetInvoice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/in/invoice.csv", sourcePath)
	assert.Equal(t, rec.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, rec.VendorName, got.VendorName)
	assert.Equal(t, rec.TotalAmount, got.TotalAmount)
	assert.Equal(t, rec.Items, got.Items)
}

func TestSaveInvoiceNoItems(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.SaveInvoice(ctx, "/in/bare.pdf", entity.NewInvoiceRecord())
	require.NoError(t, err)

	got, _, err := st.GetInvoice(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, "N/A", got.InvoiceNumber)
}

func TestGetInvoiceNotFound(t *testing.T) {
	st := openTestStore(t)
	_, _, err := st.GetInvoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCountInvoices(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	n, err := st.CountInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for i := 0; i < 3; i++ {
		_, err := st.SaveInvoice(ctx, "/in/x.csv", entity.NewInvoiceRecord())
		require.NoError(t, err)
	}
	n, err = st.CountInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHealthCheck(t *testing.T) {
	st := openTestStore(t)
	assert.NoError(t, st.HealthCheck(context.Background(), time.Second))
}

func TestRebind(t *testing.T) {
	s := &Store{pg: false}
	assert.Equal(t, "SELECT ?, ?", s.rebind("SELECT ?, ?"))
	s.pg = true
	assert.Equal(t, "SELECT $1, $2", s.rebind("SELECT ?, ?"))
}
