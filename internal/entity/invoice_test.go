package entity

import "testing"

func TestNewInvoiceRecordDefaults(t *testing.T) {
	rec := NewInvoiceRecord()
	if rec.InvoiceNumber != "N/A" || rec.InvoiceDate != "N/A" || rec.VendorName != "N/A" {
		t.Errorf("string defaults wrong: %+v", rec)
	}
	if rec.Subtotal != 0 || rec.TaxAmount != 0 || rec.TotalAmount != 0 {
		t.Errorf("amount defaults wrong: %+v", rec)
	}
	if rec.Items == nil || len(rec.Items) != 0 {
		t.Errorf("items should be empty, got %v", rec.Items)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name                    string
		subtotal, tax, total    float64
		want                    bool
	}{
		{"exact", 100.00, 13.00, 113.00, true},
		{"within tolerance", 100.00, 13.00, 113.009, true},
		{"delta at tolerance", 100.00, 13.00, 113.02, false},
		{"way off", 100.00, 13.00, 200.00, false},
		{"all zero", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &InvoiceRecord{Subtotal: tt.subtotal, TaxAmount: tt.tax, TotalAmount: tt.total}
			if got := rec.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
