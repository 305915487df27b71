package entity

import "math"

// validTolerance is the allowed rounding slack when checking that the stated
// totals add up.
const validTolerance = 0.01

// LineItem is one row of an invoice's itemized charges. Quantity times
// UnitPrice is not required to equal LineTotal: source documents are not
// trusted to be internally consistent, and extraction reproduces what was on
// the page rather than correcting it.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// InvoiceRecord is the canonical structured output of extraction.
//
// String fields default to "N/A" and amounts to 0 when a pattern misses, so
// downstream consumers always receive a complete record. Items preserves
// extraction order and is never deduplicated. The address and customer
// fields are reserved; current extraction leaves them empty.
type InvoiceRecord struct {
	InvoiceNumber   string     `json:"invoiceNumber"`
	InvoiceDate     string     `json:"invoiceDate"`
	VendorName      string     `json:"vendorName"`
	VendorAddress   string     `json:"vendorAddress"`
	CustomerName    string     `json:"customerName"`
	CustomerAddress string     `json:"customerAddress"`
	Subtotal        float64    `json:"subtotal"`
	TaxAmount       float64    `json:"taxAmount"`
	TotalAmount     float64    `json:"totalAmount"`
	Items           []LineItem `json:"items"`
}

// NewInvoiceRecord returns a record carrying the documented defaults.
func NewInvoiceRecord() *InvoiceRecord {
	return &InvoiceRecord{
		InvoiceNumber: "N/A",
		InvoiceDate:   "N/A",
		VendorName:    "N/A",
		Items:         []LineItem{},
	}
}

// IsValid reports whether subtotal plus tax matches the stated total within
// a one-cent tolerance. Informational only: records are never rejected or
// repaired on the strength of this check.
func (r *InvoiceRecord) IsValid() bool {
	return math.Abs(r.Subtotal+r.TaxAmount-r.TotalAmount) < validTolerance
}
