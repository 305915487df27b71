package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInvoiceJSONSchema returns the schema (draft 2020-12 subset) the JSON
// output is checked against, as a generic map. Reserved fields are allowed
// to be empty strings; the check is informational and never rejects or
// repairs a record.
func BuildInvoiceJSONSchema() map[string]any {
	itemProps := map[string]any{
		"description": map[string]any{"type": "string", "minLength": 1},
		"quantity":    map[string]any{"type": "integer", "minimum": 0},
		"unitPrice":   map[string]any{"type": "number"},
		"lineTotal":   map[string]any{"type": "number"},
	}
	props := map[string]any{
		"invoiceNumber":   map[string]any{"type": "string", "minLength": 1},
		"invoiceDate":     map[string]any{"type": "string", "minLength": 1},
		"vendorName":      map[string]any{"type": "string"},
		"vendorAddress":   map[string]any{"type": "string"},
		"customerName":    map[string]any{"type": "string"},
		"customerAddress": map[string]any{"type": "string"},
		"subtotal":        map[string]any{"type": "number"},
		"taxAmount":       map[string]any{"type": "number"},
		"totalAmount":     map[string]any{"type": "number"},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           itemProps,
				"required":             []string{"description", "quantity", "unitPrice", "lineTotal"},
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"invoiceNumber", "invoiceDate", "vendorName",
			"subtotal", "taxAmount", "totalAmount", "items",
		},
	}
}

// ValidateJSON validates data against the invoice output schema.
func ValidateJSON(data []byte) error {
	b, err := json.Marshal(BuildInvoiceJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
