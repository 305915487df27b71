// Package amount normalizes free-form monetary strings into float64 values.
package amount

import (
	"strconv"
	"strings"
)

// stripper removes currency glyphs, thousands separators and whitespace
// before parsing. Stripping is order-independent, so a stray trailing symbol
// after the number is fine.
var stripper = strings.NewReplacer(
	",", "", "$", "", "€", "", "£", "", "¥", "",
	" ", "", "\t", "", "\n", "", "\r", "", " ", "",
)

// Normalize parses s as a decimal amount. Only the comma-as-thousands,
// period-as-decimal locale is supported; "1.234,56" style input will not
// come out right. Empty or unparseable input yields 0 — a malformed amount
// must never abort extraction of the rest of the document.
func Normalize(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := stripper.Replace(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
