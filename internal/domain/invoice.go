package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Invoice is an untyped invoice document as received from the client.
// Numbers are kept as json.Number so amounts round-trip and compare exactly.
type Invoice map[string]any

// DecodeInvoice parses a JSON document into an Invoice.
func DecodeInvoice(data []byte) (Invoice, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var inv Invoice
	if err := dec.Decode(&inv); err != nil {
		return nil, fmt.Errorf("decoding invoice: %w", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("decoding invoice: document is not an object")
	}
	return inv, nil
}

// Lookup walks nested objects by key and reports whether the path exists.
func (inv Invoice) Lookup(path ...string) (any, bool) {
	return lookup(map[string]any(inv), path...)
}

// String returns the value at path if it is a string.
func (inv Invoice) String(path ...string) string {
	v, ok := inv.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Object returns the nested object at path.
func (inv Invoice) Object(path ...string) (map[string]any, bool) {
	v, ok := inv.Lookup(path...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Decimal returns the numeric value at path.
func (inv Invoice) Decimal(path ...string) (decimal.Decimal, bool) {
	v, ok := inv.Lookup(path...)
	if !ok {
		return decimal.Zero, false
	}
	return ToDecimal(v)
}

// Lookup walks nested maps by key.
func Lookup(m map[string]any, path ...string) (any, bool) {
	return lookup(m, path...)
}

func lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// ToDecimal converts a decoded JSON scalar to a decimal. Numeric strings are accepted.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// IsEmpty reports whether a decoded JSON value counts as absent: null or "".
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// IsBlank is the looser emptiness check used for optional descriptive fields:
// null, "", "0", false, zero numbers, and empty collections.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		d, ok := ToDecimal(v)
		return ok && d.IsZero()
	}
}

// Summary projects the searchable party names, payable total, and currency
// from an invoice, using "N/A", 0, and "NGN" when they are absent.
func (inv Invoice) Summary() RecordSummary {
	s := RecordSummary{
		Supplier: inv.String("accounting_supplier_party", "party", "party_name", "name"),
		Customer: inv.String("accounting_customer_party", "party", "party_name", "name"),
		Currency: inv.String("document_currency_code"),
	}
	if s.Supplier == "" {
		s.Supplier = "N/A"
	}
	if s.Customer == "" {
		s.Customer = "N/A"
	}
	if s.Currency == "" {
		s.Currency = "NGN"
	}
	if total, ok := inv.Decimal("legal_monetary_total", "payable_amount"); ok {
		s.TotalAmount = total.InexactFloat64()
	}
	return s
}
