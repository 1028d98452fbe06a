package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
)

func TestDecodeInvoice_KeepsNumbersExact(t *testing.T) {
	inv, err := domain.DecodeInvoice([]byte(`{"tax_total":{"tax_amount":75.10},"irn":"X"}`))
	require.NoError(t, err)

	v, ok := inv.Lookup("tax_total", "tax_amount")
	require.True(t, ok)
	assert.IsType(t, json.Number(""), v)

	d, ok := inv.Decimal("tax_total", "tax_amount")
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("75.1")))
}

func TestDecodeInvoice_RejectsNonObject(t *testing.T) {
	_, err := domain.DecodeInvoice([]byte(`null`))
	assert.Error(t, err)

	_, err = domain.DecodeInvoice([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestInvoice_Lookup(t *testing.T) {
	inv := domain.Invoice{
		"accounting_supplier_party": map[string]any{
			"party": map[string]any{"party_name": map[string]any{"name": "Acme Ltd"}},
		},
		"note": nil,
	}

	assert.Equal(t, "Acme Ltd", inv.String("accounting_supplier_party", "party", "party_name", "name"))
	assert.Equal(t, "", inv.String("accounting_customer_party", "party", "party_name", "name"))

	_, ok := inv.Lookup("note")
	assert.False(t, ok, "null values count as absent")

	_, ok = inv.Lookup("accounting_supplier_party", "party", "party_name", "name", "deeper")
	assert.False(t, ok)
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{json.Number("1000"), "1000", true},
		{float64(7.5), "7.5", true},
		{"12.50", "12.5", true},
		{"abc", "0", false},
		{true, "0", false},
		{nil, "0", false},
	}
	for _, tt := range tests {
		got, ok := domain.ToDecimal(tt.in)
		assert.Equal(t, tt.ok, ok)
		if tt.ok {
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		}
	}
}

func TestIsEmptyAndIsBlank(t *testing.T) {
	assert.True(t, domain.IsEmpty(nil))
	assert.True(t, domain.IsEmpty(""))
	assert.False(t, domain.IsEmpty("0"))
	assert.False(t, domain.IsEmpty([]any{}))

	assert.True(t, domain.IsBlank("0"))
	assert.True(t, domain.IsBlank([]any{}))
	assert.True(t, domain.IsBlank(json.Number("0")))
	assert.False(t, domain.IsBlank("8471"))
}

func TestInvoice_Summary(t *testing.T) {
	inv := domain.Invoice{
		"document_currency_code": "USD",
		"accounting_supplier_party": map[string]any{
			"party": map[string]any{"party_name": map[string]any{"name": "Acme Ltd"}},
		},
		"legal_monetary_total": map[string]any{"payable_amount": json.Number("1075.50")},
	}

	s := inv.Summary()
	assert.Equal(t, "Acme Ltd", s.Supplier)
	assert.Equal(t, "N/A", s.Customer)
	assert.Equal(t, "USD", s.Currency)
	assert.InDelta(t, 1075.50, s.TotalAmount, 1e-9)

	empty := domain.Invoice{}.Summary()
	assert.Equal(t, "N/A", empty.Supplier)
	assert.Equal(t, "NGN", empty.Currency)
	assert.Zero(t, empty.TotalAmount)
}
