package irn_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
	"firsgate/internal/irn"
)

func TestExtract_RoundTrip(t *testing.T) {
	valid := []string{
		"PFNL0001-9D3009-20251024",
		"PFNLABCD-ZZZZZZ-00000000",
		"PFNL9Z9Z-000001-19991231",
	}
	for _, v := range valid {
		t.Run(v, func(t *testing.T) {
			got, err := irn.Extract(domain.Invoice{"irn": v})
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestExtract_TrimsWhitespace(t *testing.T) {
	got, err := irn.Extract(domain.Invoice{"irn": "  PFNL0001-9D3009-20251024\n"})
	require.NoError(t, err)
	assert.Equal(t, "PFNL0001-9D3009-20251024", got)
}

func TestExtract_Missing(t *testing.T) {
	for name, inv := range map[string]domain.Invoice{
		"absent": {},
		"null":   {"irn": nil},
		"empty":  {"irn": "   "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := irn.Extract(inv)
			assert.ErrorIs(t, err, domain.ErrMissingField)
		})
	}
}

func TestExtract_InvalidFormat(t *testing.T) {
	for _, v := range []any{
		"INV-001",
		"pfnl0001-9d3009-20251024",
		"PFNL0001-9D3009-2025102",
		"PFNL001-9D3009-20251024",
		"PFNL0001-9D3009-20251024X",
		12345,
	} {
		_, err := irn.Extract(domain.Invoice{"irn": v})
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "value %v", v)
	}
}

func TestFormatSigned(t *testing.T) {
	ts := time.Unix(1729771200, 0)
	assert.Equal(t, "PFNL0001-9D3009-20251024.1729771200", irn.FormatSigned("PFNL0001-9D3009-20251024", ts))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PFNL0001-9D3009-20251024.1729771200", "PFNL0001-9D3009-20251024.1729771200"},
		{"../../etc/passwd", "etcpasswd"},
		{`..\..\windows`, "windows"},
		{"a b/c?d", "abcd"},
		{"...", "."},
		{"....", ""},
		{"a.../b", "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, irn.Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"PFNL0001-9D3009-20251024.1",
		"../x/../y",
		"a.....b",
		".-./.-.",
		"ü..ñ../",
		"",
	}
	for _, in := range inputs {
		once := irn.Sanitize(in)
		assert.Equal(t, once, irn.Sanitize(once), "input %q", in)
		assert.NotContains(t, once, "..")
		assert.NotContains(t, once, "/")
	}
}

func TestDateFolder(t *testing.T) {
	now := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-10", irn.DateFolder("2025-10-24", now))
	assert.Equal(t, "2025-03", irn.DateFolder("not-a-date", now))
}
