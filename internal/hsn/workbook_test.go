package hsn_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"firsgate/internal/hsn"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Nigeria HSN catalogue"},
		{},
		{"HSN Code", "Description", "Category", "VAT Rate"},
		{"8471", "Computers", "Electronics", "7.5%"},
		{"1006", "Rice", "Food", "Exempt"},
		{"8471", "Duplicate row", "Electronics", "7.5%"},
		{"Notes", "not a code", "", ""},
		{"8517.12", "Mobile phones", "Electronics", "7.5"},
	})

	codes, err := hsn.ParseWorkbook(buf, "")
	require.NoError(t, err)
	require.Len(t, codes, 3)

	assert.Equal(t, "8471", codes[0].Code)
	assert.Equal(t, "Computers", codes[0].Description)
	assert.Equal(t, "Electronics", codes[0].Category)
	assert.Equal(t, 7.5, codes[0].TaxRate)
	assert.Equal(t, 0.0, codes[1].TaxRate)
	assert.Equal(t, "8517.12", codes[2].Code)
}

func TestParseWorkbook_NoHeader(t *testing.T) {
	buf := workbook(t, [][]any{{"a", "b"}, {"1", "2"}})

	_, err := hsn.ParseWorkbook(buf, "")
	assert.Error(t, err)
}

func TestParseWorkbook_MissingSheet(t *testing.T) {
	buf := workbook(t, [][]any{{"Code"}})

	_, err := hsn.ParseWorkbook(buf, "Nope")
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	tests := map[string]float64{
		"7.5%":             7.5,
		" 5 % ":            5,
		"Exempt":           0,
		"":                 0,
		"zero-rated":       0,
		"5% (without ITC)": 5,
	}
	for in, want := range tests {
		assert.Equal(t, want, hsn.ParseRate(in), in)
	}
}
