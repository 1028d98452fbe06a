package hsn

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"firsgate/internal/domain"
)

// header aliases accepted for each catalogue column, lower-cased.
var columnAliases = map[string][]string{
	"code":        {"code", "hsn", "hsn code", "hsn_code"},
	"description": {"description", "desc", "item description"},
	"category":    {"category", "section", "chapter"},
	"tax_rate":    {"tax rate", "tax_rate", "rate", "vat rate", "vat"},
}

var (
	ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%?`)
	codePattern = regexp.MustCompile(`^[0-9][0-9.]*$`)
)

// ParseWorkbook reads HSN codes from sheet of an xlsx workbook. The first row
// containing a code column is the header. An empty sheet name selects the
// first sheet. Rows without a numeric code are skipped, and the first
// occurrence of a code wins.
func ParseWorkbook(r io.Reader, sheet string) ([]domain.HSNCode, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("hsn.ParseWorkbook: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("hsn.ParseWorkbook: sheet %q: %w", sheet, err)
	}

	start, cols := -1, map[string]int{}
	for i, row := range rows {
		if c := headerColumns(row); c["code"] >= 0 {
			start, cols = i+1, c
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("hsn.ParseWorkbook: sheet %q has no code column: %w", sheet, domain.ErrInvalidFormat)
	}

	seen := make(map[string]struct{})
	codes := []domain.HSNCode{}
	for _, row := range rows[start:] {
		code := strings.TrimSpace(cell(row, cols["code"]))
		if !codePattern.MatchString(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, domain.HSNCode{
			Code:        code,
			Description: strings.TrimSpace(cell(row, cols["description"])),
			Category:    strings.TrimSpace(cell(row, cols["category"])),
			TaxRate:     ParseRate(cell(row, cols["tax_rate"])),
		})
	}
	return codes, nil
}

func headerColumns(row []string) map[string]int {
	cols := map[string]int{"code": -1, "description": -1, "category": -1, "tax_rate": -1}
	for i, v := range row {
		v = strings.ToLower(strings.TrimSpace(v))
		for col, aliases := range columnAliases {
			if cols[col] >= 0 {
				continue
			}
			for _, a := range aliases {
				if v == a {
					cols[col] = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

// ParseRate extracts a percentage from free text such as "7.5%", "7.5" or
// "Exempt". Unrecognised text yields 0.
func ParseRate(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "exempt" || s == "nil" {
		return 0
	}
	m := ratePattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return rate
}
