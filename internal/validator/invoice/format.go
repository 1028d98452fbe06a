package invoice

import (
	"regexp"
	"strings"
	"time"

	"firsgate/internal/domain"
	"firsgate/internal/irn"
)

const dateLayout = "2006-01-02"

var uuidV4Pattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsUUIDv4 reports whether v is a string in canonical UUID version 4 form.
func IsUUIDv4(v any) bool {
	s, ok := v.(string)
	return ok && uuidV4Pattern.MatchString(s)
}

// IsValidIRN reports whether v is a string in IRN format.
func IsValidIRN(v any) bool {
	s, ok := v.(string)
	return ok && irn.Valid(s)
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Format(dateLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// FormatStage checks identifier, date, enum, and currency formats of present fields.
func FormatStage(r Rules) *stageValidator {
	return &stageValidator{
		stageKey: "format", stageName: "Field Formats",
		validate: func(inv domain.Invoice) []Finding {
			var out []Finding
			if v, ok := inv.Lookup("irn"); ok && !IsValidIRN(v) {
				out = append(out, errorf("irn", "Invalid IRN format (expected PFNLXXXX-XXXXXX-YYYYMMDD)"))
			}
			if v, ok := inv.Lookup("business_id"); ok && !IsUUIDv4(v) {
				out = append(out, errorf("business_id", "Invalid UUID format"))
			}
			for _, field := range []string{"issue_date", "due_date"} {
				if v, ok := inv.Lookup(field); ok {
					if _, valid := ParseDate(v); !valid {
						out = append(out, errorf(field, "Invalid date format (expected YYYY-MM-DD)"))
					}
				}
			}
			if v, ok := inv.Lookup("invoice_type_code"); ok {
				code, _ := scalarString(v)
				if _, known := r.InvoiceTypes[code]; !known {
					out = append(out, errorf("invoice_type_code",
						"Invalid invoice type code (expected: %s)", strings.Join(r.invoiceTypeCodes(), ", ")))
				}
			}
			if v, ok := inv.Lookup("document_currency_code"); ok {
				if s, isStr := v.(string); !isStr || len(s) != 3 {
					out = append(out, errorf("document_currency_code", "Invalid currency code (expected 3-letter ISO code)"))
				}
			}
			return out
		},
	}
}
