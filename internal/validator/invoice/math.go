package invoice

import (
	"github.com/shopspring/decimal"

	"firsgate/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// amount reads a numeric field, treating absent or non-numeric values as zero.
func amount(m map[string]any, key string) decimal.Decimal {
	d, _ := domain.ToDecimal(m[key])
	return d
}

// TaxStage reconciles the declared tax triple against the tax percent.
func TaxStage(r Rules) *stageValidator {
	return &stageValidator{
		stageKey: "math.tax_total", stageName: "Tax Arithmetic",
		validate: func(inv domain.Invoice) []Finding {
			taxTotal, ok := inv.Object("tax_total")
			if !ok {
				return nil
			}
			exclusive := amount(taxTotal, "tax_exclusive_amount")
			taxAmount := amount(taxTotal, "tax_amount")
			inclusive := amount(taxTotal, "tax_inclusive_amount")
			percent, ok := domain.ToDecimal(taxTotal["tax_percent"])
			if !ok {
				percent = r.StandardVATRate
			}

			expectedTax := exclusive.Mul(percent).Div(hundred)
			expectedInclusive := exclusive.Add(taxAmount)

			var out []Finding
			if !r.withinTolerance(taxAmount, expectedTax) {
				out = append(out, errorf("tax_total.tax_amount",
					"Tax amount mismatch (expected: %s, got: %s)", fmtd(expectedTax), fmtd(taxAmount)))
			}
			if !r.withinTolerance(inclusive, expectedInclusive) {
				out = append(out, errorf("tax_total.tax_inclusive_amount",
					"Tax inclusive amount mismatch (expected: %s, got: %s)", fmtd(expectedInclusive), fmtd(inclusive)))
			}
			return out
		},
	}
}
