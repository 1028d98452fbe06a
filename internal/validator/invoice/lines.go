package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"firsgate/internal/domain"
)

// linePrice reads price.price_amount, falling back to price_amount.
func linePrice(line map[string]any) decimal.Decimal {
	if v, ok := domain.Lookup(line, "price", "price_amount"); ok {
		d, _ := domain.ToDecimal(v)
		return d
	}
	return amount(line, "price_amount")
}

// LineStage checks every invoice line and reconciles the line totals.
func LineStage(r Rules) *stageValidator {
	return &stageValidator{
		stageKey: "lines", stageName: "Invoice Lines",
		validate: func(inv domain.Invoice) []Finding {
			raw, ok := inv.Lookup("invoice_line")
			if !ok {
				return nil
			}
			lines, ok := raw.([]any)
			if !ok {
				return []Finding{errorf("invoice_line", "Invoice lines must be an array")}
			}
			if len(lines) == 0 {
				return []Finding{errorf("invoice_line", "At least one invoice line is required")}
			}
			if r.MaxLines > 0 && len(lines) > r.MaxLines {
				return []Finding{errorf("invoice_line", "Invoice exceeds the maximum of %d lines", r.MaxLines)}
			}

			var out []Finding
			total := decimal.Zero
			for i, entry := range lines {
				key := fmt.Sprintf("invoice_line[%d]", i)
				line, ok := entry.(map[string]any)
				if !ok {
					out = append(out, errorf(key, "Invoice line must be an object"))
					continue
				}
				findings, extension, counted := checkLine(key, line, r)
				out = append(out, findings...)
				if counted {
					total = total.Add(extension)
				}
			}

			if declared, ok := inv.Decimal("legal_monetary_total", "line_extension_amount"); ok {
				if !r.withinTolerance(total, declared) {
					out = append(out, errorf("legal_monetary_total.line_extension_amount",
						"Total line extension mismatch (expected: %s, got: %s)", fmtd(total), fmtd(declared)))
				}
			}
			return out
		},
	}
}

// checkLine validates one line. The returned extension amount only counts
// toward the invoice total when the line carries item details.
func checkLine(key string, line map[string]any, r Rules) ([]Finding, decimal.Decimal, bool) {
	var out []Finding

	quantity, ok := domain.ToDecimal(line["invoiced_quantity"])
	if !ok || !quantity.IsPositive() {
		out = append(out, errorf(key+".invoiced_quantity", "Quantity must be greater than 0"))
	}

	item, ok := line["item"].(map[string]any)
	if !ok {
		out = append(out, errorf(key+".item", "Item details are required"))
		return out, decimal.Zero, false
	}
	if domain.IsBlank(item["name"]) {
		out = append(out, errorf(key+".item.name", "Item name is required"))
	}
	if domain.IsBlank(item["description"]) {
		out = append(out, errorf(key+".item.description", "Item description is required"))
	}
	switch item["sellers_item_identification"].(type) {
	case nil:
		out = append(out, errorf(key+".item.sellers_item_identification", "Seller item ID is required"))
	case string:
	default:
		out = append(out, errorf(key+".item.sellers_item_identification",
			`Seller item ID must be a string (e.g., "18000001")`))
	}

	price := linePrice(line)
	if !price.IsPositive() {
		out = append(out, errorf(key+".price_amount", "Price must be greater than 0"))
	}

	if domain.IsBlank(line["hsn_code"]) {
		out = append(out, warning(key+".hsn_code", "HSN code is recommended for FIRS submission"))
	}
	if domain.IsBlank(line["product_category"]) {
		out = append(out, warning(key+".product_category", "Product category is recommended"))
	}

	expected := quantity.Mul(price)
	actual := amount(line, "line_extension_amount")
	if !r.withinTolerance(actual, expected) {
		out = append(out, errorf(key+".line_extension_amount",
			"Line total mismatch (expected: %s, got: %s)", fmtd(expected), fmtd(actual)))
	}
	return out, actual, true
}
