package invoice

import "firsgate/internal/domain"

// RequiredFields are the top-level keys every invoice must carry.
var RequiredFields = []string{
	"irn", "business_id", "issue_date", "due_date", "invoice_type_code",
	"document_currency_code", "accounting_supplier_party", "accounting_customer_party",
	"tax_total", "legal_monetary_total", "invoice_line",
}

// RequiredStage flags missing, null, or empty-string required fields.
func RequiredStage() *stageValidator {
	return &stageValidator{
		stageKey: "required", stageName: "Required Fields",
		validate: func(inv domain.Invoice) []Finding {
			var out []Finding
			for _, field := range RequiredFields {
				if domain.IsEmpty(inv[field]) {
					out = append(out, errorf(field, "Required field is missing or empty"))
				}
			}
			return out
		},
	}
}
