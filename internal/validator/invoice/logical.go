package invoice

import "firsgate/internal/domain"

const minPaymentTermDays = 7

// BusinessLogicStage checks the relationship between issue and due dates.
func BusinessLogicStage() *stageValidator {
	return &stageValidator{
		stageKey: "business_logic", stageName: "Business Logic",
		validate: func(inv domain.Invoice) []Finding {
			issue, okIssue := ParseDate(inv["issue_date"])
			due, okDue := ParseDate(inv["due_date"])
			if !okIssue || !okDue {
				return nil
			}
			var out []Finding
			if due.Before(issue) {
				out = append(out, errorf("due_date", "Due date cannot be before issue date"))
			}
			if due.Sub(issue).Hours()/24 < minPaymentTermDays {
				out = append(out, warning("due_date", "Due date is less than 7 days from issue date"))
			}
			return out
		},
	}
}
