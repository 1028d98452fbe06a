package validator

import (
	"context"

	"firsgate/internal/domain"
	"firsgate/internal/validator/invoice"
)

// Validator is one validation stage run by the Engine.
type Validator interface {
	Validate(ctx context.Context, inv domain.Invoice) []invoice.Finding
	Key() string
	Name() string
}
