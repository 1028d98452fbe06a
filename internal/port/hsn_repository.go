package port

import (
	"context"

	"firsgate/internal/domain"
)

// HSNRepository defines the contract for HSN code data access.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]domain.HSNCode, error)
}
