package port

import (
	"context"

	"firsgate/internal/domain"
)

// UpstreamClient defines the contract for the tax authority API.
type UpstreamClient interface {
	Enabled() bool
	Submit(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error)
	ValidateIRN(ctx context.Context, irn, businessID string, inv domain.Invoice) (*domain.UpstreamResult, error)
	Status(ctx context.Context, irn string) (*domain.UpstreamResult, error)
	TestConnectivity(ctx context.Context) bool
}
