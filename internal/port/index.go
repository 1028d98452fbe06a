package port

import (
	"context"

	"firsgate/internal/domain"
)

// InvoiceIndex defines the contract for the signed invoice record store.
type InvoiceIndex interface {
	IsDuplicate(ctx context.Context, irn string) (bool, error)
	RecordSigned(ctx context.Context, rec *domain.IndexRecord) error
	Get(ctx context.Context, irn string) (*domain.IndexRecord, error)
	Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error)
	Snapshot(ctx context.Context) ([]domain.IndexRecord, error)
	Close() error
}
