package port

import (
	"context"

	"firsgate/internal/domain"
)

// LogRepository defines the contract for the success and error log tables.
type LogRepository interface {
	InsertSuccess(ctx context.Context, entry *domain.LogEntry) error
	InsertError(ctx context.Context, entry *domain.LogEntry) error
	Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error)
	CountOn(ctx context.Context, kind domain.LogKind, date string) (int, error)
	Ping(ctx context.Context) error
}
