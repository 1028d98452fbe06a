package port

import (
	"context"

	"firsgate/internal/domain"
)

// LogSink persists observability log entries.
type LogSink interface {
	Record(ctx context.Context, entry *domain.LogEntry) error
}

// LogReader queries persisted log entries.
type LogReader interface {
	Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error)
	Statistics(ctx context.Context, date string) (*domain.LogStatistics, error)
}

// ActivityLog records signing outcomes to every configured sink.
type ActivityLog interface {
	LogReader
	LogSuccess(ctx context.Context, ev domain.SuccessEvent)
	LogError(ctx context.Context, ev domain.ErrorEvent)
	LogException(ctx context.Context, ev domain.ExceptionEvent)
}
