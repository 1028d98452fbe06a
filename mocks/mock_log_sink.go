package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockLogSink is a mock implementation of port.LogSink.
type MockLogSink struct {
	mock.Mock
}

func (m *MockLogSink) Record(ctx context.Context, entry *domain.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
