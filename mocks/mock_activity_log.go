package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockActivityLog is a mock implementation of port.ActivityLog.
type MockActivityLog struct {
	mock.Mock
}

func (m *MockActivityLog) LogSuccess(ctx context.Context, ev domain.SuccessEvent) {
	m.Called(ctx, ev)
}

func (m *MockActivityLog) LogError(ctx context.Context, ev domain.ErrorEvent) {
	m.Called(ctx, ev)
}

func (m *MockActivityLog) LogException(ctx context.Context, ev domain.ExceptionEvent) {
	m.Called(ctx, ev)
}

func (m *MockActivityLog) Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogEntry), args.Error(1)
}

func (m *MockActivityLog) Statistics(ctx context.Context, date string) (*domain.LogStatistics, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogStatistics), args.Error(1)
}
