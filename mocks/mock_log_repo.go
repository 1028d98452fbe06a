package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockLogRepository is a mock implementation of port.LogRepository.
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) InsertSuccess(ctx context.Context, entry *domain.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) InsertError(ctx context.Context, entry *domain.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogEntry), args.Error(1)
}

func (m *MockLogRepository) CountOn(ctx context.Context, kind domain.LogKind, date string) (int, error) {
	args := m.Called(ctx, kind, date)
	return args.Int(0), args.Error(1)
}

func (m *MockLogRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
