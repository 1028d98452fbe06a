package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockHSNRepository is a mock implementation of port.HSNRepository.
type MockHSNRepository struct {
	mock.Mock
}

func (m *MockHSNRepository) LoadAll(ctx context.Context) ([]domain.HSNCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HSNCode), args.Error(1)
}
