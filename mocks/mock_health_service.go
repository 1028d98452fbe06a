package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/service"
)

// MockHealthService is a mock implementation of service.HealthService.
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context, detailed bool) *service.HealthReport {
	args := m.Called(ctx, detailed)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.HealthReport)
}

func (m *MockHealthService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
