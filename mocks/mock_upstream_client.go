package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockUpstreamClient is a mock implementation of port.UpstreamClient.
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockUpstreamClient) Submit(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResult), args.Error(1)
}

func (m *MockUpstreamClient) ValidateIRN(ctx context.Context, irn, businessID string, inv domain.Invoice) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, irn, businessID, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResult), args.Error(1)
}

func (m *MockUpstreamClient) Status(ctx context.Context, irn string) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, irn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResult), args.Error(1)
}

func (m *MockUpstreamClient) TestConnectivity(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
