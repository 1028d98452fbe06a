package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockSigningService is a mock implementation of service.SigningService.
type MockSigningService struct {
	mock.Mock
}

func (m *MockSigningService) Sign(ctx context.Context, inv domain.Invoice) (*domain.SignedInvoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignedInvoice), args.Error(1)
}
