package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockInvoiceIndex is a mock implementation of port.InvoiceIndex.
type MockInvoiceIndex struct {
	mock.Mock
}

func (m *MockInvoiceIndex) IsDuplicate(ctx context.Context, irn string) (bool, error) {
	args := m.Called(ctx, irn)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceIndex) RecordSigned(ctx context.Context, rec *domain.IndexRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInvoiceIndex) Get(ctx context.Context, irn string) (*domain.IndexRecord, error) {
	args := m.Called(ctx, irn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndexRecord), args.Error(1)
}

func (m *MockInvoiceIndex) Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error) {
	args := m.Called(ctx, irn, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceStatus), args.Error(1)
}

func (m *MockInvoiceIndex) Snapshot(ctx context.Context) ([]domain.IndexRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IndexRecord), args.Error(1)
}

func (m *MockInvoiceIndex) Close() error {
	args := m.Called()
	return args.Error(0)
}
