package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
	"firsgate/internal/search"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Validate(ctx context.Context, inv domain.Invoice) domain.ValidationResult {
	args := m.Called(ctx, inv)
	return args.Get(0).(domain.ValidationResult)
}

func (m *MockInvoiceService) ValidateIRN(inv domain.Invoice) domain.QuickValidationResult {
	args := m.Called(inv)
	return args.Get(0).(domain.QuickValidationResult)
}

func (m *MockInvoiceService) Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error) {
	args := m.Called(ctx, irn, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceStatus), args.Error(1)
}

func (m *MockInvoiceService) Download(ctx context.Context, irn string, t domain.DownloadType) (*domain.Download, error) {
	args := m.Called(ctx, irn, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Download), args.Error(1)
}

func (m *MockInvoiceService) Search(ctx context.Context, q search.Query) (*search.Result, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.Result), args.Error(1)
}

func (m *MockInvoiceService) Template(templateType string) map[string]any {
	args := m.Called(templateType)
	return args.Get(0).(map[string]any)
}

func (m *MockInvoiceService) RemoteStatus(ctx context.Context, irn string) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, irn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResult), args.Error(1)
}

func (m *MockInvoiceService) RemoteValidate(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpstreamResult), args.Error(1)
}
