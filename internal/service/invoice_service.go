package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firsgate/internal/domain"
	"firsgate/internal/irn"
	"firsgate/internal/port"
	"firsgate/internal/search"
	"firsgate/internal/validator"
)

// InvoiceService answers the read-side invoice operations.
type InvoiceService interface {
	Validate(ctx context.Context, inv domain.Invoice) domain.ValidationResult
	ValidateIRN(inv domain.Invoice) domain.QuickValidationResult
	Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error)
	Download(ctx context.Context, irn string, t domain.DownloadType) (*domain.Download, error)
	Search(ctx context.Context, q search.Query) (*search.Result, error)
	Template(templateType string) map[string]any
	RemoteStatus(ctx context.Context, irn string) (*domain.UpstreamResult, error)
	RemoteValidate(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error)
}

type invoiceService struct {
	validator *validator.Engine
	index     port.InvoiceIndex
	store     port.ArtifactStore
	upstream  port.UpstreamClient
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	engine *validator.Engine,
	idx port.InvoiceIndex,
	store port.ArtifactStore,
	upstreamClient port.UpstreamClient,
	loc *time.Location,
) InvoiceService {
	if loc == nil {
		loc = time.UTC
	}
	return &invoiceService{
		validator: engine,
		index:     idx,
		store:     store,
		upstream:  upstreamClient,
		now:       func() time.Time { return time.Now().In(loc) },
	}
}

func (s *invoiceService) Validate(ctx context.Context, inv domain.Invoice) domain.ValidationResult {
	return s.validator.ValidateFull(ctx, inv)
}

func (s *invoiceService) ValidateIRN(inv domain.Invoice) domain.QuickValidationResult {
	return s.validator.ValidateQuick(inv)
}

func (s *invoiceService) Status(ctx context.Context, id, businessID string) (*domain.InvoiceStatus, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("service.Status: irn: %w", domain.ErrMissingField)
	}
	st, err := s.index.Status(ctx, id, businessID)
	if err != nil {
		return nil, fmt.Errorf("service.Status: %w", err)
	}
	return st, nil
}

// Download accepts either a signed IRN or a plain IRN. A plain IRN that is in
// the index resolves to its signed form; anything else is looked up as given.
func (s *invoiceService) Download(ctx context.Context, id string, t domain.DownloadType) (*domain.Download, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("service.Download: irn: %w", domain.ErrMissingField)
	}

	signedIRN := id
	if irn.Valid(id) {
		rec, err := s.index.Get(ctx, id)
		switch {
		case err == nil:
			signedIRN = rec.IRNSigned
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("service.Download: %w", err)
		}
	}

	d, err := s.store.Download(signedIRN, t)
	if err != nil {
		return nil, fmt.Errorf("service.Download: %w", err)
	}
	return d, nil
}

func (s *invoiceService) Search(ctx context.Context, q search.Query) (*search.Result, error) {
	records, err := s.index.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Search: %w", err)
	}
	return search.Search(records, q), nil
}

// Template returns a skeleton invoice dated today and due in 30 days. Only
// the standard template exists, so templateType does not change the result.
func (s *invoiceService) Template(templateType string) map[string]any {
	today := s.now()
	return map[string]any{
		"irn":                    "TEMPLATE-IRN-" + today.Format("20060102"),
		"business_id":            "00000000-0000-0000-0000-000000000000",
		"issue_date":             today.Format("2006-01-02"),
		"due_date":               today.AddDate(0, 0, 30).Format("2006-01-02"),
		"invoice_type_code":      "380",
		"document_currency_code": "NGN",
		"note":                   "Sample invoice template",
	}
}

// RemoteStatus asks the tax authority for its view of irn.
func (s *invoiceService) RemoteStatus(ctx context.Context, id string) (*domain.UpstreamResult, error) {
	res, err := s.upstream.Status(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.RemoteStatus: %w", err)
	}
	return res, nil
}

// RemoteValidate submits the IRN of inv to the tax authority for validation.
func (s *invoiceService) RemoteValidate(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error) {
	id, err := irn.Extract(inv)
	if err != nil {
		return nil, fmt.Errorf("service.RemoteValidate: %w", err)
	}
	res, err := s.upstream.ValidateIRN(ctx, id, inv.String("business_id"), inv)
	if err != nil {
		return nil, fmt.Errorf("service.RemoteValidate: %w", err)
	}
	return res, nil
}
