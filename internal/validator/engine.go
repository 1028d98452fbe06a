package validator

import (
	"context"

	"firsgate/internal/config"
	"firsgate/internal/domain"
	"firsgate/internal/validator/invoice"
)

// Engine runs the invoice validation stages in order and collects findings.
type Engine struct {
	registry        *Registry
	fieldsValidated int
}

// NewEngine creates an engine with the built-in stages registered.
func NewEngine(cfg config.ValidationConfig) *Engine {
	registry := NewRegistry()
	for _, stage := range invoice.Stages(invoice.RulesFromConfig(cfg)) {
		registry.Register(stage)
	}
	return NewEngineWithRegistry(registry, cfg.RequiredFields)
}

// NewEngineWithRegistry creates an engine over a custom registry.
func NewEngineWithRegistry(registry *Registry, fieldsValidated int) *Engine {
	return &Engine{registry: registry, fieldsValidated: fieldsValidated}
}

// ValidateFull runs every stage. Warnings never affect validity.
func (e *Engine) ValidateFull(ctx context.Context, inv domain.Invoice) domain.ValidationResult {
	result := domain.ValidationResult{
		Errors:          []domain.ValidationIssue{},
		Warnings:        []domain.ValidationIssue{},
		FieldsValidated: e.fieldsValidated,
	}
	for _, v := range e.registry.All() {
		for _, f := range v.Validate(ctx, inv) {
			if f.Severity == invoice.SeverityWarning {
				result.Warnings = append(result.Warnings, f.Issue())
			} else {
				result.Errors = append(result.Errors, f.Issue())
			}
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateQuick checks only the business id and IRN.
func (e *Engine) ValidateQuick(inv domain.Invoice) domain.QuickValidationResult {
	errs := []domain.ValidationIssue{}

	businessID, ok := inv.Lookup("business_id")
	switch {
	case !ok:
		errs = append(errs, domain.ValidationIssue{Field: "business_id", Message: "Business ID is required"})
	case !invoice.IsUUIDv4(businessID):
		errs = append(errs, domain.ValidationIssue{Field: "business_id", Message: "Invalid UUID format"})
	}

	irnValue, ok := inv.Lookup("irn")
	switch {
	case !ok:
		errs = append(errs, domain.ValidationIssue{Field: "irn", Message: "IRN is required"})
	case !invoice.IsValidIRN(irnValue):
		errs = append(errs, domain.ValidationIssue{Field: "irn", Message: "Invalid IRN format"})
	}

	return domain.QuickValidationResult{
		Valid:      len(errs) == 0,
		Errors:     errs,
		IRN:        irnValue,
		BusinessID: businessID,
	}
}
