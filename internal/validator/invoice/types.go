package invoice

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"firsgate/internal/config"
	"firsgate/internal/domain"
)

// Severity marks whether a finding blocks signing.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single failed check produced by a stage.
type Finding struct {
	Severity Severity
	Field    string
	Message  string
}

// Issue converts the finding into its wire form.
func (f Finding) Issue() domain.ValidationIssue {
	return domain.ValidationIssue{Field: f.Field, Message: f.Message}
}

func errorf(field, format string, args ...any) Finding {
	return Finding{Severity: SeverityError, Field: field, Message: fmt.Sprintf(format, args...)}
}

func warning(field, msg string) Finding {
	return Finding{Severity: SeverityWarning, Field: field, Message: msg}
}

// Rules holds the tunable parameters shared by the stages.
type Rules struct {
	Tolerance       decimal.Decimal
	StandardVATRate decimal.Decimal
	InvoiceTypes    map[string]string
	MaxLines        int
}

// RulesFromConfig builds Rules from validation settings.
func RulesFromConfig(cfg config.ValidationConfig) Rules {
	types := cfg.InvoiceTypes
	if len(types) == 0 {
		types = config.DefaultInvoiceTypes()
	}
	return Rules{
		Tolerance:       decimal.NewFromFloat(cfg.TaxTolerance),
		StandardVATRate: decimal.NewFromFloat(cfg.StandardVATRate),
		InvoiceTypes:    types,
		MaxLines:        cfg.MaxInvoiceLines,
	}
}

func (r Rules) invoiceTypeCodes() []string {
	codes := make([]string, 0, len(r.InvoiceTypes))
	for code := range r.InvoiceTypes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// withinTolerance reports whether |declared - expected| <= tolerance.
func (r Rules) withinTolerance(declared, expected decimal.Decimal) bool {
	return !declared.Sub(expected).Abs().GreaterThan(r.Tolerance)
}

// stageValidator is one ordered validation stage.
type stageValidator struct {
	stageKey  string
	stageName string
	validate  func(domain.Invoice) []Finding
}

func (v *stageValidator) Key() string  { return v.stageKey }
func (v *stageValidator) Name() string { return v.stageName }

func (v *stageValidator) Validate(_ context.Context, inv domain.Invoice) []Finding {
	return v.validate(inv)
}

// Stages returns the full validation stages in their fixed run order.
func Stages(r Rules) []*stageValidator {
	return []*stageValidator{
		RequiredStage(),
		FormatStage(r),
		BusinessLogicStage(),
		TaxStage(r),
		LineStage(r),
	}
}

func fmtd(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// scalarString renders a decoded JSON scalar the way it was written.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	case float64:
		return decimal.NewFromFloat(t).String(), true
	case int:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
