package domain

import "encoding/json"

// PaymentStatus is the payment state recorded on an index record.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// Artifact status values reported by the index.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
)

// IndexRecord is one signed invoice in the invoice index.
type IndexRecord struct {
	IRN           string        `json:"irn"`
	IRNSigned     string        `json:"irn_signed"`
	BusinessID    string        `json:"business_id"`
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Signed        bool          `json:"signed"`
	SignedAt      string        `json:"signed_at"`
	Files         RecordFiles   `json:"files"`
	Summary       RecordSummary `json:"summary"`
}

// RecordFiles holds artifact paths for an index record.
type RecordFiles struct {
	Encrypted string `json:"encrypted"`
	QRCode    string `json:"qr_code"`
}

// RecordSummary is the searchable projection of an invoice.
type RecordSummary struct {
	Supplier    string  `json:"supplier"`
	Customer    string  `json:"customer"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
}

// IndexFile is the on-disk layout of the JSON invoice index.
type IndexFile struct {
	Invoices    []IndexRecord `json:"invoices"`
	LastUpdated string        `json:"last_updated"`
	TotalCount  int           `json:"total_count"`
}

// FileState reports an artifact path and whether it still exists.
type FileState struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// InvoiceStatus is the confirmation view of a signed invoice.
type InvoiceStatus struct {
	IRN           string        `json:"irn"`
	IRNSigned     string        `json:"irn_signed"`
	BusinessID    string        `json:"business_id"`
	Status        string        `json:"status"`
	Signed        bool          `json:"signed"`
	SignedAt      string        `json:"signed_at"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Files         struct {
		Encrypted FileState `json:"encrypted"`
		QRCode    FileState `json:"qr_code"`
	} `json:"files"`
	Summary RecordSummary `json:"summary"`
}

// ValidationIssue is a single field-level error or warning.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of a full invoice validation.
type ValidationResult struct {
	Valid           bool              `json:"valid"`
	Errors          []ValidationIssue `json:"errors"`
	Warnings        []ValidationIssue `json:"warnings"`
	FieldsValidated int               `json:"fields_validated"`
}

// QuickValidationResult is the outcome of an IRN-only validation.
type QuickValidationResult struct {
	Valid      bool              `json:"valid"`
	Errors     []ValidationIssue `json:"errors"`
	IRN        any               `json:"irn"`
	BusinessID any               `json:"business_id"`
}

// LogType distinguishes observability log entries.
type LogType string

const (
	LogTypeSuccess   LogType = "SUCCESS"
	LogTypeError     LogType = "ERROR"
	LogTypeException LogType = "EXCEPTION"
)

// LogTimeLayout is the timestamp layout used in log entries and log tables.
const LogTimeLayout = "2006-01-02 15:04:05"

// LogEntry is one structured success, error, or exception event.
type LogEntry struct {
	Timestamp       string          `json:"timestamp"`
	Type            LogType         `json:"type"`
	ErrorType       string          `json:"error_type,omitempty"`
	HTTPCode        int             `json:"http_code"`
	IRN             string          `json:"irn"`
	SourceFile      string          `json:"source_file,omitempty"`
	Handler         string          `json:"handler,omitempty"`
	DetailedMessage string          `json:"detailed_message,omitempty"`
	PublicMessage   string          `json:"public_message,omitempty"`
	ErrorDetails    json.RawMessage `json:"error_details,omitempty"`
	BusinessID      string          `json:"business_id"`
	Supplier        string          `json:"supplier"`
	Customer        string          `json:"customer"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Files           string          `json:"files,omitempty"`
}

// IsError reports whether the entry belongs to the error channel.
func (e *LogEntry) IsError() bool {
	return e.Type == LogTypeError || e.Type == LogTypeException
}

// LogKind selects the success or error log channel.
type LogKind string

const (
	LogKindSuccess LogKind = "success"
	LogKindError   LogKind = "error"
)

// LogStatistics counts log entries for a single day.
type LogStatistics struct {
	Date         string `json:"date"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
	TotalCount   int    `json:"total_count"`
}

// HSNCode is one entry of the HSN code catalogue.
type HSNCode struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	TaxRate     float64 `json:"tax_rate,omitempty"`
}

// SignedInvoice is the result of a successful signing pipeline run.
type SignedInvoice struct {
	IRN             string          `json:"irn"`
	IRNSigned       string          `json:"irn_signed"`
	EncryptedData   string          `json:"encrypted_data"`
	Files           SignedFiles     `json:"files"`
	Performance     Performance     `json:"performance"`
	UpstreamOutcome *UpstreamResult `json:"firs_api_response,omitempty"`
}

// SignedFiles lists the artifacts written for a signing event.
type SignedFiles struct {
	JSON      string `json:"json"`
	Encrypted string `json:"encrypted"`
	QRCode    string `json:"qr_code"`
}

// Performance carries per-stage wall-clock timings in milliseconds.
type Performance struct {
	TotalTimeMS float64            `json:"total_time_ms"`
	Timings     map[string]float64 `json:"timings"`
}

// Upstream result status values.
const (
	UpstreamStatusSuccess  = "success"
	UpstreamStatusError    = "error"
	UpstreamStatusDisabled = "disabled"
)

// UpstreamResult is the outcome of a call to the tax authority API.
type UpstreamResult struct {
	Status   string          `json:"status"`
	HTTPCode int             `json:"http_code,omitempty"`
	Message  string          `json:"message,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
}
