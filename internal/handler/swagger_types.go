package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// InvoiceRequest is an invoice document as submitted for validation or
// signing. Only the top-level keys checked by the required-field stage are
// listed.
type InvoiceRequest struct {
	BusinessID           string                 `json:"business_id" example:"b3a1c2d4-5e6f-4a7b-8c9d-0e1f2a3b4c5d"`
	IRN                  string                 `json:"irn" example:"INV001-94ND90NR-20240611"`
	IssueDate            string                 `json:"issue_date" example:"2024-06-11"`
	DueDate              string                 `json:"due_date" example:"2024-07-11"`
	InvoiceTypeCode      string                 `json:"invoice_type_code" example:"380"`
	DocumentCurrencyCode string                 `json:"document_currency_code" example:"NGN"`
	AccountingSupplier   map[string]interface{} `json:"accounting_supplier_party"`
	AccountingCustomer   map[string]interface{} `json:"accounting_customer_party"`
	LegalMonetaryTotal   map[string]interface{} `json:"legal_monetary_total"`
	TaxTotal             []interface{}          `json:"tax_total"`
	InvoiceLine          []interface{}          `json:"invoice_line"`
}

// --- Response Types ---

// HealthResponse represents the liveness and readiness probe response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"signing not ready"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message" example:"Invoice signed successfully"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id" example:"6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"`
	Timestamp string      `json:"timestamp" example:"2025-10-24T09:30:00Z"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success   bool      `json:"success" example:"false"`
	Error     *APIError `json:"error"`
	RequestID string    `json:"request_id" example:"6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"`
	Timestamp string    `json:"timestamp" example:"2025-10-24T09:30:00Z"`
}

// ValidationErrorBody wraps a failed validation; error.details lists the
// findings as {field, message} pairs.
type ValidationErrorBody struct {
	Success bool      `json:"success" example:"false"`
	Message string    `json:"message" example:"Validation failed"`
	Error   *APIError `json:"error"`
}
