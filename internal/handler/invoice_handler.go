package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"firsgate/internal/csvexport"
	"firsgate/internal/domain"
	"firsgate/internal/logger"
	"firsgate/internal/middleware"
	"firsgate/internal/search"
	"firsgate/internal/service"
)

// InvoiceHandler handles invoice signing, validation, and retrieval endpoints.
type InvoiceHandler struct {
	signingService service.SigningService
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(signingService service.SigningService, invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{signingService: signingService, invoiceService: invoiceService}
}

// bindInvoice decodes the request body as an invoice, keeping numbers exact.
// It writes the error response and returns false on failure.
func bindInvoice(c *gin.Context) (domain.Invoice, bool) {
	body, err := c.GetRawData()
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON in request body")
		return nil, false
	}
	inv, err := domain.DecodeInvoice(body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON in request body")
		return nil, false
	}
	return inv, true
}

// ValidateIRN handles POST /api/v1/invoice/validate-irn
// @Summary Quick IRN validation
// @Description Check the IRN format and business_id of an invoice without running the full rule set
// @Tags invoice
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice with irn and business_id"
// @Success 200 {object} Response{data=domain.QuickValidationResult} "IRN is valid"
// @Failure 400 {object} ValidationErrorBody "IRN validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /invoice/validate-irn [post]
func (h *InvoiceHandler) ValidateIRN(c *gin.Context) {
	inv, ok := bindInvoice(c)
	if !ok {
		return
	}
	res := h.invoiceService.ValidateIRN(inv)
	if !res.Valid {
		RespondValidation(c, "IRN validation failed", res.Errors)
		return
	}
	RespondOK(c, "IRN validation successful", res)
}

// Validate handles POST /api/v1/invoice/validate
// @Summary Validate an invoice
// @Description Run every validation stage (required fields, formats, dates, tax, lines) without signing
// @Tags invoice
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice document"
// @Success 200 {object} Response{data=domain.ValidationResult} "Validation passed, possibly with warnings"
// @Failure 400 {object} ValidationErrorBody "Validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /invoice/validate [post]
func (h *InvoiceHandler) Validate(c *gin.Context) {
	inv, ok := bindInvoice(c)
	if !ok {
		return
	}
	res := h.invoiceService.Validate(c.Request.Context(), inv)
	if !res.Valid {
		RespondValidation(c, "Validation failed", res.Errors)
		return
	}
	message := "Validation successful"
	if len(res.Warnings) > 0 {
		message = "Validation passed with warnings"
	}
	RespondOK(c, message, res)
}

// Sign handles POST /api/v1/invoice/sign
// @Summary Sign an invoice
// @Description Validate the invoice, sign its IRN, write the encrypted payload and QR code, and submit it to the tax authority when enabled
// @Tags invoice
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice document"
// @Success 200 {object} Response{data=domain.SignedInvoice} "Invoice signed"
// @Failure 400 {object} ValidationErrorBody "Validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Invoice with this IRN already exists"
// @Failure 500 {object} ErrorResponseBody "Processing failed"
// @Security APIKeyAuth
// @Router /invoice/sign [post]
func (h *InvoiceHandler) Sign(c *gin.Context) {
	inv, ok := bindInvoice(c)
	if !ok {
		return
	}
	signed, err := h.signingService.Sign(c.Request.Context(), inv)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, "Invoice signed successfully", signed)
}

// Download handles GET /api/v1/invoice/download/:irn
// @Summary Download signing artifacts
// @Description Stream the QR code, the encrypted payload, a zip of both, or JSON metadata for a signed invoice. Accepts a signed IRN or a plain IRN.
// @Tags invoice
// @Produce octet-stream
// @Param irn path string true "Signed or plain IRN"
// @Param type query string false "Artifact type" Enums(qr, txt, both, json) default(qr)
// @Success 200 {file} file "Artifact content"
// @Failure 400 {object} ErrorResponseBody "Missing IRN or invalid type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Security APIKeyAuth
// @Router /invoice/download/{irn} [get]
func (h *InvoiceHandler) Download(c *gin.Context) {
	id := strings.TrimSpace(c.Param("irn"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PARAMETER", "IRN parameter is required")
		return
	}
	t, err := domain.ParseDownloadType(c.Query("type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	d, err := h.invoiceService.Download(c.Request.Context(), id, t)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			RespondError(c, http.StatusNotFound, "FILE_NOT_FOUND", fmt.Sprintf("File not found for IRN: %s", id))
			return
		}
		HandleError(c, err)
		return
	}
	defer d.Body.Close()

	headers := map[string]string{
		"Content-Disposition": mime.FormatMediaType(d.Disposition, map[string]string{"filename": d.FileName}),
	}
	if d.CacheControl != "" {
		headers["Cache-Control"] = d.CacheControl
	}
	size := d.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, d.ContentType, d.Body, headers)
}

// Confirm handles GET /api/v1/invoice/confirm
// @Summary Confirm invoice status
// @Description Report the signing status of an indexed invoice and whether its artifacts still exist
// @Tags invoice
// @Produce json
// @Param irn query string true "Plain IRN"
// @Param business_id query string false "Business ID that must own the invoice"
// @Success 200 {object} Response{data=domain.InvoiceStatus} "Status retrieved"
// @Failure 400 {object} ErrorResponseBody "Missing IRN"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Business ID mismatch"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security APIKeyAuth
// @Router /invoice/confirm [get]
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	id := strings.TrimSpace(c.Query("irn"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PARAMETER", "IRN parameter is required")
		return
	}
	status, err := h.invoiceService.Status(c.Request.Context(), id, c.Query("business_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Invoice with identifier '%s' not found", id))
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, "Status retrieved successfully", status)
}

// Update handles POST /api/v1/invoice/update
// @Summary Update an invoice
// @Description Not implemented
// @Tags invoice
// @Produce json
// @Failure 501 {object} ErrorResponseBody "Not implemented"
// @Security APIKeyAuth
// @Router /invoice/update [post]
func (h *InvoiceHandler) Update(c *gin.Context) {
	RespondError(c, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Update endpoint not yet implemented")
}

// Search handles GET /api/v1/invoice/search
// @Summary Search signed invoices
// @Description Filter, sort, and paginate the invoice index. With format=csv the current page is returned as a CSV attachment.
// @Tags invoice
// @Produce json
// @Param irn query string false "Exact IRN, prefix with trailing *, or substring"
// @Param business_id query string false "Business ID"
// @Param date_from query string false "Issue date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Issue date upper bound (YYYY-MM-DD)"
// @Param payment_status query string false "Payment status"
// @Param supplier query string false "Supplier name substring"
// @Param customer query string false "Customer name substring"
// @Param min_amount query number false "Minimum total amount"
// @Param max_amount query number false "Maximum total amount"
// @Param currency query string false "Currency code"
// @Param signed query bool false "Signed flag"
// @Param sort_by query string false "Sort field" Enums(issue_date, total_amount, signed_at) default(issue_date)
// @Param sort_order query string false "Sort order" Enums(asc, desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Results per page (max 100)" default(20)
// @Param format query string false "Response format" Enums(json, csv) default(json)
// @Success 200 {object} Response{data=search.Result} "Search completed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /invoice/search [get]
func (h *InvoiceHandler) Search(c *gin.Context) {
	values := c.Request.URL.Query()
	format := values.Get("format")
	values.Del("format")

	res, err := h.invoiceService.Search(c.Request.Context(), search.ParseQuery(values))
	if err != nil {
		HandleError(c, err)
		return
	}
	if format != "csv" {
		RespondOK(c, "Search completed", res)
		return
	}

	filename := csvexport.BuildFilename("invoices", time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Status(http.StatusOK)
	if err := csvexport.Export(c.Writer, res.Results, true); err != nil {
		log := logger.WithRequestID(middleware.GetRequestID(c))
		log.Error().Err(err).Msg("csv export failed")
	}
}

// Template handles GET /api/v1/invoice/new-request
// @Summary Invoice template
// @Description Return a skeleton invoice dated today and due in 30 days
// @Tags invoice
// @Produce json
// @Param template_type query string false "Template type" default(standard)
// @Success 200 {object} Response "Template generated"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /invoice/new-request [get]
func (h *InvoiceHandler) Template(c *gin.Context) {
	RespondOK(c, "Template generated", h.invoiceService.Template(c.DefaultQuery("template_type", "standard")))
}
