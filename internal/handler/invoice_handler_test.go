package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
	"firsgate/internal/handler"
	"firsgate/internal/search"
	"firsgate/internal/service"
	"firsgate/internal/testutil"
	"firsgate/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockSigningService, *mocks.MockInvoiceService) {
	signing := new(mocks.MockSigningService)
	invoices := new(mocks.MockInvoiceService)
	return handler.NewInvoiceHandler(signing, invoices), signing, invoices
}

func jsonContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInvoiceHandler_Sign_Success(t *testing.T) {
	h, signing, _ := newInvoiceHandler()
	signed := &domain.SignedInvoice{IRN: testutil.SampleIRN, IRNSigned: testutil.SampleIRN + ".1761264000"}
	signing.On("Sign", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.String("irn") == testutil.SampleIRN
	})).Return(signed, nil)

	c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/sign", testutil.ValidInvoice(t))
	h.Sign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Invoice signed successfully", resp.Message)
	assert.NotEmpty(t, resp.Timestamp)
	signing.AssertExpectations(t)
}

func TestInvoiceHandler_Sign_InvalidJSON(t *testing.T) {
	h, signing, _ := newInvoiceHandler()

	c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/sign", "{not json")
	h.Sign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", decode(t, w).Error.Code)
	signing.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Sign_Errors(t *testing.T) {
	perf := domain.Performance{
		TotalTimeMS: 12.5,
		Timings:     map[string]float64{service.StageValidation: 1.25, service.StageEncryption: 4},
	}
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
		wantPerf bool
	}{
		{
			name: "validation failure",
			err: &service.ValidationError{Result: domain.ValidationResult{
				Errors: []domain.ValidationIssue{{Field: "irn", Message: "IRN is required"}},
			}, Performance: perf},
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
			wantPerf: true,
		},
		{
			name:     "duplicate",
			err:      &service.ConflictError{IRN: testutil.SampleIRN, Performance: perf},
			wantCode: http.StatusConflict,
			wantErr:  "DUPLICATE_IRN",
			wantPerf: true,
		},
		{
			name:     "wrapped duplicate sentinel",
			err:      errors.Join(errors.New("service.Sign"), domain.ErrDuplicateIRN),
			wantCode: http.StatusConflict,
			wantErr:  "DUPLICATE_IRN",
		},
		{
			name:     "processing failure",
			err:      &service.ProcessingError{Stage: service.StageEncryption, Err: domain.ErrEncryption, Performance: perf},
			wantCode: http.StatusInternalServerError,
			wantErr:  "PROCESSING_ERROR",
			wantPerf: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, signing, _ := newInvoiceHandler()
			signing.On("Sign", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/sign", testutil.ValidInvoice(t))
			h.Sign(c)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)

			if !tt.wantPerf {
				assert.Nil(t, resp.Meta)
				return
			}
			meta, ok := resp.Meta.(map[string]interface{})
			require.True(t, ok)
			performance, ok := meta["performance"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, 12.5, performance["total_time_ms"])
			assert.Contains(t, performance["timings"], service.StageValidation)
		})
	}
}

func TestInvoiceHandler_Validate_Messages(t *testing.T) {
	tests := []struct {
		name        string
		result      domain.ValidationResult
		wantStatus  int
		wantMessage string
	}{
		{"clean", domain.ValidationResult{Valid: true}, http.StatusOK, "Validation successful"},
		{
			"warnings",
			domain.ValidationResult{Valid: true, Warnings: []domain.ValidationIssue{{Field: "due_date", Message: "short"}}},
			http.StatusOK,
			"Validation passed with warnings",
		},
		{
			"invalid",
			domain.ValidationResult{Errors: []domain.ValidationIssue{{Field: "irn", Message: "bad"}}},
			http.StatusBadRequest,
			"Validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, invoices := newInvoiceHandler()
			invoices.On("Validate", mock.Anything, mock.Anything).Return(tt.result)

			c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/validate", testutil.ValidInvoice(t))
			h.Validate(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, decode(t, w).Message)
		})
	}
}

func TestInvoiceHandler_ValidateIRN(t *testing.T) {
	h, _, invoices := newInvoiceHandler()
	invoices.On("ValidateIRN", mock.Anything).Return(domain.QuickValidationResult{
		Errors: []domain.ValidationIssue{{Field: "business_id", Message: "Invalid business_id format"}},
	})

	c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/validate-irn", map[string]any{"irn": "x"})
	h.ValidateIRN(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "IRN validation failed", resp.Message)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestInvoiceHandler_Download_QR(t *testing.T) {
	h, _, invoices := newInvoiceHandler()
	invoices.On("Download", mock.Anything, testutil.SampleIRN, domain.DownloadQR).Return(&domain.Download{
		FileName:     "signed.png",
		ContentType:  "image/png",
		Disposition:  domain.DispositionInline,
		CacheControl: "public, max-age=86400",
		Size:         3,
		Body:         io.NopCloser(strings.NewReader("png")),
	}, nil)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/download/"+testutil.SampleIRN, nil)
	c.Params = gin.Params{{Key: "irn", Value: testutil.SampleIRN}}
	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename=signed.png`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
}

func TestInvoiceHandler_Download_Errors(t *testing.T) {
	t.Run("invalid type", func(t *testing.T) {
		h, _, invoices := newInvoiceHandler()
		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/download/x?type=pdf", nil)
		c.Params = gin.Params{{Key: "irn", Value: "x"}}
		h.Download(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_TYPE", decode(t, w).Error.Code)
		invoices.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		h, _, invoices := newInvoiceHandler()
		invoices.On("Download", mock.Anything, "x", domain.DownloadTXT).Return(nil, domain.ErrFileNotFound)

		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/download/x?type=txt", nil)
		c.Params = gin.Params{{Key: "irn", Value: "x"}}
		h.Download(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "FILE_NOT_FOUND", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "x")
	})

	t.Run("missing irn", func(t *testing.T) {
		h, _, _ := newInvoiceHandler()
		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/download/", nil)
		h.Download(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_PARAMETER", decode(t, w).Error.Code)
	})
}

func TestInvoiceHandler_Confirm(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, _, invoices := newInvoiceHandler()
		invoices.On("Status", mock.Anything, testutil.SampleIRN, testutil.SampleBusinessID).
			Return(&domain.InvoiceStatus{IRN: testutil.SampleIRN, Status: domain.StatusComplete}, nil)

		c, w := jsonContext(t, http.MethodGet,
			"/api/v1/invoice/confirm?irn="+testutil.SampleIRN+"&business_id="+testutil.SampleBusinessID, nil)
		h.Confirm(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Status retrieved successfully", decode(t, w).Message)
	})

	t.Run("not found", func(t *testing.T) {
		h, _, invoices := newInvoiceHandler()
		invoices.On("Status", mock.Anything, "NOPE", "").Return(nil, domain.ErrNotFound)

		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/confirm?irn=NOPE", nil)
		h.Confirm(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Invoice with identifier 'NOPE' not found", decode(t, w).Error.Message)
	})

	t.Run("business mismatch", func(t *testing.T) {
		h, _, invoices := newInvoiceHandler()
		invoices.On("Status", mock.Anything, testutil.SampleIRN, "other").Return(nil, domain.ErrForbidden)

		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/confirm?irn="+testutil.SampleIRN+"&business_id=other", nil)
		h.Confirm(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing irn", func(t *testing.T) {
		h, _, _ := newInvoiceHandler()
		c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/confirm", nil)
		h.Confirm(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "IRN parameter is required", decode(t, w).Error.Message)
	})
}

func TestInvoiceHandler_Update(t *testing.T) {
	h, _, _ := newInvoiceHandler()
	c, w := jsonContext(t, http.MethodPost, "/api/v1/invoice/update", "{}")
	h.Update(c)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "NOT_IMPLEMENTED", decode(t, w).Error.Code)
}

func TestInvoiceHandler_Search(t *testing.T) {
	h, _, invoices := newInvoiceHandler()
	invoices.On("Search", mock.Anything, mock.MatchedBy(func(q search.Query) bool {
		return q.IRN == "PFNL*" && q.PerPage == 5 && q.Applied["irn"] == "PFNL*"
	})).Return(&search.Result{Results: []domain.IndexRecord{}}, nil)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/search?irn=PFNL*&per_page=5", nil)
	h.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Search completed", decode(t, w).Message)
	invoices.AssertExpectations(t)
}

func TestInvoiceHandler_SearchCSV(t *testing.T) {
	h, _, invoices := newInvoiceHandler()
	invoices.On("Search", mock.Anything, mock.MatchedBy(func(q search.Query) bool {
		_, hasFormat := q.Applied["format"]
		return q.Supplier == "acme" && !hasFormat
	})).Return(&search.Result{Results: []domain.IndexRecord{{
		IRN:       testutil.SampleIRN,
		IRNSigned: testutil.SampleIRN + ".1761264000",
		Signed:    true,
		Summary:   domain.RecordSummary{Supplier: "Acme Ltd", TotalAmount: 1075, Currency: "NGN"},
	}}}, nil)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/search?supplier=acme&format=csv", nil)
	h.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	body := w.Body.String()
	assert.Contains(t, body, "IRN,Signed IRN,Business ID")
	assert.Contains(t, body, testutil.SampleIRN+".1761264000")
	assert.Contains(t, body, "1075.00")
	invoices.AssertExpectations(t)
}

func TestInvoiceHandler_Template(t *testing.T) {
	h, _, invoices := newInvoiceHandler()
	invoices.On("Template", "standard").Return(map[string]any{"invoice_type_code": "380"})

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/new-request", nil)
	h.Template(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Template generated", resp.Message)
	assert.Equal(t, "380", resp.Data.(map[string]any)["invoice_type_code"])
}
