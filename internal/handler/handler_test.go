package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
	"firsgate/internal/handler"
	"firsgate/internal/hsn"
	"firsgate/internal/service"
	"firsgate/mocks"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrMissingField, http.StatusBadRequest, "MISSING_FIELD"},
		{domain.ErrInvalidFormat, http.StatusBadRequest, "INVALID_FORMAT"},
		{domain.ErrInvalidDownloadType, http.StatusBadRequest, "INVALID_TYPE"},
		{domain.ErrDuplicateIRN, http.StatusConflict, "DUPLICATE_IRN"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{domain.ErrNotImplemented, http.StatusNotImplemented, "NOT_IMPLEMENTED"},
		{domain.ErrKeyLoad, http.StatusInternalServerError, "PROCESSING_ERROR"},
		{domain.ErrQRGeneration, http.StatusInternalServerError, "PROCESSING_ERROR"},
		{&service.ProcessingError{Stage: service.StageSaveRecord, Err: domain.ErrNotFound}, http.StatusInternalServerError, "PROCESSING_ERROR"},
		{&service.ValidationError{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "EXCEPTION"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code, _ := handler.MapDomainError(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestHSNHandler_List(t *testing.T) {
	repo := new(mocks.MockHSNRepository)
	repo.On("LoadAll", mock.Anything).Return([]domain.HSNCode{
		{Code: "8471", Description: "Computers", Category: "Electronics"},
		{Code: "8517", Description: "Telephones", Category: "Electronics"},
		{Code: "1006", Description: "Rice", Category: "Food"},
	}, nil)
	h := handler.NewHSNHandler(hsn.NewCatalogue(repo))

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/hsn-codes?category=electronics&per_page=1", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "HSN codes retrieved", resp.Message)
	data := resp.Data.(map[string]any)
	assert.Len(t, data["codes"], 1)
	assert.EqualValues(t, 3, data["total_codes"])
	pagination := data["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pagination["total_results"])
}

func TestHSNHandler_List_RepoFailure(t *testing.T) {
	repo := new(mocks.MockHSNRepository)
	repo.On("LoadAll", mock.Anything).Return(nil, fmt.Errorf("hsn: %w", domain.ErrStorage))
	h := handler.NewHSNHandler(hsn.NewCatalogue(repo))

	c, w := jsonContext(t, http.MethodGet, "/api/v1/invoice/hsn-codes", nil)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogHandler_Recent(t *testing.T) {
	logs := new(mocks.MockActivityLog)
	logs.On("Recent", mock.Anything, domain.LogKindError, 1000).
		Return([]domain.LogEntry{{IRN: "X", Type: domain.LogTypeError}}, nil)
	h := handler.NewLogHandler(logs)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/logs/recent?type=error&limit=5000", nil)
	h.Recent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp.Data, 1)
	assert.EqualValues(t, 1, resp.Meta.(map[string]any)["count"])
	logs.AssertExpectations(t)
}

func TestLogHandler_Recent_Defaults(t *testing.T) {
	logs := new(mocks.MockActivityLog)
	logs.On("Recent", mock.Anything, domain.LogKindSuccess, 100).Return(nil, nil)
	h := handler.NewLogHandler(logs)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/logs/recent", nil)
	h.Recent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestLogHandler_Recent_InvalidType(t *testing.T) {
	h := handler.NewLogHandler(new(mocks.MockActivityLog))

	c, w := jsonContext(t, http.MethodGet, "/api/v1/logs/recent?type=debug", nil)
	h.Recent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogHandler_Stats(t *testing.T) {
	logs := new(mocks.MockActivityLog)
	logs.On("Statistics", mock.Anything, "2025-10-24").
		Return(&domain.LogStatistics{Date: "2025-10-24", SuccessCount: 2, ErrorCount: 1, TotalCount: 3}, nil)
	h := handler.NewLogHandler(logs)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/logs/stats?date=2025-10-24", nil)
	h.Stats(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.EqualValues(t, 3, data["total_count"])

	c, w = jsonContext(t, http.MethodGet, "/api/v1/logs/stats?date=24-10-2025", nil)
	h.Stats(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	svc := new(mocks.MockHealthService)
	svc.On("Check", mock.Anything, true).Return(&service.HealthReport{Status: service.HealthDegraded})
	svc.On("Ready", mock.Anything).Return(errors.New("key closed")).Once()
	h := handler.NewHealthHandler(svc)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/system/health?detailed=true", nil)
	h.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "System degraded", decode(t, w).Message)

	c, w = jsonContext(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	c, w = jsonContext(t, http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
