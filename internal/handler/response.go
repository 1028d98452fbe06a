package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"firsgate/internal/domain"
	"firsgate/internal/logger"
	"firsgate/internal/middleware"
	"firsgate/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func respond(c *gin.Context, status int, resp APIResponse) {
	resp.RequestID = middleware.GetRequestID(c)
	resp.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	c.JSON(status, resp)
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// RespondWithMeta sends a 200 success response carrying metadata.
func RespondWithMeta(c *gin.Context, message string, data, meta interface{}) {
	respond(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data, Meta: meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	RespondErrorDetails(c, status, code, msg, nil)
}

// RespondErrorDetails sends an error response with structured details.
func RespondErrorDetails(c *gin.Context, status int, code, msg string, details interface{}) {
	respondErrorMeta(c, status, code, msg, details, nil)
}

func respondErrorMeta(c *gin.Context, status int, code, msg string, details, meta interface{}) {
	respond(c, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Details: details},
		Meta:    meta,
	})
}

// RespondValidation sends a 400 response listing validation findings.
func RespondValidation(c *gin.Context, message string, issues []domain.ValidationIssue) {
	respondValidationMeta(c, message, issues, nil)
}

func respondValidationMeta(c *gin.Context, message string, issues []domain.ValidationIssue, meta interface{}) {
	respond(c, http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Error:   &APIError{Code: "VALIDATION_ERROR", Message: message, Details: issues},
		Meta:    meta,
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var procErr *service.ProcessingError
	switch {
	case errors.As(err, &procErr):
		return http.StatusInternalServerError, "PROCESSING_ERROR", "Invoice processing failed"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "Invoice validation failed"
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELD", "A required field is missing or empty"
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest, "INVALID_FORMAT", "Invalid IRN format"
	case errors.Is(err, domain.ErrInvalidDownloadType):
		return http.StatusBadRequest, "INVALID_TYPE", "Invalid download type. Allowed: qr, txt, both, json"
	case errors.Is(err, domain.ErrDuplicateIRN):
		return http.StatusConflict, "DUPLICATE_IRN", "Invoice with this IRN already exists"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, "FILE_NOT_FOUND", "Requested file not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "Business ID does not match invoice"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing API key"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded"
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented"
	case errors.Is(err, domain.ErrKeyLoad),
		errors.Is(err, domain.ErrEncryption),
		errors.Is(err, domain.ErrQRGeneration),
		errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "PROCESSING_ERROR", "Invoice processing failed"
	default:
		return http.StatusInternalServerError, "EXCEPTION", "An unexpected error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation failures carry their findings; internal faults carry the raw
// error only in debug mode. Pipeline errors put their stage timings in
// meta.performance.
func HandleError(c *gin.Context, err error) {
	var meta interface{}
	var timed service.TimedError
	if errors.As(err, &timed) {
		meta = gin.H{"performance": timed.StageTimings()}
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondValidationMeta(c, "Validation failed", verr.Result.Errors, meta)
		return
	}

	status, code, msg := MapDomainError(err)
	var details interface{}
	if status >= 500 {
		log := logger.WithRequestID(middleware.GetRequestID(c))
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
		if gin.IsDebugging() {
			details = err.Error()
		}
	}
	respondErrorMeta(c, status, code, msg, details, meta)
}
