package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"firsgate/internal/domain"
	"firsgate/internal/port"
)

// Recovery turns a panic into a JSON 500 response and records it as an
// exception in the activity log.
func Recovery(activity port.ActivityLog) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		activity.LogException(c.Request.Context(), domain.ExceptionEvent{
			IRN:     "unknown",
			Err:     fmt.Errorf("panic: %v", recovered),
			Handler: "http_recovery",
			Context: map[string]any{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": GetRequestID(c),
			},
		})
		abort(c, http.StatusInternalServerError, "EXCEPTION", "An unexpected error occurred")
	})
}
