package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"firsgate/internal/domain"
	"firsgate/internal/port"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// LogHandler exposes the success and error activity logs.
type LogHandler struct {
	logs port.LogReader
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logs port.LogReader) *LogHandler {
	return &LogHandler{logs: logs}
}

// Recent handles GET /api/v1/logs/recent
// @Summary Recent log entries
// @Description Return the newest entries of the success or error log
// @Tags logs
// @Produce json
// @Param type query string false "Log channel" Enums(success, error) default(success)
// @Param limit query int false "Maximum entries (max 1000)" default(100)
// @Success 200 {object} Response{data=[]domain.LogEntry} "Logs retrieved"
// @Failure 400 {object} ErrorResponseBody "Invalid log type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /logs/recent [get]
func (h *LogHandler) Recent(c *gin.Context) {
	kind := domain.LogKind(c.DefaultQuery("type", string(domain.LogKindSuccess)))
	if kind != domain.LogKindSuccess && kind != domain.LogKindError {
		RespondError(c, http.StatusBadRequest, "INVALID_TYPE", "Log type must be 'success' or 'error'")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLogLimit)))
	if err != nil || limit < 1 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	entries, err := h.logs.Recent(c.Request.Context(), kind, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	RespondWithMeta(c, "Logs retrieved", entries, gin.H{
		"type":  kind,
		"count": len(entries),
		"limit": limit,
	})
}

// Stats handles GET /api/v1/logs/stats
// @Summary Log statistics
// @Description Count success and error entries for one day
// @Tags logs
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} Response{data=domain.LogStatistics} "Statistics retrieved"
// @Failure 400 {object} ErrorResponseBody "Invalid date"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security APIKeyAuth
// @Router /logs/stats [get]
func (h *LogHandler) Stats(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
			return
		}
	}
	stats, err := h.logs.Statistics(c.Request.Context(), date)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, "Statistics retrieved", stats)
}
