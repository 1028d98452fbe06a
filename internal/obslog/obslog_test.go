package obslog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firsgate/internal/domain"
	"firsgate/internal/obslog"
	"firsgate/internal/port"
	"firsgate/mocks"
)

var fixedNow = time.Date(2025, 10, 24, 9, 30, 0, 0, time.UTC)

func newFileLogger(t *testing.T) (*obslog.Logger, *obslog.FileSink, string) {
	t.Helper()
	dir := t.TempDir()
	sink := obslog.NewFileSink(filepath.Join(dir, "logs", "success.log"), filepath.Join(dir, "logs", "error.log"))
	l := obslog.New(sink, []port.LogSink{sink}, obslog.WithClock(func() time.Time { return fixedNow }))
	return l, sink, dir
}

func sampleInvoice() domain.Invoice {
	return domain.Invoice{
		"business_id":            "9d3009c4-1f3a-4a4e-9a9e-1b2c3d4e5f60",
		"document_currency_code": "NGN",
		"accounting_supplier_party": map[string]any{
			"party": map[string]any{"party_name": map[string]any{"name": "Acme Supplies Ltd"}},
		},
		"accounting_customer_party": map[string]any{
			"party": map[string]any{"party_name": map[string]any{"name": "Globex Nigeria"}},
		},
		"legal_monetary_total": map[string]any{"payable_amount": 10750.0},
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", obslog.Truncate("short", 10))

	long := strings.Repeat("x", 1200)
	got := obslog.Truncate(long, obslog.MaxDetailedMessage)
	assert.Len(t, got, 1000)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	// "₦" is three bytes; the 497-byte budget lands inside the first one.
	msg := strings.Repeat("a", 496) + strings.Repeat("₦", 5)

	got := obslog.Truncate(msg, 500)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 500)
	assert.Equal(t, strings.Repeat("a", 496)+"...", got)

	got = obslog.Truncate("₦₦", 2)
	assert.True(t, utf8.ValidString(got))
	assert.Empty(t, got)
}

func TestLogSuccess_WritesEntry(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogSuccess(ctx, domain.SuccessEvent{
		IRN:     "INV001-9D3009-20251024",
		Invoice: sampleInvoice(),
		Files:   []string{"/data/encrypted/INV001-9D3009-20251024.1761264000.txt", "/data/qrcodes/INV001-9D3009-20251024.1761264000.png"},
	})

	entries, err := l.Recent(ctx, domain.LogKindSuccess, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, domain.LogTypeSuccess, e.Type)
	assert.Equal(t, "2025-10-24 09:30:00", e.Timestamp)
	assert.Equal(t, 200, e.HTTPCode)
	assert.Equal(t, "Acme Supplies Ltd", e.Supplier)
	assert.Equal(t, "Globex Nigeria", e.Customer)
	assert.InDelta(t, 10750.0, e.Amount, 1e-9)
	assert.Equal(t, "NGN", e.Currency)
	assert.Equal(t, "INV001-9D3009-20251024.1761264000.txt,INV001-9D3009-20251024.1761264000.png", e.Files)
}

func TestLogError_DefaultsAndTruncation(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogError(ctx, domain.ErrorEvent{
		IRN:             "INV002-9D3009-20251024",
		HTTPCode:        422,
		DetailedMessage: strings.Repeat("d", 1200),
		PublicMessage:   strings.Repeat("p", 600),
		Details:         map[string]any{"field": "irn"},
	})

	entries, err := l.Recent(ctx, domain.LogKindError, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, domain.LogTypeError, e.Type)
	assert.Equal(t, "unknown", e.ErrorType)
	assert.Equal(t, "unknown", e.Handler)
	assert.Equal(t, "N/A", e.SourceFile)
	assert.Equal(t, "N/A", e.BusinessID)
	assert.Len(t, e.DetailedMessage, 1000)
	assert.True(t, strings.HasSuffix(e.DetailedMessage, "..."))
	assert.Len(t, e.PublicMessage, 500)
	assert.JSONEq(t, `{"field":"irn"}`, string(e.ErrorDetails))
}

func TestLogError_DetailedFallsBackToPublic(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogError(ctx, domain.ErrorEvent{IRN: "X", HTTPCode: 400, PublicMessage: "Invalid IRN"})

	entries, err := l.Recent(ctx, domain.LogKindError, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Invalid IRN", entries[0].DetailedMessage)
}

func TestLogException_Format(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogException(ctx, domain.ExceptionEvent{
		IRN:     "INV003-9D3009-20251024",
		Err:     errors.New("connection refused"),
		Handler: "firs_api_submission",
		Context: map[string]any{"attempts": 4},
	})

	entries, err := l.Recent(ctx, domain.LogKindError, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, domain.LogTypeException, e.Type)
	assert.Equal(t, 500, e.HTTPCode)
	assert.Equal(t, "firs_api_submission", e.Handler)
	assert.Equal(t, obslog.DefaultPublicMessage, e.PublicMessage)
	assert.True(t, strings.HasPrefix(e.DetailedMessage, "Exception: *errors.errorString in "))
	assert.Contains(t, e.DetailedMessage, "obslog_test.go:")
	assert.Contains(t, e.DetailedMessage, "| Message: connection refused")
	assert.Contains(t, e.DetailedMessage, `| Context: {"attempts":4}`)
	assert.Contains(t, string(e.ErrorDetails), `"trace"`)
}

func TestLogException_Origin(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogException(ctx, domain.ExceptionEvent{
		IRN:    "INV003-9D3009-20251024",
		Err:    errors.New("disk full"),
		Origin: domain.CallSite{File: "/srv/firsgate/internal/service/signing_service.go", Line: 181},
	})

	entries, err := l.Recent(ctx, domain.LogKindError, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].DetailedMessage, "in /srv/firsgate/internal/service/signing_service.go:181 |")
	assert.NotContains(t, entries[0].DetailedMessage, "obslog_test.go")
	assert.Contains(t, string(entries[0].ErrorDetails), `"line":181`)
}

func TestLogger_SinkFailureIsSwallowed(t *testing.T) {
	failing := new(mocks.MockLogSink)
	failing.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	repo := new(mocks.MockLogRepository)
	repo.On("InsertSuccess", mock.Anything, mock.MatchedBy(func(e *domain.LogEntry) bool {
		return e.IRN == "INV004-9D3009-20251024"
	})).Return(nil)
	table := obslog.NewTableSink(repo)

	l := obslog.New(table, []port.LogSink{failing, table})
	assert.NotPanics(t, func() {
		l.LogSuccess(context.Background(), domain.SuccessEvent{IRN: "INV004-9D3009-20251024"})
	})

	failing.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestTableSink_RoutesByChannel(t *testing.T) {
	repo := new(mocks.MockLogRepository)
	repo.On("InsertError", mock.Anything, mock.Anything).Return(nil).Twice()
	sink := obslog.NewTableSink(repo)
	ctx := context.Background()

	require.NoError(t, sink.Record(ctx, &domain.LogEntry{Type: domain.LogTypeError}))
	require.NoError(t, sink.Record(ctx, &domain.LogEntry{Type: domain.LogTypeException}))

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "InsertSuccess", mock.Anything, mock.Anything)
}

func TestTableSink_Statistics(t *testing.T) {
	repo := new(mocks.MockLogRepository)
	repo.On("CountOn", mock.Anything, domain.LogKindSuccess, "2025-10-24").Return(7, nil)
	repo.On("CountOn", mock.Anything, domain.LogKindError, "2025-10-24").Return(2, nil)

	stats, err := obslog.NewTableSink(repo).Statistics(context.Background(), "2025-10-24")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.SuccessCount)
	assert.Equal(t, 2, stats.ErrorCount)
	assert.Equal(t, 9, stats.TotalCount)
}

func TestFileSink_RecentNewestFirst(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	for _, irn := range []string{"A", "B", "C"} {
		l.LogSuccess(ctx, domain.SuccessEvent{IRN: irn})
	}

	entries, err := l.Recent(ctx, domain.LogKindSuccess, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "C", entries[0].IRN)
	assert.Equal(t, "B", entries[1].IRN)
}

func TestFileSink_SkipsCorruptLines(t *testing.T) {
	_, sink, dir := newFileLogger(t)
	path := filepath.Join(dir, "logs", "success.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := `{"irn":"A","type":"SUCCESS"}` + "\nnot json\n" + `{"irn":"B","type":"SUCCESS"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	entries, err := sink.Recent(context.Background(), domain.LogKindSuccess, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].IRN)
}

func TestFileSink_MissingFiles(t *testing.T) {
	_, sink, _ := newFileLogger(t)

	entries, err := sink.Recent(context.Background(), domain.LogKindError, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stats, err := sink.Statistics(context.Background(), "2025-10-24")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCount)
}

func TestLogger_StatisticsDefaultsToToday(t *testing.T) {
	l, _, _ := newFileLogger(t)
	ctx := context.Background()

	l.LogSuccess(ctx, domain.SuccessEvent{IRN: "A"})
	l.LogSuccess(ctx, domain.SuccessEvent{IRN: "B"})
	l.LogError(ctx, domain.ErrorEvent{IRN: "C", HTTPCode: 400, PublicMessage: "bad"})

	stats, err := l.Statistics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-24", stats.Date)
	assert.Equal(t, 2, stats.SuccessCount)
	assert.Equal(t, 1, stats.ErrorCount)
	assert.Equal(t, 3, stats.TotalCount)

	other, err := l.Statistics(ctx, "2025-10-23")
	require.NoError(t, err)
	assert.Zero(t, other.TotalCount)
}
