// Package obslog records signing outcomes to the success and error logs.
// Every entry goes to each configured sink independently; a sink failure is
// reported on the diagnostic logger and never reaches the caller.
package obslog

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"firsgate/internal/domain"
	"firsgate/internal/logger"
	"firsgate/internal/port"
)

// Field length limits.
const (
	MaxHandler         = 100
	MaxDetailedMessage = 1000
	MaxPublicMessage   = 500
	MaxPartyName       = 100
)

// DefaultPublicMessage is shown to clients when an exception carries no
// explicit public message.
const DefaultPublicMessage = "An internal error occurred. Please try again or contact the administrator."

const (
	notAvailable    = "N/A"
	defaultCurrency = "NGN"
	unknown         = "unknown"
)

// Truncate shortens s to at most limit bytes, marking the cut with "...".
// The cut never splits a UTF-8 sequence.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:runeBoundary(s, limit)]
	}
	return s[:runeBoundary(s, limit-3)] + "..."
}

func runeBoundary(s string, cut int) int {
	if cut < 0 {
		return 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}

// Logger fans log entries out to its sinks and answers queries from its reader.
type Logger struct {
	sinks  []port.LogSink
	reader port.LogReader
	now    func() time.Time
	diag   zerolog.Logger
}

// Option customizes a Logger.
type Option func(*Logger)

// WithClock sets the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithLocation stamps entries in loc.
func WithLocation(loc *time.Location) Option {
	return func(l *Logger) {
		l.now = func() time.Time { return time.Now().In(loc) }
	}
}

// New creates a Logger that queries reader and writes to every sink.
func New(reader port.LogReader, sinks []port.LogSink, opts ...Option) *Logger {
	l := &Logger{
		sinks:  sinks,
		reader: reader,
		now:    time.Now,
		diag:   logger.WithComponent("obslog"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) record(ctx context.Context, entry *domain.LogEntry) {
	for _, sink := range l.sinks {
		if err := sink.Record(ctx, entry); err != nil {
			l.diag.Error().Err(err).
				Str("sink", fmt.Sprintf("%T", sink)).
				Str("irn", entry.IRN).
				Str("type", string(entry.Type)).
				Msg("log sink write failed")
		}
	}
}

func (l *Logger) timestamp() string {
	return l.now().Format(domain.LogTimeLayout)
}

func withInvoice(entry *domain.LogEntry, inv domain.Invoice) {
	entry.BusinessID = notAvailable
	entry.Supplier = notAvailable
	entry.Customer = notAvailable
	entry.Currency = defaultCurrency
	if inv == nil {
		return
	}
	if id := inv.String("business_id"); id != "" {
		entry.BusinessID = id
	}
	s := inv.Summary()
	entry.Supplier = Truncate(s.Supplier, MaxPartyName)
	entry.Customer = Truncate(s.Customer, MaxPartyName)
	entry.Amount = s.TotalAmount
	entry.Currency = s.Currency
}

// LogSuccess records a completed signing.
func (l *Logger) LogSuccess(ctx context.Context, ev domain.SuccessEvent) {
	code := ev.HTTPCode
	if code == 0 {
		code = 200
	}
	names := make([]string, 0, len(ev.Files))
	for _, f := range ev.Files {
		if f != "" {
			names = append(names, filepath.Base(f))
		}
	}
	entry := &domain.LogEntry{
		Timestamp: l.timestamp(),
		Type:      domain.LogTypeSuccess,
		HTTPCode:  code,
		IRN:       ev.IRN,
		Files:     strings.Join(names, ","),
	}
	withInvoice(entry, ev.Invoice)
	l.record(ctx, entry)
}

// LogError records a failure whose details the caller already knows.
func (l *Logger) LogError(ctx context.Context, ev domain.ErrorEvent) {
	detailed := ev.DetailedMessage
	if detailed == "" {
		detailed = ev.PublicMessage
	}
	entry := &domain.LogEntry{
		Timestamp:       l.timestamp(),
		Type:            domain.LogTypeError,
		ErrorType:       orDefault(ev.ErrorType, unknown),
		HTTPCode:        ev.HTTPCode,
		IRN:             ev.IRN,
		SourceFile:      orDefault(ev.SourceFile, notAvailable),
		Handler:         Truncate(orDefault(ev.Handler, unknown), MaxHandler),
		DetailedMessage: Truncate(detailed, MaxDetailedMessage),
		PublicMessage:   Truncate(ev.PublicMessage, MaxPublicMessage),
		ErrorDetails:    marshalDetails(ev.Details),
	}
	withInvoice(entry, ev.Invoice)
	l.record(ctx, entry)
}

// LogException records an unexpected failure. The detailed message names the
// error type, the fault site (ev.Origin, else the caller), and the error
// text; the stack is kept in the error details.
func (l *Logger) LogException(ctx context.Context, ev domain.ExceptionEvent) {
	file, line := ev.Origin.File, ev.Origin.Line
	if file == "" {
		var ok bool
		if _, file, line, ok = runtime.Caller(1); !ok {
			file, line = unknown, 0
		}
	}
	msg := ""
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	detailed := fmt.Sprintf("Exception: %T in %s:%d | Message: %s", ev.Err, file, line, msg)
	if len(ev.Context) > 0 {
		if ctxJSON, err := json.Marshal(ev.Context); err == nil {
			detailed += " | Context: " + string(ctxJSON)
		}
	}

	code := ev.HTTPCode
	if code == 0 {
		code = 500
	}
	entry := &domain.LogEntry{
		Timestamp:       l.timestamp(),
		Type:            domain.LogTypeException,
		ErrorType:       "exception",
		HTTPCode:        code,
		IRN:             ev.IRN,
		SourceFile:      orDefault(ev.SourceFile, notAvailable),
		Handler:         Truncate(orDefault(ev.Handler, unknown), MaxHandler),
		DetailedMessage: Truncate(detailed, MaxDetailedMessage),
		PublicMessage:   Truncate(orDefault(ev.PublicMessage, DefaultPublicMessage), MaxPublicMessage),
		ErrorDetails: marshalDetails(map[string]any{
			"exception_type": fmt.Sprintf("%T", ev.Err),
			"file":           file,
			"line":           line,
			"trace":          string(debug.Stack()),
			"additional":     ev.Context,
		}),
	}
	withInvoice(entry, nil)
	l.record(ctx, entry)
}

// Recent returns up to limit entries of kind, newest first.
func (l *Logger) Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	return l.reader.Recent(ctx, kind, limit)
}

// Statistics counts entries logged on date (YYYY-MM-DD); empty means today.
func (l *Logger) Statistics(ctx context.Context, date string) (*domain.LogStatistics, error) {
	if date == "" {
		date = l.now().Format("2006-01-02")
	}
	return l.reader.Statistics(ctx, date)
}

func marshalDetails(v any) json.RawMessage {
	switch t := v.(type) {
	case nil:
		return nil
	case json.RawMessage:
		if len(t) == 0 || !json.Valid(t) {
			return nil
		}
		return t
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
