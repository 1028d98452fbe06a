// Package irn parses, signs, and sanitizes invoice reference numbers.
package irn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"firsgate/internal/domain"
)

// Pattern is the accepted IRN format: PFNL + 4 alphanumerics, a 6 character
// service block, and an 8 digit date stamp.
var Pattern = regexp.MustCompile(`^PFNL[A-Z0-9]{4}-[A-Z0-9]{6}-\d{8}$`)

var (
	disallowed    = regexp.MustCompile(`[^A-Za-z0-9.\-]`)
	traversalSeqs = []string{"..", "./", `\`}
)

// Valid reports whether s is a well-formed IRN.
func Valid(s string) bool {
	return Pattern.MatchString(s)
}

// Extract returns the trimmed IRN from an invoice document.
func Extract(inv domain.Invoice) (string, error) {
	raw, ok := inv.Lookup("irn")
	if !ok {
		return "", fmt.Errorf("irn.Extract: irn: %w", domain.ErrMissingField)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("irn.Extract: irn must be a string: %w", domain.ErrInvalidFormat)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("irn.Extract: irn: %w", domain.ErrMissingField)
	}
	if !Valid(s) {
		return "", fmt.Errorf("irn.Extract: %q: %w", s, domain.ErrInvalidFormat)
	}
	return s, nil
}

// FormatSigned derives the signed IRN for a signing event at ts.
func FormatSigned(irn string, ts time.Time) string {
	return irn + "." + strconv.FormatInt(ts.Unix(), 10)
}

// Sanitize makes s safe to use as a file name. It keeps only [A-Za-z0-9.-]
// and removes traversal sequences until none remain, so it is idempotent.
func Sanitize(s string) string {
	out := disallowed.ReplaceAllString(s, "")
	for {
		prev := out
		for _, seq := range traversalSeqs {
			out = strings.ReplaceAll(out, seq, "")
		}
		if out == prev {
			return out
		}
	}
}

// DateFolder returns the YYYY-MM bucket for an ISO issue date, or the
// current month when the date cannot be parsed.
func DateFolder(issueDate string, now time.Time) string {
	if t, err := time.Parse("2006-01-02", issueDate); err == nil {
		return t.Format("2006-01")
	}
	return now.Format("2006-01")
}
