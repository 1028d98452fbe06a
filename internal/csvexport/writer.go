package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"firsgate/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (14 columns).
var columns = []string{
	"IRN",
	"Signed IRN",
	"Business ID",
	"Issue Date",
	"Due Date",
	"Payment Status",
	"Signed",
	"Signed At",
	"Supplier",
	"Customer",
	"Total Amount",
	"Currency",
	"Encrypted File",
	"QR Code File",
}

// Writer wraps csv.Writer for exporting invoice index records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts index records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.IndexRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Export writes a header, every record, and flushes. When bom is set the
// output starts with a UTF-8 byte order mark.
func Export(out io.Writer, records []domain.IndexRecord, bom bool) error {
	if bom {
		if _, err := out.Write(BOM); err != nil {
			return fmt.Errorf("csvexport.Export: %w", err)
		}
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("csvexport.Export: %w", err)
	}
	if err := w.WriteRecords(records); err != nil {
		return fmt.Errorf("csvexport.Export: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvexport.Export: %w", err)
	}
	return nil
}

func recordToRow(r *domain.IndexRecord) []string {
	return []string{
		r.IRN,
		r.IRNSigned,
		r.BusinessID,
		r.IssueDate,
		r.DueDate,
		string(r.PaymentStatus),
		formatBool(r.Signed),
		r.SignedAt,
		r.Summary.Supplier,
		r.Summary.Customer,
		formatMoney(r.Summary.TotalAmount),
		r.Summary.Currency,
		r.Files.Encrypted,
		r.Files.QRCode,
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters other than alphanumerics, hyphen,
// and underscore with _, collapses runs of underscores, and truncates to 100
// chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.csv for now.
func BuildFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), now.Format("2006-01-02"))
}
