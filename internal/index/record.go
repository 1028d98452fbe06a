// Package index records signed invoices and answers duplicate, status, and
// snapshot queries over them.
package index

import (
	"fmt"
	"strings"
	"time"

	"firsgate/internal/domain"
	"firsgate/internal/filex"
)

// SignedAtLayout is the UTC timestamp layout of signed_at and last_updated.
const SignedAtLayout = "2006-01-02T15:04:05Z"

// NewRecord builds the index record for a signing event at signedAt.
func NewRecord(irn, signedIRN string, inv domain.Invoice, encryptedPath, qrPath string, signedAt time.Time) domain.IndexRecord {
	status := domain.PaymentStatus(strings.ToUpper(inv.String("payment_status")))
	if status == "" {
		status = domain.PaymentStatusUnpaid
	}
	return domain.IndexRecord{
		IRN:           irn,
		IRNSigned:     signedIRN,
		BusinessID:    inv.String("business_id"),
		IssueDate:     inv.String("issue_date"),
		DueDate:       inv.String("due_date"),
		PaymentStatus: status,
		Signed:        true,
		SignedAt:      signedAt.UTC().Format(SignedAtLayout),
		Files: domain.RecordFiles{
			Encrypted: encryptedPath,
			QRCode:    qrPath,
		},
		Summary: inv.Summary(),
	}
}

// StatusOf builds the confirmation view of rec. A non-empty businessID must
// match the recorded one. The status is complete only while both artifact
// files are still on disk.
func StatusOf(rec *domain.IndexRecord, businessID string) (*domain.InvoiceStatus, error) {
	if businessID != "" && businessID != rec.BusinessID {
		return nil, fmt.Errorf("invoice %s does not belong to business %s: %w", rec.IRN, businessID, domain.ErrForbidden)
	}

	st := &domain.InvoiceStatus{
		IRN:           rec.IRN,
		IRNSigned:     rec.IRNSigned,
		BusinessID:    rec.BusinessID,
		Signed:        rec.Signed,
		SignedAt:      rec.SignedAt,
		PaymentStatus: rec.PaymentStatus,
		Summary:       rec.Summary,
	}
	st.Files.Encrypted = domain.FileState{Path: rec.Files.Encrypted, Exists: filex.Exists(rec.Files.Encrypted)}
	st.Files.QRCode = domain.FileState{Path: rec.Files.QRCode, Exists: filex.Exists(rec.Files.QRCode)}

	st.Status = domain.StatusPartial
	if st.Files.Encrypted.Exists && st.Files.QRCode.Exists {
		st.Status = domain.StatusComplete
	}
	return st, nil
}
