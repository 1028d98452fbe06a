package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"firsgate/internal/domain"
	"firsgate/internal/filex"
)

// FileIndex keeps every record in one JSON document that is rewritten
// wholesale on each insert.
//
// IsDuplicate and RecordSigned are separate operations, so two concurrent
// requests for the same IRN can both pass the duplicate check and both be
// recorded. Use BoltIndex where that matters.
type FileIndex struct {
	path string
	now  func() time.Time
}

// NewFileIndex creates a FileIndex backed by the file at path.
func NewFileIndex(path string) *FileIndex {
	return &FileIndex{path: path, now: time.Now}
}

func (x *FileIndex) load() (*domain.IndexFile, error) {
	data, err := os.ReadFile(x.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.IndexFile{Invoices: []domain.IndexRecord{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", x.path, err)
	}
	if len(data) == 0 {
		return &domain.IndexFile{Invoices: []domain.IndexRecord{}}, nil
	}
	var f domain.IndexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", x.path, err)
	}
	if f.Invoices == nil {
		f.Invoices = []domain.IndexRecord{}
	}
	return &f, nil
}

// IsDuplicate reports whether a record for irn exists.
func (x *FileIndex) IsDuplicate(_ context.Context, irn string) (bool, error) {
	f, err := x.load()
	if err != nil {
		return false, fmt.Errorf("index.IsDuplicate: %w", err)
	}
	for i := range f.Invoices {
		if f.Invoices[i].IRN == irn {
			return true, nil
		}
	}
	return false, nil
}

// RecordSigned appends rec and rewrites the index file under its lock.
func (x *FileIndex) RecordSigned(_ context.Context, rec *domain.IndexRecord) error {
	if err := os.MkdirAll(filepath.Dir(x.path), 0o755); err != nil {
		return fmt.Errorf("index.RecordSigned: %v: %w", err, domain.ErrStorage)
	}
	err := filex.WithLock(filex.LockPath(x.path), func() error {
		f, err := x.load()
		if err != nil {
			return err
		}
		f.Invoices = append(f.Invoices, *rec)
		f.TotalCount = len(f.Invoices)
		f.LastUpdated = x.now().UTC().Format(SignedAtLayout)

		data, err := json.MarshalIndent(f, "", "    ")
		if err != nil {
			return fmt.Errorf("encoding index: %w", err)
		}
		return filex.WriteAtomic(x.path, data)
	})
	if err != nil {
		return fmt.Errorf("index.RecordSigned: %v: %w", err, domain.ErrStorage)
	}
	return nil
}

// Get returns the first record for irn.
func (x *FileIndex) Get(_ context.Context, irn string) (*domain.IndexRecord, error) {
	f, err := x.load()
	if err != nil {
		return nil, fmt.Errorf("index.Get: %w", err)
	}
	for i := range f.Invoices {
		if f.Invoices[i].IRN == irn {
			rec := f.Invoices[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("index.Get: %s: %w", irn, domain.ErrNotFound)
}

// Status returns the confirmation view of irn.
func (x *FileIndex) Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error) {
	rec, err := x.Get(ctx, irn)
	if err != nil {
		return nil, err
	}
	st, err := StatusOf(rec, businessID)
	if err != nil {
		return nil, fmt.Errorf("index.Status: %w", err)
	}
	return st, nil
}

// Snapshot returns all records in insertion order.
func (x *FileIndex) Snapshot(_ context.Context) ([]domain.IndexRecord, error) {
	f, err := x.load()
	if err != nil {
		return nil, fmt.Errorf("index.Snapshot: %w", err)
	}
	return f.Invoices, nil
}

// Close is a no-op.
func (x *FileIndex) Close() error { return nil }
