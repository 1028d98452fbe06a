package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "github.com/boltdb/bolt"

	"firsgate/internal/domain"
)

const bucketName = "invoices"

// BoltIndex stores one record per IRN in an embedded bolt database. Its
// RecordSigned checks and inserts in a single write transaction, so an IRN
// can be recorded at most once.
type BoltIndex struct {
	db *bolt.DB
}

// NewBoltIndex opens (or creates) the database at path.
func NewBoltIndex(path string) (*BoltIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("index.NewBoltIndex: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("index.NewBoltIndex: opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("index.NewBoltIndex: creating bucket: %w", err)
	}
	return &BoltIndex{db: db}, nil
}

// Close releases the database file lock.
func (x *BoltIndex) Close() error {
	return x.db.Close()
}

// IsDuplicate reports whether a record for irn exists.
func (x *BoltIndex) IsDuplicate(_ context.Context, irn string) (bool, error) {
	found := false
	err := x.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bucketName)).Get([]byte(irn)) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("index.IsDuplicate: %w", err)
	}
	return found, nil
}

// RecordIfAbsent inserts rec unless its IRN is already recorded and reports
// whether it wrote.
func (x *BoltIndex) RecordIfAbsent(_ context.Context, rec *domain.IndexRecord) (bool, error) {
	created := false
	err := x.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b.Get([]byte(rec.IRN)) != nil {
			return nil
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		created = true
		return b.Put([]byte(rec.IRN), data)
	})
	if err != nil {
		return false, fmt.Errorf("index.RecordIfAbsent: %v: %w", err, domain.ErrStorage)
	}
	return created, nil
}

// RecordSigned inserts rec, failing with ErrDuplicateIRN if the IRN is taken.
func (x *BoltIndex) RecordSigned(ctx context.Context, rec *domain.IndexRecord) error {
	created, err := x.RecordIfAbsent(ctx, rec)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("index.RecordSigned: %s: %w", rec.IRN, domain.ErrDuplicateIRN)
	}
	return nil
}

// Get returns the record for irn.
func (x *BoltIndex) Get(_ context.Context, irn string) (*domain.IndexRecord, error) {
	var rec domain.IndexRecord
	err := x.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(irn))
		if v == nil {
			return domain.ErrNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("index.Get: %s: %w", irn, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index.Get: %w", err)
	}
	return &rec, nil
}

// Status returns the confirmation view of irn.
func (x *BoltIndex) Status(ctx context.Context, irn, businessID string) (*domain.InvoiceStatus, error) {
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

// Snapshot returns all records ordered by IRN.
func (x *BoltIndex) Snapshot(_ context.Context) ([]domain.IndexRecord, error) {
	items := []domain.IndexRecord{}
	err := x.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var rec domain.IndexRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			items = append(items, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("index.Snapshot: %w", err)
	}
	return items, nil
}
