// Package hsn serves the HSN code catalogue.
package hsn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"firsgate/internal/domain"
)

// FileRepository loads the catalogue from a JSON array file. A successful
// load is cached for the life of the process; a missing file yields an
// empty catalogue and is retried on the next call.
type FileRepository struct {
	path string

	mu    sync.Mutex
	codes []domain.HSNCode
}

// NewFileRepository creates a FileRepository for path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// LoadAll returns every code in the catalogue file.
func (r *FileRepository) LoadAll(_ context.Context) ([]domain.HSNCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codes != nil {
		return r.codes, nil
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.HSNCode{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hsn.LoadAll: reading %s: %w", r.path, err)
	}
	var codes []domain.HSNCode
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("hsn.LoadAll: decoding %s: %w", r.path, err)
	}
	if codes == nil {
		codes = []domain.HSNCode{}
	}
	r.codes = codes
	return codes, nil
}
