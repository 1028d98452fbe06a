package index

import (
	"fmt"

	"firsgate/internal/config"
	"firsgate/internal/port"
)

// Open returns the index backend selected by cfg.Index.Backend.
func Open(cfg *config.Config) (port.InvoiceIndex, error) {
	switch cfg.Index.Backend {
	case config.IndexBackendJSON, "":
		return NewFileIndex(cfg.Paths.InvoiceIndex), nil
	case config.IndexBackendBolt:
		return NewBoltIndex(cfg.Index.BoltPath)
	default:
		return nil, fmt.Errorf("index.Open: unsupported backend %q", cfg.Index.Backend)
	}
}
