package storage

import (
	"fmt"
	"path/filepath"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/config"
)

// NewEntryStore selects the store variant from config: file-backed for normal
// runs, in-memory for demo/UI-testing runs, postgres when configured.
func NewEntryStore(cfg *config.Config, logger internal.Logger) (EntryStore, error) {
	switch cfg.StorageBackend {
	case "file":
		return NewFileStore(cfg.DataDir, cfg.EntriesFile, cfg.ExportFile, logger)
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		// The export copy is file-backed even here, so the name gets the same
		// construction-time validation as the file store's.
		if err := ValidateFileName(cfg.ExportFile); err != nil {
			return nil, err
		}
		exportPath := filepath.Join(cfg.DataDir, cfg.ExportFile)
		return NewPostgresStore(cfg.PostgresDSN, exportPath, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
