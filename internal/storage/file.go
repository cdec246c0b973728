package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
)

// FileStore keeps the whole entry sequence in a single pretty-printed JSON
// file under a base directory. Every Save rewrites the file atomically
// (write-to-temp, fsync, rename), so readers never observe partial data.
type FileStore struct {
	entriesPath string
	exportPath  string
	mu          sync.Mutex
	logger      internal.Logger
}

// NewFileStore validates the file names and the base directory before any
// store exists. Validation failures (traversal, reserved names, unwritable
// directory) are surfaced to the caller and nothing is constructed.
func NewFileStore(baseDir, entriesFile, exportFile string, logger internal.Logger) (*FileStore, error) {
	if err := ValidateFileName(entriesFile); err != nil {
		return nil, err
	}
	if err := ValidateFileName(exportFile); err != nil {
		return nil, err
	}
	if err := ensureWritableDir(baseDir); err != nil {
		return nil, err
	}
	return &FileStore{
		entriesPath: filepath.Join(baseDir, entriesFile),
		exportPath:  filepath.Join(baseDir, exportFile),
		logger:      logger,
	}, nil
}

func ensureWritableDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty base directory", ErrInvalidFileName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientPermissions, err)
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientPermissions, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// EntriesPath reports where the primary store file lives.
func (s *FileStore) EntriesPath() string { return s.entriesPath }

func (s *FileStore) Load(ctx context.Context) ([]internal.ExerciseEntry, error) {
	file, err := os.Open(s.entriesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, newStoreError(OpLoad, s.entriesPath, err)
	}
	defer file.Close()

	var entries []internal.ExerciseEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		// The undecodable file stays on disk untouched; the caller decides
		// whether to start empty.
		return nil, newStoreError(OpLoad, s.entriesPath, err)
	}
	return entries, nil
}

func (s *FileStore) Save(ctx context.Context, entries []internal.ExerciseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []internal.ExerciseEntry{}
	}
	if err := atomicWriteJSON(s.entriesPath, entries); err != nil {
		return newStoreError(OpSave, s.entriesPath, err)
	}
	return nil
}

func (s *FileStore) Export(ctx context.Context, entries []internal.ExerciseEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []internal.ExerciseEntry{}
	}
	if err := atomicWriteJSON(s.exportPath, entries); err != nil {
		return "", newStoreError(OpExport, s.exportPath, err)
	}
	s.logger.Infof("storage: exported %d entries to %s", len(entries), s.exportPath)
	return s.exportPath, nil
}

func (s *FileStore) Close() error { return nil }

func atomicWriteJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

var _ EntryStore = (*FileStore)(nil)
