package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
)

// MemoryExportPath is the pseudo-location returned by MemoryStore.Export.
// Demo and test runs must never touch disk, so the rendered document is kept
// in the store instead of a file.
const MemoryExportPath = "memory://workout_entries_export.json"

// MemoryStore implements the EntryStore contract over a process-local slice.
// No durability: the lifecycle is the process.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []internal.ExerciseEntry
	exported []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]internal.ExerciseEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entries == nil {
		return nil, nil
	}
	out := make([]internal.ExerciseEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, entries []internal.ExerciseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]internal.ExerciseEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

func (s *MemoryStore) Export(ctx context.Context, entries []internal.ExerciseEntry) (string, error) {
	if entries == nil {
		entries = []internal.ExerciseEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", newStoreError(OpExport, MemoryExportPath, err)
	}
	s.mu.Lock()
	s.exported = data
	s.mu.Unlock()
	return MemoryExportPath, nil
}

// ExportedData returns the document produced by the last Export call.
func (s *MemoryStore) ExportedData() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.exported))
	copy(out, s.exported)
	return out
}

func (s *MemoryStore) Close() error { return nil }

var _ EntryStore = (*MemoryStore)(nil)
