package storage

import (
	"context"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
)

// EntryStore persists the full workout entry sequence. The sequence as a whole
// is the unit of storage: Save replaces everything, Load returns everything.
type EntryStore interface {
	// Load returns all persisted entries in stored order. A store with no
	// persisted data yet returns (nil, nil).
	Load(ctx context.Context) ([]internal.ExerciseEntry, error)

	// Save durably replaces the full entry sequence in one visible step; a
	// concurrent reader never observes a half-written state.
	Save(ctx context.Context, entries []internal.ExerciseEntry) error

	// Export writes a shareable pretty-printed JSON copy of the given entries
	// and returns its location. The primary store data is not touched.
	Export(ctx context.Context, entries []internal.ExerciseEntry) (string, error)

	Close() error
}
