package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/storage"
)

var validate = validator.New()

var ErrEntryNotFound = errors.New("entry not found")

type SetRequest struct {
	Reps   int      `json:"reps" validate:"gte=0"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Notes  *string  `json:"notes,omitempty"`
}

type EntryRequest struct {
	ExerciseName string       `json:"exercise_name" validate:"required"`
	Date         time.Time    `json:"date"`
	Sets         []SetRequest `json:"sets" validate:"required,min=1,dive"`
}

func ValidateEntryRequest(req *EntryRequest) error {
	return validate.Struct(req)
}

// WorkoutService holds the authoritative in-memory entry sequence and forwards
// every mutation to the store. Mutations are synchronous, one atomic save per
// mutation; a failed save keeps the in-memory state correct and the next
// mutation's save is the de facto retry.
type WorkoutService struct {
	store   storage.EntryStore
	logger  internal.Logger
	mu      sync.RWMutex
	entries []internal.ExerciseEntry
}

// NewWorkoutService loads the sequence once from the store. A load failure is
// absorbed: the service logs it and starts with an empty history, so a corrupt
// or unreadable file never takes the process down. The next successful save
// writes a fresh valid file.
func NewWorkoutService(store storage.EntryStore, logger internal.Logger) *WorkoutService {
	entries, err := store.Load(context.Background())
	if err != nil {
		logger.Warnf("service: starting with empty history, load failed: %v", err)
		entries = nil
	}
	return &WorkoutService{store: store, logger: logger, entries: entries}
}

// AddEntry appends a new entry built from an already-validated request.
// Callers run ValidateEntryRequest first, the way the handlers do.
func (s *WorkoutService) AddEntry(ctx context.Context, req *EntryRequest) (*internal.ExerciseEntry, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	entry := internal.ExerciseEntry{
		ID:           uuid.NewString(),
		ExerciseName: req.ExerciseName,
		Date:         date,
		Sets:         make([]internal.ExerciseSet, 0, len(req.Sets)),
	}
	for _, set := range req.Sets {
		entry.Sets = append(entry.Sets, internal.ExerciseSet{
			ID:     uuid.NewString(),
			Reps:   set.Reps,
			Weight: set.Weight,
			Notes:  set.Notes,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if err := s.store.Save(ctx, s.entries); err != nil {
		s.logger.Errorf("service: save after add failed: %v", err)
		return &entry, err
	}
	return &entry, nil
}

func (s *WorkoutService) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrEntryNotFound
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	if err := s.store.Save(ctx, s.entries); err != nil {
		s.logger.Errorf("service: save after delete failed: %v", err)
		return err
	}
	return nil
}

// DeleteAt removes the entries at the given offsets in one mutation. Offsets
// outside the sequence are ignored.
func (s *WorkoutService) DeleteAt(ctx context.Context, offsets []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[int]struct{}, len(offsets))
	for _, off := range offsets {
		if off >= 0 && off < len(s.entries) {
			doomed[off] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	kept := s.entries[:0]
	for i, e := range s.entries {
		if _, gone := doomed[i]; !gone {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	if err := s.store.Save(ctx, s.entries); err != nil {
		s.logger.Errorf("service: save after delete failed: %v", err)
		return err
	}
	return nil
}

// Entries returns a copy of the sequence in insertion order.
func (s *WorkoutService) Entries() []internal.ExerciseEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.ExerciseEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *WorkoutService) ExportJSON(ctx context.Context) (string, error) {
	s.mu.RLock()
	entries := make([]internal.ExerciseEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()
	return s.store.Export(ctx, entries)
}

type ExerciseSummary struct {
	ExerciseName string  `json:"exercise_name"`
	Entries      int     `json:"entries"`
	Sets         int     `json:"sets"`
	TotalReps    int     `json:"total_reps"`
	Volume       float64 `json:"volume"`
}

type WorkoutStats struct {
	TotalEntries int               `json:"total_entries"`
	TotalSets    int               `json:"total_sets"`
	TotalVolume  float64           `json:"total_volume"`
	ByExercise   []ExerciseSummary `json:"by_exercise"`
}

func (s *WorkoutService) Stats() WorkoutStats {
	return CalculateWorkoutStats(s.Entries())
}

// CalculateWorkoutStats aggregates per-exercise totals. Volume is
// reps x weight summed over weighted sets; bodyweight sets count reps only.
func CalculateWorkoutStats(entries []internal.ExerciseEntry) WorkoutStats {
	stats := WorkoutStats{TotalEntries: len(entries)}
	byName := map[string]*ExerciseSummary{}

	for _, e := range entries {
		summary := byName[e.ExerciseName]
		if summary == nil {
			summary = &ExerciseSummary{ExerciseName: e.ExerciseName}
			byName[e.ExerciseName] = summary
		}
		summary.Entries++
		for _, set := range e.Sets {
			stats.TotalSets++
			summary.Sets++
			summary.TotalReps += set.Reps
			if set.Weight != nil {
				vol := float64(set.Reps) * *set.Weight
				summary.Volume += vol
				stats.TotalVolume += vol
			}
		}
	}

	for _, summary := range byName {
		stats.ByExercise = append(stats.ByExercise, *summary)
	}
	sort.Slice(stats.ByExercise, func(i, j int) bool {
		return stats.ByExercise[i].ExerciseName < stats.ByExercise[j].ExerciseName
	})
	return stats
}
