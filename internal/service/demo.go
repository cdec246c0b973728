package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal/storage"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string  { return &v }

// SeedDemoEntries writes a small recognizable history into the store so demo
// runs start with data. It does nothing if the store already holds entries.
func SeedDemoEntries(ctx context.Context, store storage.EntryStore) error {
	existing, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	entries := []internal.ExerciseEntry{
		{
			ID:           uuid.NewString(),
			ExerciseName: "Bench Press",
			Date:         now.AddDate(0, 0, -3),
			Sets: []internal.ExerciseSet{
				{ID: uuid.NewString(), Reps: 10, Weight: ptrFloat(135)},
				{ID: uuid.NewString(), Reps: 8, Weight: ptrFloat(155)},
				{ID: uuid.NewString(), Reps: 6, Weight: ptrFloat(175), Notes: ptrString("felt heavy")},
			},
		},
		{
			ID:           uuid.NewString(),
			ExerciseName: "Squat",
			Date:         now.AddDate(0, 0, -2),
			Sets: []internal.ExerciseSet{
				{ID: uuid.NewString(), Reps: 5, Weight: ptrFloat(225)},
				{ID: uuid.NewString(), Reps: 5, Weight: ptrFloat(225)},
				{ID: uuid.NewString(), Reps: 5, Weight: ptrFloat(225)},
			},
		},
		{
			ID:           uuid.NewString(),
			ExerciseName: "Pull Up",
			Date:         now.AddDate(0, 0, -1),
			Sets: []internal.ExerciseSet{
				{ID: uuid.NewString(), Reps: 12},
				{ID: uuid.NewString(), Reps: 10},
			},
		},
	}
	return store.Save(ctx, entries)
}
