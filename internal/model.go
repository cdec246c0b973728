package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// ExerciseSet is one repetition group within an entry. Weight and Notes are
// optional; a set is immutable once persisted except through a full-entry
// replace.
type ExerciseSet struct {
	ID     string   `json:"id"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}

// ExerciseEntry is one logged exercise session. It owns its sets by value;
// entries are never partially updated, the store always serializes whole
// entries.
type ExerciseEntry struct {
	ID           string        `json:"id"`
	ExerciseName string        `json:"exercise_name"`
	Date         time.Time     `json:"date"`
	Sets         []ExerciseSet `json:"sets"`
}
