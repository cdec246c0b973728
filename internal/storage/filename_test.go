package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileNameRejections(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", ErrInvalidFileName},
		{"dotdot relative", "../../etc/passwd", ErrPathTraversal},
		{"embedded dotdot", "foo..json", ErrInvalidFileName},
		{"absolute unix", "/etc/passwd", ErrPathTraversal},
		{"absolute windows style", "\\windows\\system32", ErrPathTraversal},
		{"forward slash", "subdir/entries.json", ErrPathTraversal},
		{"backslash", "subdir\\entries.json", ErrPathTraversal},
		{"current dir", ".", ErrPathTraversal},
		{"parent dir", "..", ErrPathTraversal},
		{"newline", "entries\n.json", ErrInvalidFileName},
		{"null byte", "entries\x00.json", ErrInvalidFileName},
		{"escape char", "entries\x1b.json", ErrInvalidFileName},
		{"delete char", "entries\x7f.json", ErrInvalidFileName},
		{"reserved CON", "CON", ErrInvalidFileName},
		{"reserved con lowercase", "con.json", ErrInvalidFileName},
		{"reserved NUL", "nul.json", ErrInvalidFileName},
		{"reserved COM1", "COM1.json", ErrInvalidFileName},
		{"reserved LPT9", "lpt9", ErrInvalidFileName},
		{"overlong", strings.Repeat("a", 256) + ".json", ErrInvalidFileName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFileName(tc.input)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestValidateFileNameAccepts(t *testing.T) {
	for _, name := range []string{
		"workout_entries.json",
		"entries-2026.json",
		"ENTRIES.JSON",
		"тренировки.json",
		"console.json", // not a reserved name, just a similar prefix
		strings.Repeat("a", 250) + ".json",
	} {
		assert.NoError(t, ValidateFileName(name), name)
	}
}
