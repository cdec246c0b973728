package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

const maxFileNameLen = 255

// Windows device names are reserved regardless of extension; writing to one
// can hang or hit the device instead of the filesystem.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateFileName rejects names that could escape the base directory or
// break on a target filesystem. It returns ErrPathTraversal for anything that
// resolves outside the directory and ErrInvalidFileName for the rest. The
// name never reaches the filesystem layer when an error is returned.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFileName)
	}
	if len(name) > maxFileNameLen {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidFileName, maxFileNameLen)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, name)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: path separator in %q", ErrPathTraversal, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}
	// With separators already excluded an embedded ".." cannot climb
	// anywhere, but names like "foo..json" trip enough tooling to be worth
	// rejecting outright.
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character in name", ErrInvalidFileName)
		}
	}
	base := strings.ToUpper(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if _, reserved := reservedNames[base]; reserved {
		return fmt.Errorf("%w: reserved device name %q", ErrInvalidFileName, name)
	}
	if filepath.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return nil
}
