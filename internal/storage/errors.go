package storage

import (
	"errors"
	"fmt"
)

// Operation classifies which store operation failed.
type Operation string

const (
	OpLoad   Operation = "load"
	OpSave   Operation = "save"
	OpExport Operation = "export"
)

// Construction-time validation failures. No store is created when one of
// these is returned.
var (
	ErrInvalidFileName         = errors.New("invalid file name")
	ErrPathTraversal           = errors.New("path traversal attempt")
	ErrInsufficientPermissions = errors.New("insufficient directory permissions")
)

// StoreError wraps an operational failure with its classification. Callers
// match with errors.As and inspect Op, or unwrap to reach the cause.
type StoreError struct {
	Op   Operation
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func newStoreError(op Operation, path string, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Err: err}
}
