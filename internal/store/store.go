package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row carries the requested id or key.
var ErrNotFound = errors.New("record not found")

// ErrStorage matches every failure of the underlying database, so callers
// can tell "the store is broken" apart from "the record is absent".
var ErrStorage = errors.New("storage failure")

// Error describes a failed operation against one table.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrStorage for every *Error.
func (e *Error) Is(target error) bool { return target == ErrStorage }

// IsNotFound reports whether err (or any error in its chain) is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
