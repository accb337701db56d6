package pydb

import (
	"errors"
	"fmt"
)

var (
	// ErrTableFull is returned by Insert once the table holds MaxRows rows.
	ErrTableFull = errors.New("table full")
	// ErrPageOutOfBounds is returned for page indexes at or above MaxPages.
	ErrPageOutOfBounds = errors.New("page out of bounds")
	// ErrFlushOfUnloadedPage means the close path lost track of which pages are cached.
	ErrFlushOfUnloadedPage = errors.New("flush of unloaded page")
	// ErrCorruptRecord is returned when a slot that should hold a row does not decode.
	ErrCorruptRecord = errors.New("corrupt record")
	// ErrTruncatedRow is returned by strict opens of a file ending in a partial row.
	ErrTruncatedRow = errors.New("database file ends with a truncated row")
	// ErrTableUnusable wraps the fatal error that poisoned a table.
	ErrTableUnusable = errors.New("table unusable after fatal error")
	ErrTableClosed   = errors.New("table closed")

	ErrInvalidID     = fmt.Errorf("id must be between 1 and %d", MaxID)
	ErrEmptyField    = errors.New("username and email must not be empty")
	ErrStringTooLong = errors.New("string is too long")
)

// IOError describes a failed operation on the database file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s database file: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s database file %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err leaves the table in a state where the session
// should be ended. Capacity and record errors are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return true
	}
	return errors.Is(err, ErrPageOutOfBounds) ||
		errors.Is(err, ErrFlushOfUnloadedPage) ||
		errors.Is(err, ErrTableUnusable)
}
