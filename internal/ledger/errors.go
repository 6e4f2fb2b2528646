package ledger

import (
	"errors"
	"fmt"
)

// ErrEmptyLedger is returned by ExportRows when there is nothing to export.
var ErrEmptyLedger = errors.New("no entries to export")

// ValidationError reports malformed or out-of-range input. The ledger is
// never mutated when one is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// StorageUnavailableError reports that a mutation could not be persisted.
// In-memory state is still valid; it just won't survive a restart.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable (%s): %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageUnavailable reports whether err is a StorageUnavailableError.
func IsStorageUnavailable(err error) bool {
	var se *StorageUnavailableError
	return errors.As(err, &se)
}
