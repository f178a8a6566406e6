package store

import "fmt"

// ErrValidation indicates an attempt that violates the record invariants.
// The append it belongs to did not happen.
type ErrValidation struct {
	Field  string
	Reason string
	Err    error
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid attempt: %s", e.Reason)
	}
	return fmt.Sprintf("invalid attempt: %s: %s", e.Field, e.Reason)
}

func (e *ErrValidation) Unwrap() error { return e.Err }

// ErrStorageRead indicates the durable log could not be read or is corrupt.
type ErrStorageRead struct {
	Path string
	Err  error
}

func (e *ErrStorageRead) Error() string {
	return fmt.Sprintf("read results %s: %v", e.Path, e.Err)
}

func (e *ErrStorageRead) Unwrap() error { return e.Err }

// ErrStorageWrite indicates the durable log could not be written.
// The log is left in its last valid state.
type ErrStorageWrite struct {
	Path string
	Err  error
}

func (e *ErrStorageWrite) Error() string {
	return fmt.Sprintf("write results %s: %v", e.Path, e.Err)
}

func (e *ErrStorageWrite) Unwrap() error { return e.Err }
