package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/tilekeys/internal/input/key"
)

// Errors returned by registry operations.
var (
	// ErrConflict indicates a chord is already bound.
	ErrConflict = errors.New("chord already bound")

	// ErrTooManyGroups indicates more groups than digit keys.
	ErrTooManyGroups = errors.New("too many groups for digit bindings")

	// ErrInvalidBinding indicates a binding without a chord or with a
	// malformed action.
	ErrInvalidBinding = errors.New("invalid binding")
)

// ConflictError reports two bindings competing for one chord.
type ConflictError struct {
	// Chord is the contested chord.
	Chord key.Chord

	// Existing is the binding that holds the chord (or that appeared
	// first in the same batch).
	Existing Binding

	// Incoming is the binding that was rejected.
	Incoming Binding

	// InBatch is true when both bindings came from the same batch.
	InBatch bool
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	where := "already bound to"
	if e.InBatch {
		where = "bound twice in batch, first to"
	}
	return fmt.Sprintf("chord %s %s %s (rejected %s)", e.Chord, where, e.Existing.Action, e.Incoming.Action)
}

// Is implements error matching for ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RangeError reports a group list longer than the digit row.
type RangeError struct {
	// Count is the number of groups requested.
	Count int

	// Max is the number of representable groups.
	Max int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%d groups requested, only %d fit on digit keys", e.Count, e.Max)
}

// Is implements error matching for RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrTooManyGroups
}
