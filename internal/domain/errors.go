package domain

import (
	"errors"
	"fmt"
)

// Build errors surfaced by the command builder. Both are recoverable by
// re-prompting the user and never carry a stack trace to the surface.
var (
	// ErrInsufficientInformation marks an intent that cannot produce a command
	// (unknown intent, or a required package name is missing).
	ErrInsufficientInformation = errors.New("insufficient information to build a command")
	// ErrInvalidEntity marks an extracted package name containing characters
	// that are never string-concatenated into an invocation.
	ErrInvalidEntity = errors.New("invalid package name")
)

// BlockedError is returned by the safety gate when a constructed command
// matches a deny rule. It is fatal for the request; the command never runs.
type BlockedError struct {
	Reason string
	Rule   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("command blocked for safety: %s", e.Reason)
}

// AsBlocked unwraps err into a BlockedError when possible.
func AsBlocked(err error) (*BlockedError, bool) {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked, true
	}
	return nil, false
}
