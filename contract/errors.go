package contract

import (
	"errors"
	"fmt"

	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrAlreadyFinalized is returned when signing a completed contract.
	ErrAlreadyFinalized = errors.New("contract already finalized")

	// ErrInvalidTransition is returned when a party signs out of turn.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrEditWindowClosed is returned when content fields change after the grace period.
	ErrEditWindowClosed = errors.New("edit window closed")

	// ErrNotFound is returned by stores when a contract does not exist.
	ErrNotFound = errors.New("contract not found")

	// ErrInvalidInput is returned for malformed input at the boundary.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotRateable is returned when rating a contract that is not completed.
	ErrNotRateable = errors.New("only completed contracts can be rated")

	// ErrNotParty is returned when the actor is not the party they claim to be.
	ErrNotParty = errors.New("actor is not a party to this contract")

	// ErrStaleWrite is returned by stores when the stored status no longer
	// matches the status the caller read.
	ErrStaleWrite = errors.New("contract changed since it was read")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TransitionError names the rejected move.
type TransitionError struct {
	From  Status
	Party Party
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot sign a contract in status %s", e.Party, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// EditWindowClosedError lists the content fields that were refused.
type EditWindowClosedError struct {
	Fields      []Field
	ElapsedDays int
	GraceDays   int
}

func (e *EditWindowClosedError) Error() string {
	return fmt.Sprintf("content fields %v locked: %d days since creation, grace period %d",
		e.Fields, e.ElapsedDays, e.GraceDays)
}

func (e *EditWindowClosedError) Unwrap() error {
	return ErrEditWindowClosed
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConflict reports a domain-state error: the request is well formed but the
// contract's state forbids it.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyFinalized) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrEditWindowClosed) ||
		errors.Is(err, ErrNotRateable) ||
		errors.Is(err, ErrStaleWrite)
}

// IsClientError reports malformed input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || wage.IsInputError(err)
}

// IsForbidden reports an actor/party mismatch.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotParty)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
