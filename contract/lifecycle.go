/*
lifecycle.go - Contract lifecycle state machine

STATES:
  ┌───────┐  employer signs  ┌─────────┐  worker signs   ┌───────────┐
  │ draft │ ───────────────▶ │ pending │ ──────────────▶ │ completed │
  └───────┘                  └─────────┘  (signed_at)    └───────────┘

  Forward only. No state is skipped and no signature is removed. Signing a
  completed contract fails with ErrAlreadyFinalized; any other out-of-turn
  signature fails with a TransitionError.

  Transitions are computed, not applied: Sign returns a Transition that the
  persistence layer writes. Apply is provided for callers that want the
  resulting snapshot.
*/
package contract

import (
	"fmt"
	"strings"
	"time"
)

// Transition is a proposed lifecycle move with the fields it sets.
type Transition struct {
	From              Status
	To                Status
	Party             Party
	EmployerSignature *string
	WorkerSignature   *string
	SignedAt          *time.Time
}

// Sign computes the transition produced by party signing c at now.
func Sign(c Contract, party Party, signature string, now time.Time) (Transition, error) {
	if c.IsFinal() {
		return Transition{}, ErrAlreadyFinalized
	}
	if strings.TrimSpace(signature) == "" {
		return Transition{}, fmt.Errorf("%w: signature is empty", ErrInvalidInput)
	}

	t := Transition{
		From:              c.Status,
		Party:             party,
		EmployerSignature: c.EmployerSignature,
		WorkerSignature:   c.WorkerSignature,
		SignedAt:          c.SignedAt,
	}

	switch {
	case c.Status == StatusDraft && party == PartyEmployer:
		t.To = StatusPending
		t.EmployerSignature = &signature
	case c.Status == StatusPending && party == PartyWorker:
		signedAt := now
		t.To = StatusCompleted
		t.WorkerSignature = &signature
		t.SignedAt = &signedAt
	default:
		return Transition{}, &TransitionError{From: c.Status, Party: party}
	}

	return t, nil
}

// Apply returns c with the transition's fields set.
func (t Transition) Apply(c Contract) Contract {
	c.Status = t.To
	c.EmployerSignature = t.EmployerSignature
	c.WorkerSignature = t.WorkerSignature
	c.SignedAt = t.SignedAt
	return c
}

// NextStatus returns the only status reachable from s.
func NextStatus(s Status) (Status, error) {
	switch s {
	case StatusDraft:
		return StatusPending, nil
	case StatusPending:
		return StatusCompleted, nil
	case StatusCompleted:
		return "", ErrAlreadyFinalized
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// CanTransition reports whether to is directly reachable from from.
func CanTransition(from, to Status) bool {
	next, err := NextStatus(from)
	return err == nil && next == to
}

// SignerFor returns the party whose signature moves s forward.
func SignerFor(s Status) (Party, error) {
	switch s {
	case StatusDraft:
		return PartyEmployer, nil
	case StatusPending:
		return PartyWorker, nil
	case StatusCompleted:
		return "", ErrAlreadyFinalized
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}
