/*
Package contract implements the labor contract lifecycle around the wage engine.

PURPOSE:
  A contract is drafted by the employer, signed by the employer, then
  countersigned by the worker. This package owns the rules for that
  progression, the time-boxed window in which contract content may still
  change, and the career view built from completed contracts.

KEY CONCEPTS IN THIS FILE (contract.go):
  - Contract: snapshot of a persisted contract record
  - Status: draft -> pending -> completed
  - Party: employer or worker
  - Rating: a worker's rating attached to a completed contract

DESIGN PRINCIPLES:
  1. Pure core: lifecycle, editability and career functions take "now" as an
     argument and never read the system clock
  2. Snapshots in, values out: nothing here persists a Contract; the Service
     hands proposed changes to a Store
  3. Signatures only move forward: once set they are never cleared

SEE ALSO:
  - lifecycle.go: state machine
  - editability.go: edit window
  - career.go: career aggregation
  - service.go: orchestration against a Store
*/
package contract

import (
	"fmt"
	"time"

	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"

	// statusLegacySigned is accepted when reading old records and means pending.
	statusLegacySigned = "signed"
)

// ParseStatus reads a persisted status. The legacy "signed" value maps to pending.
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusDraft):
		return StatusDraft, nil
	case string(StatusPending), statusLegacySigned:
		return StatusPending, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// StoredNames lists every persisted value that ParseStatus reads as s.
func (s Status) StoredNames() []string {
	if s == StatusPending {
		return []string{string(StatusPending), statusLegacySigned}
	}
	return []string{string(s)}
}

// =============================================================================
// PARTY
// =============================================================================

type Party string

const (
	PartyEmployer Party = "employer"
	PartyWorker   Party = "worker"
)

func ParseParty(s string) (Party, error) {
	switch Party(s) {
	case PartyEmployer, PartyWorker:
		return Party(s), nil
	}
	return "", fmt.Errorf("%w: unknown party %q", ErrInvalidInput, s)
}

// =============================================================================
// CONTRACT
// =============================================================================

// Contract is a snapshot of a persisted contract record.
type Contract struct {
	ID         string
	EmployerID string
	WorkerID   string
	Status     Status

	Title            string
	WorkplaceName    string
	WorkplaceAddress string
	JobDescription   string
	StartDate        time.Time
	EndDate          *time.Time

	Terms wage.ContractTerms

	EmployerSignature *string
	WorkerSignature   *string
	SignedAt          *time.Time

	DeletedByEmployer bool
	DeletedByWorker   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinal reports whether no further transition is possible.
func (c Contract) IsFinal() bool {
	return c.Status == StatusCompleted
}

// VisibleTo reports whether the party has not removed the contract from its own view.
func (c Contract) VisibleTo(p Party) bool {
	switch p {
	case PartyEmployer:
		return !c.DeletedByEmployer
	case PartyWorker:
		return !c.DeletedByWorker
	}
	return false
}

// SoftDelete hides the contract for one party. The other party's view is untouched.
func SoftDelete(c Contract, p Party) (Contract, error) {
	switch p {
	case PartyEmployer:
		c.DeletedByEmployer = true
	case PartyWorker:
		c.DeletedByWorker = true
	default:
		return c, fmt.Errorf("%w: unknown party %q", ErrInvalidInput, p)
	}
	return c, nil
}

// RateYear picks the year whose statutory tables apply to the wage figures:
// the signing year once completed, otherwise the year of now.
func (c Contract) RateYear(now time.Time) int {
	if c.Status == StatusCompleted && c.SignedAt != nil {
		return c.SignedAt.Year()
	}
	return now.Year()
}

// =============================================================================
// RATING
// =============================================================================

// Rating is a worker's rating of a completed contract.
type Rating struct {
	ContractID string
	WorkerID   string
	Score      int // 1..5
	Comment    string
	CreatedAt  time.Time
}

func (r Rating) Validate() error {
	if r.ContractID == "" {
		return fmt.Errorf("%w: rating needs a contract", ErrInvalidInput)
	}
	if r.Score < 1 || r.Score > 5 {
		return fmt.Errorf("%w: score must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}
