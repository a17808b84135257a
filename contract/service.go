/*
service.go - Contract lifecycle orchestration

PURPOSE:
  Ties the pure rules to a Store. Each operation reads a snapshot, asks the
  rules for the next value, and writes it. The edit window is enforced here
  as well as in the UI: this is where the mutation is persisted, so this
  check is the authoritative one.

OPERATION FLOW:
  ┌──────────┐    ┌──────────────┐    ┌──────────────┐    ┌────────────┐
  │ Store.Get│ ─▶ │ rule (Sign,  │ ─▶ │ Apply / patch │ ─▶ │Store.Update│
  └──────────┘    │ CheckUpdate) │    └──────────────┘    └────────────┘
                  └──────────────┘

  Store.Update only writes while the stored status is the one that was
  read. Of two concurrent signers, the second gets ErrAlreadyFinalized (or a
  TransitionError if the contract is not yet completed) and the first
  signature is kept.

  "now" is always a parameter. The HTTP layer is the only place that reads
  the wall clock.

EXAMPLE:
  svc := contract.NewService(store, contract.DefaultGracePeriodDays, log)
  c, err := svc.Create(ctx, draft, time.Now())
  c, err = svc.Sign(ctx, c.ID, contract.PartyEmployer, "emp-1", "sig", time.Now())

SEE ALSO:
  - lifecycle.go, editability.go, career.go: the rules
  - store.go: Store interface
*/
package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	Store           Store
	GracePeriodDays int
	Log             zerolog.Logger

	// NewID generates contract IDs. Defaults to random UUIDs.
	NewID func() string
}

func NewService(store Store, gracePeriodDays int, log zerolog.Logger) *Service {
	return &Service{
		Store:           store,
		GracePeriodDays: gracePeriodDays,
		Log:             log,
		NewID:           func() string { return uuid.NewString() },
	}
}

// Create commits a draft as a new contract in draft status.
func (s *Service) Create(ctx context.Context, draft ContractDraft, now time.Time) (Contract, error) {
	c, err := draft.Commit(s.NewID(), now)
	if err != nil {
		return Contract{}, err
	}
	if err := s.Store.Create(ctx, c); err != nil {
		return Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	s.Log.Info().
		Str("contract_id", c.ID).
		Str("employer_id", c.EmployerID).
		Msg("contract drafted")
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Contract, error) {
	return s.Store.Get(ctx, id)
}

// ListFor returns the contracts visible to one party.
func (s *Service) ListFor(ctx context.Context, party Party, partyID string) ([]Contract, error) {
	switch party {
	case PartyEmployer:
		return s.Store.ListByEmployer(ctx, partyID)
	case PartyWorker:
		return s.Store.ListByWorker(ctx, partyID)
	}
	return nil, fmt.Errorf("%w: unknown party %q", ErrInvalidInput, party)
}

// =============================================================================
// CONTENT UPDATES
// =============================================================================

// ContentPatch carries the content fields to change. Nil means unchanged.
type ContentPatch struct {
	Title            *string
	WorkplaceName    *string
	WorkplaceAddress *string
	JobDescription   *string
	StartDate        *time.Time
	EndDate          *time.Time
	Terms            *wage.ContractTerms
}

// Fields lists the contract fields the patch would change relative to c.
func (p ContentPatch) Fields(c Contract) []Field {
	var fields []Field
	if p.Title != nil && *p.Title != c.Title {
		fields = append(fields, FieldTitle)
	}
	if (p.WorkplaceName != nil && *p.WorkplaceName != c.WorkplaceName) ||
		(p.WorkplaceAddress != nil && *p.WorkplaceAddress != c.WorkplaceAddress) {
		fields = append(fields, FieldWorkplace)
	}
	if p.JobDescription != nil && *p.JobDescription != c.JobDescription {
		fields = append(fields, FieldJobDescription)
	}
	if p.StartDate != nil || p.EndDate != nil {
		fields = append(fields, FieldPeriod)
	}
	if t := p.Terms; t != nil {
		cur := c.Terms
		if t.WageType != cur.WageType || t.Wage != cur.Wage {
			fields = append(fields, FieldWage)
		}
		if t.WorkDaysPerWeek != cur.WorkDaysPerWeek || t.StartTime != cur.StartTime ||
			t.EndTime != cur.EndTime || t.BreakMinutes != cur.BreakMinutes {
			fields = append(fields, FieldSchedule)
		}
		if t.BusinessSize != cur.BusinessSize {
			fields = append(fields, FieldBusinessSize)
		}
		if !sameRates(t.InclusiveRates, cur.InclusiveRates) {
			fields = append(fields, FieldInclusiveRates)
		}
	}
	return fields
}

func sameRates(a, b *wage.InclusiveRates) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (p ContentPatch) apply(c Contract) Contract {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.WorkplaceName != nil {
		c.WorkplaceName = *p.WorkplaceName
	}
	if p.WorkplaceAddress != nil {
		c.WorkplaceAddress = *p.WorkplaceAddress
	}
	if p.JobDescription != nil {
		c.JobDescription = *p.JobDescription
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e := *p.EndDate
		c.EndDate = &e
	}
	if p.Terms != nil {
		c.Terms = *p.Terms
	}
	return c
}

// UpdateContent applies a content patch if the edit window is still open.
func (s *Service) UpdateContent(ctx context.Context, id string, patch ContentPatch, now time.Time) (Contract, error) {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return Contract{}, err
	}

	fields := patch.Fields(c)
	if len(fields) == 0 {
		return c, nil
	}
	if err := CheckUpdate(c, fields, now, s.GracePeriodDays); err != nil {
		s.Log.Warn().
			Str("contract_id", id).
			Int("grace_days", s.GracePeriodDays).
			Msg("content update refused, edit window closed")
		return Contract{}, err
	}

	updated := patch.apply(c)
	if updated.EndDate != nil && updated.EndDate.Before(updated.StartDate) {
		return Contract{}, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	if err := updated.Terms.Validate(); err != nil {
		return Contract{}, err
	}
	updated.UpdatedAt = now

	if err := s.Store.Update(ctx, updated, c.Status); err != nil {
		return Contract{}, fmt.Errorf("failed to update contract: %w", err)
	}
	s.Log.Info().
		Str("contract_id", id).
		Interface("fields", fields).
		Msg("contract content updated")
	return updated, nil
}

// =============================================================================
// SIGNING / DELETION
// =============================================================================

// Sign records actorID's signature as party and persists the transition.
// A worker signing a contract with no worker yet is bound to it.
func (s *Service) Sign(ctx context.Context, id string, party Party, actorID, signature string, now time.Time) (Contract, error) {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return Contract{}, err
	}
	if err := checkParty(c, party, actorID); err != nil {
		return Contract{}, err
	}

	t, err := Sign(c, party, signature, now)
	if err != nil {
		s.Log.Warn().
			Err(err).
			Str("contract_id", id).
			Str("party", string(party)).
			Str("status", string(c.Status)).
			Msg("signature rejected")
		return Contract{}, err
	}

	updated := t.Apply(c)
	if party == PartyWorker && updated.WorkerID == "" {
		updated.WorkerID = actorID
	}
	updated.UpdatedAt = now

	if err := s.Store.Update(ctx, updated, c.Status); err != nil {
		if errors.Is(err, ErrStaleWrite) {
			return Contract{}, s.lostSignRace(ctx, id, party)
		}
		return Contract{}, fmt.Errorf("failed to record signature: %w", err)
	}
	s.Log.Info().
		Str("contract_id", id).
		Str("party", string(party)).
		Str("from", string(t.From)).
		Str("to", string(t.To)).
		Msg("contract signed")
	return updated, nil
}

// lostSignRace reports why a signature could not be written after another
// request moved the contract first.
func (s *Service) lostSignRace(ctx context.Context, id string, party Party) error {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	s.Log.Warn().
		Str("contract_id", id).
		Str("party", string(party)).
		Str("status", string(current.Status)).
		Msg("signature lost to a concurrent update")
	if current.Status == StatusCompleted {
		return ErrAlreadyFinalized
	}
	return &TransitionError{From: current.Status, Party: party}
}

func checkParty(c Contract, party Party, actorID string) error {
	if actorID == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	switch party {
	case PartyEmployer:
		if actorID != c.EmployerID {
			return ErrNotParty
		}
	case PartyWorker:
		if c.WorkerID != "" && actorID != c.WorkerID {
			return ErrNotParty
		}
	default:
		return fmt.Errorf("%w: unknown party %q", ErrInvalidInput, party)
	}
	return nil
}

// Delete hides the contract from the actor's own view.
func (s *Service) Delete(ctx context.Context, id string, party Party, actorID string) error {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkParty(c, party, actorID); err != nil {
		return err
	}
	updated, err := SoftDelete(c, party)
	if err != nil {
		return err
	}
	if err := s.Store.Update(ctx, updated, c.Status); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	s.Log.Info().
		Str("contract_id", id).
		Str("party", string(party)).
		Msg("contract hidden")
	return nil
}

// =============================================================================
// RATINGS / CAREER
// =============================================================================

// Rate stores the worker's rating of a completed contract.
func (s *Service) Rate(ctx context.Context, r Rating, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c, err := s.Store.Get(ctx, r.ContractID)
	if err != nil {
		return err
	}
	if c.Status != StatusCompleted {
		return ErrNotRateable
	}
	if r.WorkerID != c.WorkerID {
		return ErrNotParty
	}
	r.CreatedAt = now
	if err := s.Store.SaveRating(ctx, r); err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

// Career fetches the worker's contracts and ratings in parallel, then aggregates.
func (s *Service) Career(ctx context.Context, workerID string, now time.Time) (CareerSummary, error) {
	var (
		contracts []Contract
		ratings   []Rating
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = s.Store.ListByWorker(gctx, workerID)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.Store.RatingsForWorker(gctx, workerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return CareerSummary{}, fmt.Errorf("failed to load career: %w", err)
	}

	byContract := make(map[string]Rating, len(ratings))
	for _, r := range ratings {
		byContract[r.ContractID] = r
	}
	return BuildCareer(contracts, byContract, now), nil
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// WageSummary computes the wage figures for a contract. Completed contracts
// are evaluated against the rates of their signing year.
func (s *Service) WageSummary(ctx context.Context, id string, now time.Time) (wage.Summary, error) {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return wage.Summary{}, err
	}
	return wage.Summarize(c.Terms, c.RateYear(now))
}

// EditabilityView is what the UI needs to enable or disable edit actions.
type EditabilityView struct {
	ContractID    string
	Editable      bool
	RemainingDays int
	GraceDays     int
	Status        Status
	NextSigner    *Party
}

func (s *Service) Editability(ctx context.Context, id string, now time.Time) (EditabilityView, error) {
	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return EditabilityView{}, err
	}
	v := EditabilityView{
		ContractID:    c.ID,
		Editable:      IsEditable(c.CreatedAt, now, s.GracePeriodDays),
		RemainingDays: RemainingEditDays(c.CreatedAt, now, s.GracePeriodDays),
		GraceDays:     s.GracePeriodDays,
		Status:        c.Status,
	}
	if p, err := SignerFor(c.Status); err == nil {
		v.NextSigner = &p
	}
	return v, nil
}
