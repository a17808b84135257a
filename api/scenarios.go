/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	contracts for demos. Each scenario drafts contracts through the contract
	service, backdates them where the edit window matters, and signs them
	into the lifecycle state the scenario demonstrates.

AVAILABLE SCENARIOS:

	full-time-cafe:        Completed hourly contract, eligible for holiday pay
	short-hours:           Part-time draft under 15 weekly hours (no holiday pay)
	overnight-shift:       Shift crossing midnight, awaiting the worker's signature
	inclusive-over5:       Worksite of five or more with inclusive wage rates
	career-history:        Several completed and rated contracts for one worker
	edit-window-expired:   Draft created past the edit window

HOW SCENARIOS WORK:
 1. Reset the store (clear all data)
 2. Build drafts via the contract draft builder
 3. Commit each draft with a backdated creation time
 4. Sign as employer and/or worker
 5. Optionally add ratings

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "career-history"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, now)
 3. Add it to the loaders map

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Contract handlers
  - contract/draft.go: Draft builder
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

const (
	demoEmployer = "emp-001"
	demoWorker   = "wrk-001"
)

var scenarios = []ScenarioDTO{
	{
		ID:          "full-time-cafe",
		Name:        "Full-Time Cafe",
		Description: "Hourly barista contract, 5 days x 8h, signed by both parties",
	},
	{
		ID:          "short-hours",
		Name:        "Short Hours",
		Description: "Two 5.5h days per week, below the weekly holiday pay threshold",
	},
	{
		ID:          "overnight-shift",
		Name:        "Overnight Shift",
		Description: "22:00-06:00 convenience store shift, waiting for the worker",
	},
	{
		ID:          "inclusive-over5",
		Name:        "Inclusive Wage",
		Description: "10h days at a worksite of five or more, with inclusive wage rates",
	},
	{
		ID:          "career-history",
		Name:        "Career History",
		Description: "Three completed and rated contracts for one worker",
	},
	{
		ID:          "edit-window-expired",
		Name:        "Edit Window Expired",
		Description: "Draft created ten days ago; content is locked but signing works",
	},
}

type scenarioLoader func(h *Handler, ctx context.Context, now time.Time) error

var loaders = map[string]scenarioLoader{
	"full-time-cafe":      (*Handler).loadFullTimeCafeScenario,
	"short-hours":         (*Handler).loadShortHoursScenario,
	"overnight-shift":     (*Handler).loadOvernightShiftScenario,
	"inclusive-over5":     (*Handler).loadInclusiveScenario,
	"career-history":      (*Handler).loadCareerHistoryScenario,
	"edit-window-expired": (*Handler).loadEditWindowExpiredScenario,
}

// resetter is implemented by every store that can be cleared for demos.
type resetter interface {
	Reset(ctx context.Context) error
}

// ListScenarios returns all available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the store and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	load, ok := loaders[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	store, ok := h.Service.Store.(resetter)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Store does not support reset", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	if err := store.Reset(ctx); err != nil {
		h.writeDomainError(w, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""

	if err := load(h, ctx, h.Now()); err != nil {
		h.Log.Error().Err(err).Str("scenario", req.ScenarioID).Msg("scenario load failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	h.currentScenario = req.ScenarioID

	h.Log.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadFullTimeCafeScenario(ctx context.Context, now time.Time) error {
	created := now.AddDate(0, 0, -30)
	draft := contract.NewDraft().
		WithParties(demoEmployer, "").
		WithTitle("Barista (full time)").
		WithWorkplace("Corner Cafe", "12 Main St", "Espresso bar and register").
		WithPeriod(dateOf(created.AddDate(0, 0, 3)), nil).
		WithSchedule(5, wage.MustClock(9, 0), wage.MustClock(18, 0), 60).
		WithWage(wage.WageHourly, 10030).
		WithBusinessSize(wage.Under5)

	_, err := h.seedContract(ctx, draft, created, demoWorker, created.Add(time.Hour), now.AddDate(0, 0, -1))
	return err
}

func (h *Handler) loadShortHoursScenario(ctx context.Context, now time.Time) error {
	created := now.AddDate(0, 0, -1)
	end := dateOf(now.AddDate(0, 3, 0))
	draft := contract.NewDraft().
		WithParties(demoEmployer, demoWorker).
		WithWorkplace("Book Corner", "3 River Rd", "Shelving and register").
		WithPeriod(dateOf(now), &end).
		WithSchedule(2, wage.MustClock(10, 0), wage.MustClock(16, 0), 30).
		WithWage(wage.WageHourly, 10030).
		WithBusinessSize(wage.Under5)

	_, err := h.seedContract(ctx, draft, created, demoWorker)
	return err
}

func (h *Handler) loadOvernightShiftScenario(ctx context.Context, now time.Time) error {
	created := now.AddDate(0, 0, -2)
	draft := contract.NewDraft().
		WithParties(demoEmployer, "").
		WithTitle("Night clerk").
		WithWorkplace("24h Mart", "88 Station Sq", "Register and restocking").
		WithPeriod(dateOf(now.AddDate(0, 0, 7)), nil).
		WithSchedule(4, wage.MustClock(22, 0), wage.MustClock(6, 0), 60).
		WithWage(wage.WageHourly, 10500).
		WithBusinessSize(wage.Under5)

	_, err := h.seedContract(ctx, draft, created, "", created.Add(time.Hour))
	return err
}

func (h *Handler) loadInclusiveScenario(ctx context.Context, now time.Time) error {
	const hourly = 10030
	daily := wage.ElapsedWorkHours(wage.MustClock(8, 0), wage.MustClock(19, 0), 60)
	rates := wage.SuggestInclusiveRates(hourly, daily)

	created := now.AddDate(0, 0, -3)
	draft := contract.NewDraft().
		WithParties(demoEmployer, "").
		WithTitle("Kitchen staff").
		WithWorkplace("Harbor Bistro", "5 Pier Ave", "Prep and line cook").
		WithPeriod(dateOf(now.AddDate(0, 0, 14)), nil).
		WithSchedule(5, wage.MustClock(8, 0), wage.MustClock(19, 0), 60).
		WithWage(wage.WageHourly, hourly).
		WithBusinessSize(wage.Over5).
		WithInclusiveRates(&rates)

	_, err := h.seedContract(ctx, draft, created, "")
	return err
}

func (h *Handler) loadCareerHistoryScenario(ctx context.Context, now time.Time) error {
	history := []struct {
		workplace string
		job       string
		start     time.Time
		months    int
		score     int
		comment   string
	}{
		{"Corner Cafe", "Barista", now.AddDate(-2, 0, 0), 14, 5, "Friendly team"},
		{"Book Corner", "Shelving", now.AddDate(0, -8, 0), 3, 4, ""},
		{"24h Mart", "Night clerk", now.AddDate(0, -4, 0), 2, 3, "Long nights"},
	}

	for _, item := range history {
		end := dateOf(item.start.AddDate(0, item.months, 0))
		draft := contract.NewDraft().
			WithParties(demoEmployer, "").
			WithWorkplace(item.workplace, "", item.job).
			WithPeriod(dateOf(item.start), &end).
			WithSchedule(5, wage.MustClock(9, 0), wage.MustClock(18, 0), 60).
			WithWage(wage.WageHourly, 10030).
			WithBusinessSize(wage.Under5)

		created := item.start.AddDate(0, 0, -5)
		c, err := h.seedContract(ctx, draft, created, demoWorker, created.Add(time.Hour), end.Add(18*time.Hour))
		if err != nil {
			return err
		}

		rating := contract.Rating{
			ContractID: c.ID,
			WorkerID:   demoWorker,
			Score:      item.score,
			Comment:    item.comment,
		}
		if err := h.Service.Rate(ctx, rating, end); err != nil {
			return fmt.Errorf("rate %s: %w", c.ID, err)
		}
	}
	return nil
}

func (h *Handler) loadEditWindowExpiredScenario(ctx context.Context, now time.Time) error {
	created := now.AddDate(0, 0, -10)
	draft := contract.NewDraft().
		WithParties(demoEmployer, "").
		WithTitle("Weekend helper").
		WithWorkplace("Green Grocer", "41 Market St", "Stocking produce").
		WithPeriod(dateOf(now.AddDate(0, 0, 2)), nil).
		WithSchedule(2, wage.MustClock(9, 0), wage.MustClock(17, 0), 60).
		WithWage(wage.WageHourly, 10030).
		WithBusinessSize(wage.Under5)

	_, err := h.seedContract(ctx, draft, created, "")
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

// seedContract commits draft at created, then signs once per entry of
// signedAt: employer first, then the worker as workerID.
func (h *Handler) seedContract(ctx context.Context, draft contract.ContractDraft, created time.Time, workerID string, signedAt ...time.Time) (contract.Contract, error) {
	c, err := h.Service.Create(ctx, draft, created)
	if err != nil {
		return contract.Contract{}, err
	}

	for i, at := range signedAt {
		party, actor, sig := contract.PartyEmployer, c.EmployerID, "signed:"+c.EmployerID
		if i == 1 {
			party, actor, sig = contract.PartyWorker, workerID, "signed:"+workerID
		}
		signed, err := h.Service.Sign(ctx, c.ID, party, actor, sig, at)
		if err != nil {
			return contract.Contract{}, fmt.Errorf("sign %s as %s: %w", c.ID, party, err)
		}
		c = signed
	}
	return c, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
