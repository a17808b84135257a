/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario loads cleanly and sets up the expected state:
	- Contracts land in the lifecycle state the scenario describes
	- Backdated drafts are locked by the edit window
	- Career history aggregates the seeded ratings

These tests double as integration tests of the contract service.
*/
package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) loadScenario(id string) {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": id})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
}

func (ts *testServer) employerContracts() []ContractDTO {
	ts.t.Helper()
	rec := ts.do(http.MethodGet, "/api/employers/"+demoEmployer+"/contracts", nil)
	require.Equal(ts.t, http.StatusOK, rec.Code)
	return decode[[]ContractDTO](ts.t, rec)
}

func TestScenarios_AllLoad(t *testing.T) {
	ts := newTestServer(t)

	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			ts.loadScenario(s.ID)

			rec := ts.do(http.MethodGet, "/api/scenarios/current", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, s.ID, decode[ScenarioDTO](t, rec).ID)
			assert.NotEmpty(t, ts.employerContracts())
		})
	}
}

func TestScenarios_LoadResetsStore(t *testing.T) {
	ts := newTestServer(t)

	ts.loadScenario("career-history")
	require.Len(t, ts.employerContracts(), 3)

	ts.loadScenario("full-time-cafe")
	assert.Len(t, ts.employerContracts(), 1)
}

func TestScenario_FullTimeCafe(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("full-time-cafe")

	contracts := ts.employerContracts()
	require.Len(t, contracts, 1)
	c := contracts[0]
	assert.Equal(t, "completed", c.Status)
	assert.Equal(t, demoWorker, c.WorkerID)
	assert.False(t, c.Editable)

	rec := ts.do(http.MethodGet, "/api/contracts/"+c.ID+"/wage", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[WageSummaryDTO](t, rec).Holiday.IsEligible)
}

func TestScenario_ShortHoursIsIneligible(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("short-hours")

	c := ts.employerContracts()[0]
	assert.Equal(t, "draft", c.Status)

	rec := ts.do(http.MethodGet, "/api/contracts/"+c.ID+"/wage", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s := decode[WageSummaryDTO](t, rec)
	assert.False(t, s.Holiday.IsEligible)
	assert.Zero(t, s.Holiday.HolidayPayPerWeek)
}

func TestScenario_OvernightShiftAwaitsWorker(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("overnight-shift")

	c := ts.employerContracts()[0]
	assert.Equal(t, "pending", c.Status)
	assert.Equal(t, "22:00", c.Terms.StartTime)
	assert.Equal(t, "06:00", c.Terms.EndTime)

	rec := ts.do(http.MethodGet, "/api/contracts/"+c.ID+"/editability", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[EditabilityDTO](t, rec)
	require.NotNil(t, v.NextSigner)
	assert.Equal(t, "worker", *v.NextSigner)
}

func TestScenario_InclusiveOver5(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("inclusive-over5")

	c := ts.employerContracts()[0]
	require.NotNil(t, c.Terms.InclusiveRates)

	rec := ts.do(http.MethodGet, "/api/contracts/"+c.ID+"/wage", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s := decode[WageSummaryDTO](t, rec)
	require.NotNil(t, s.Inclusive)
	assert.True(t, s.Inclusive.Applicable)
	assert.NotEmpty(t, s.Inclusive.Allowances)
}

func TestScenario_CareerHistory(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("career-history")

	rec := ts.do(http.MethodGet, "/api/workers/"+demoWorker+"/career", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	career := decode[CareerDTO](t, rec)
	assert.Len(t, career.Items, 3)
	assert.Equal(t, 3, career.RatedCount)
	assert.InDelta(t, 4.0, career.AverageRating, 0.001)
	assert.Positive(t, career.TotalDays)
}

func TestScenario_EditWindowExpired(t *testing.T) {
	ts := newTestServer(t)
	ts.loadScenario("edit-window-expired")

	c := ts.employerContracts()[0]
	assert.False(t, c.Editable)
	assert.Equal(t, 0, c.RemainingEditDays)

	rec := ts.do(http.MethodPatch, "/api/contracts/"+c.ID, map[string]any{"title": "Changed"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.sign(c.ID, "employer", demoEmployer)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoadScenario_Unknown(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestListScenarios(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ScenarioDTO](t, rec), len(scenarios))
}
