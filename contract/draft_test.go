package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

func completeDraft() contract.ContractDraft {
	return contract.NewDraft().
		WithParties("emp-1", "").
		WithWorkplace("Corner Cafe", "12 Main St", "barista").
		WithPeriod(date(2025, 4, 1), nil).
		WithSchedule(5, wage.MustClock(9, 0), wage.MustClock(18, 0), 60).
		WithWage(wage.WageHourly, 10030).
		WithBusinessSize(wage.Under5)
}

func TestDraft_WithMethodsDoNotMutate(t *testing.T) {
	base := completeDraft()
	changed := base.WithWage(wage.WageMonthly, 2_156_880)

	assert.Equal(t, wage.WageHourly, base.Terms().WageType)
	assert.Equal(t, int64(10030), base.Terms().Wage)
	assert.Equal(t, wage.WageMonthly, changed.Terms().WageType)
}

func TestDraft_InclusiveRatesAreCopied(t *testing.T) {
	rates := &wage.InclusiveRates{OvertimePerHour: 15045}
	d := completeDraft().WithInclusiveRates(rates)

	rates.OvertimePerHour = 1
	require.NotNil(t, d.Terms().InclusiveRates)
	assert.Equal(t, int64(15045), d.Terms().InclusiveRates.OvertimePerHour)
}

func TestDraft_CommitDefaultsTitleToWorkplace(t *testing.T) {
	now := date(2025, 3, 28)

	c, err := completeDraft().Commit("c-9", now)
	require.NoError(t, err)

	assert.Equal(t, "c-9", c.ID)
	assert.Equal(t, contract.StatusDraft, c.Status)
	assert.Equal(t, "Corner Cafe", c.Title)
	assert.True(t, c.CreatedAt.Equal(now))
	assert.Empty(t, c.WorkerID)
}

func TestDraft_ValidateReportsMissingSteps(t *testing.T) {
	end := date(2025, 3, 1)
	tests := []struct {
		name  string
		draft contract.ContractDraft
	}{
		{"no employer", completeDraft().WithParties("", "")},
		{"no workplace", completeDraft().WithWorkplace("", "", "")},
		{"no start", completeDraft().WithPeriod(time.Time{}, nil)},
		{"end before start", completeDraft().WithPeriod(date(2025, 4, 1), &end)},
		{"no wage", completeDraft().WithWage(wage.WageHourly, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Commit("c-1", date(2025, 3, 28))
			assert.Error(t, err)
			assert.True(t, contract.IsClientError(err), "expected client error, got %v", err)
		})
	}
}
