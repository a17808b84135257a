package wage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/contract-engine/wage"
)

func allowanceOf(t *testing.T, r wage.InclusiveWageResult, kind wage.AllowanceKind) wage.Allowance {
	t.Helper()
	for _, a := range r.Allowances {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("allowance %s missing", kind)
	return wage.Allowance{}
}

// =============================================================================
// INCLUSIVE WAGE
// =============================================================================

func TestInclusiveWage_Under5_NotApplicable(t *testing.T) {
	r := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      10000,
		WorkDaysPerWeek: 5,
		DailyWorkHours:  hours("10"),
		BusinessSize:    wage.Under5,
		Rates:           wage.InclusiveRates{OvertimePerHour: 15000},
	})

	assert.False(t, r.Applicable)
	assert.Empty(t, r.Allowances)
	assert.Zero(t, r.FixedMonthlyTotal)
}

func TestInclusiveWage_Over5_Overtime(t *testing.T) {
	// GIVEN: 10h days, 5 days/week, 15,000 per overtime hour
	// THEN: 2h daily overtime; 2*5*4.345 = 43.45 -> 43.4 (half to even)
	rates := wage.SuggestInclusiveRates(10000, hours("10"))
	r := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      10000,
		WorkDaysPerWeek: 5,
		DailyWorkHours:  hours("10"),
		BusinessSize:    wage.Over5,
		Rates:           rates,
	})

	require.True(t, r.Applicable)
	assertDecimal(t, "2", r.DailyOvertimeHours)
	assertDecimal(t, "43.4", r.MonthlyOvertimeHours)
	assert.Equal(t, int64(651000), r.MonthlyOvertimePay)
	assert.Equal(t, int64(651000), r.FixedMonthlyTotal)
}

func TestInclusiveWage_SettlementClasses(t *testing.T) {
	r := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      10000,
		WorkDaysPerWeek: 5,
		DailyWorkHours:  hours("9"),
		BusinessSize:    wage.Over5,
		Rates: wage.InclusiveRates{
			OvertimePerHour:   15000,
			HolidayPerDay:     135000,
			AnnualLeavePerDay: 90000,
		},
	})

	require.Len(t, r.Allowances, 3)

	ot := allowanceOf(t, r, wage.AllowanceOvertime)
	assert.Equal(t, wage.SettlementIncludedInFixedPay, ot.Settlement)
	assert.Equal(t, wage.UnitPerMonth, ot.Unit)
	// 1 * 5 * 4.345 = 21.725 -> 21.7
	assertDecimal(t, "21.7", r.MonthlyOvertimeHours)
	assert.Equal(t, int64(325500), ot.Amount)

	hw := allowanceOf(t, r, wage.AllowanceHolidayWork)
	assert.Equal(t, wage.SettlementOnOccurrence, hw.Settlement)
	assert.Equal(t, wage.UnitPerDay, hw.Unit)
	assert.Equal(t, int64(135000), hw.Amount)
	assert.Empty(t, hw.Warning)

	al := allowanceOf(t, r, wage.AllowanceAnnualLeave)
	assert.Equal(t, wage.SettlementComplianceRisk, al.Settlement)
	assert.Equal(t, int64(90000), al.Amount)
	assert.NotEmpty(t, al.Warning)

	// Only the included allowance counts towards the fixed total
	assert.Equal(t, int64(325500), r.FixedMonthlyTotal)
}

func TestInclusiveWage_NoOvertimeWithinEightHours(t *testing.T) {
	r := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      10000,
		WorkDaysPerWeek: 5,
		DailyWorkHours:  hours("7.5"),
		BusinessSize:    wage.Over5,
		Rates:           wage.InclusiveRates{OvertimePerHour: 15000},
	})

	assertDecimal(t, "0", r.DailyOvertimeHours)
	assertDecimal(t, "0", r.MonthlyOvertimeHours)
	assert.Zero(t, r.MonthlyOvertimePay)
}

func TestInclusiveWage_ZeroRateIsNotSubstituted(t *testing.T) {
	r := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      10000,
		WorkDaysPerWeek: 5,
		DailyWorkHours:  hours("10"),
		BusinessSize:    wage.Over5,
	})

	assert.Zero(t, r.MonthlyOvertimePay)
	assert.Zero(t, r.FixedMonthlyTotal)
}

func TestSuggestInclusiveRates(t *testing.T) {
	rates := wage.SuggestInclusiveRates(10030, hours("8"))

	assert.Equal(t, int64(15045), rates.OvertimePerHour)
	assert.Equal(t, int64(120360), rates.HolidayPerDay)
	assert.Equal(t, int64(80240), rates.AnnualLeavePerDay)
}

func TestSettlementFor_Fixed(t *testing.T) {
	assert.Equal(t, wage.SettlementIncludedInFixedPay, wage.SettlementFor(wage.AllowanceOvertime))
	assert.Equal(t, wage.SettlementOnOccurrence, wage.SettlementFor(wage.AllowanceHolidayWork))
	assert.Equal(t, wage.SettlementComplianceRisk, wage.SettlementFor(wage.AllowanceAnnualLeave))
}

// =============================================================================
// SUMMARY
// =============================================================================

func hourlyTerms() wage.ContractTerms {
	return wage.ContractTerms{
		WageType:        wage.WageHourly,
		Wage:            10360,
		WorkDaysPerWeek: 5,
		StartTime:       wage.MustClock(9, 0),
		EndTime:         wage.MustClock(18, 0),
		BreakMinutes:    60,
		BusinessSize:    wage.Under5,
	}
}

func TestSummarize_Hourly(t *testing.T) {
	s, err := wage.Summarize(hourlyTerms(), 2026)
	require.NoError(t, err)

	assert.Equal(t, int64(10360), s.HourlyWage)
	assertDecimal(t, "8", s.DailyWorkHours)
	assert.Equal(t, int64(12432), s.Holiday.EffectiveHourlyWage)
	assert.Equal(t, int64(2160682), s.Monthly.TotalWage)
	assert.True(t, s.MinimumWage.Compliant)
	assert.Nil(t, s.Inclusive)
	assert.Nil(t, s.SuggestedRates)
}

func TestSummarize_Monthly_UsesStandardHours(t *testing.T) {
	terms := hourlyTerms()
	terms.WageType = wage.WageMonthly
	terms.Wage = 2156880

	s, err := wage.Summarize(terms, 2026)
	require.NoError(t, err)

	assert.Equal(t, int64(209), s.StandardHours)
	assert.Equal(t, int64(10320), s.HourlyWage)
	assert.True(t, s.MinimumWage.Compliant)
}

func TestSummarize_Over5_WithoutRates_OnlySuggests(t *testing.T) {
	terms := hourlyTerms()
	terms.BusinessSize = wage.Over5

	s, err := wage.Summarize(terms, 2026)
	require.NoError(t, err)

	assert.Nil(t, s.Inclusive)
	require.NotNil(t, s.SuggestedRates)
	assert.Equal(t, int64(15540), s.SuggestedRates.OvertimePerHour)
}

func TestSummarize_Over5_WithRates(t *testing.T) {
	terms := hourlyTerms()
	terms.BusinessSize = wage.Over5
	terms.EndTime = wage.MustClock(20, 0)
	terms.InclusiveRates = &wage.InclusiveRates{OvertimePerHour: 15540}

	s, err := wage.Summarize(terms, 2026)
	require.NoError(t, err)

	require.NotNil(t, s.Inclusive)
	assert.True(t, s.Inclusive.Applicable)
	assertDecimal(t, "43.4", s.Inclusive.MonthlyOvertimeHours)
}

func TestSummarize_UnknownYear(t *testing.T) {
	_, err := wage.Summarize(hourlyTerms(), 1990)
	assert.ErrorIs(t, err, wage.ErrUnknownRateYear)
}

func TestSummarize_InvalidTerms(t *testing.T) {
	terms := hourlyTerms()
	terms.WorkDaysPerWeek = 0

	_, err := wage.Summarize(terms, 2026)
	assert.ErrorIs(t, err, wage.ErrInvalidInput)
}

func TestSummarize_Idempotent(t *testing.T) {
	a, err := wage.Summarize(hourlyTerms(), 2026)
	require.NoError(t, err)
	b, err := wage.Summarize(hourlyTerms(), 2026)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
