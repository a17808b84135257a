package wage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func hours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, hours(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// =============================================================================
// WEEKLY HOLIDAY PAY
// =============================================================================

func TestWeeklyHolidayPay_FullTime(t *testing.T) {
	// GIVEN: 10,360/h, 5 days of 8 hours
	// THEN: eligible, 8 holiday hours, 82,880 per week, 2,072 per hour
	r := wage.CalculateWeeklyHolidayPay(10360, 5, hours("8"))

	assert.True(t, r.IsEligible)
	assertDecimal(t, "40", r.WeeklyWorkHours)
	assertDecimal(t, "8", r.HolidayHours)
	assert.Equal(t, int64(10360), r.BaseHourlyWage)
	assert.Equal(t, int64(82880), r.HolidayPayPerWeek)
	assert.Equal(t, int64(2072), r.HolidayPayPerHour)
	assert.Equal(t, int64(12432), r.EffectiveHourlyWage)
}

func TestWeeklyHolidayPay_PartTimeBelowThreshold(t *testing.T) {
	r := wage.CalculateWeeklyHolidayPay(10360, 2, hours("4"))

	assert.False(t, r.IsEligible)
	assertDecimal(t, "8", r.WeeklyWorkHours)
	assertDecimal(t, "0", r.HolidayHours)
	assert.Zero(t, r.HolidayPayPerWeek)
	assert.Zero(t, r.HolidayPayPerHour)
	assert.Equal(t, int64(10360), r.EffectiveHourlyWage)
}

func TestWeeklyHolidayPay_ThresholdIsInclusive(t *testing.T) {
	cases := []struct {
		days  int
		daily string
	}{
		{3, "5"},
		{5, "3"},
		{2, "7.5"},
		{6, "2.5"},
		{4, "3.75"},
	}
	for _, tc := range cases {
		r := wage.CalculateWeeklyHolidayPay(10000, tc.days, hours(tc.daily))
		assert.True(t, r.IsEligible, "%d days x %s hours", tc.days, tc.daily)
		assertDecimal(t, "15", r.WeeklyWorkHours)
	}
}

func TestWeeklyHolidayPay_BelowThreshold_NeverEligible(t *testing.T) {
	// Property: weekly < 15 -> ineligible and effective == base
	for days := 1; days <= 7; days++ {
		for minutes := 0; minutes <= 24*60; minutes += 15 {
			daily := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
			weekly := daily.Mul(decimal.NewFromInt(int64(days)))
			if !weekly.LessThan(hours("15")) {
				continue
			}
			r := wage.CalculateWeeklyHolidayPay(9860, days, daily)
			if r.IsEligible {
				t.Fatalf("%d days x %s hours should not be eligible", days, daily)
			}
			if r.EffectiveHourlyWage != r.BaseHourlyWage {
				t.Fatalf("effective wage %d != base %d when ineligible", r.EffectiveHourlyWage, r.BaseHourlyWage)
			}
		}
	}
}

func TestWeeklyHolidayPay_DailyHoursCappedAtEight(t *testing.T) {
	r := wage.CalculateWeeklyHolidayPay(10000, 5, hours("9"))

	require.True(t, r.IsEligible)
	assertDecimal(t, "8", r.HolidayHours)
	assert.Equal(t, int64(80000), r.HolidayPayPerWeek)
	// 80,000 / 45 = 1,777.77...
	assert.Equal(t, int64(1778), r.HolidayPayPerHour)
	assert.Equal(t, int64(11778), r.EffectiveHourlyWage)
}

func TestWeeklyHolidayPay_RoundsHalfToEven(t *testing.T) {
	// GIVEN: 3 days x 5h at 10,001/h -> per week 50,005, per hour 3,333.666...
	r := wage.CalculateWeeklyHolidayPay(10001, 3, hours("5"))
	assert.Equal(t, int64(50005), r.HolidayPayPerWeek)
	assert.Equal(t, int64(3334), r.HolidayPayPerHour)

	// GIVEN: 4 days x 4.5h at 1,001/h -> per week 4,504.5, rounds to even 4,504
	r = wage.CalculateWeeklyHolidayPay(1001, 4, hours("4.5"))
	assert.Equal(t, int64(4504), r.HolidayPayPerWeek)
}

func TestWeeklyHolidayPay_Idempotent(t *testing.T) {
	a := wage.CalculateWeeklyHolidayPay(10360, 5, hours("7.5"))
	b := wage.CalculateWeeklyHolidayPay(10360, 5, hours("7.5"))
	assert.Equal(t, a, b)
}

func TestWeeklyHolidayPay_EffectiveIsBasePlusPerHour(t *testing.T) {
	tests := []struct {
		name      string
		wage      int64
		days      int
		perHour   int64
		effective int64
	}{
		// 82,888 / 16 = 5,180.5 -> 5,180
		{name: "2 days, half rounds down to even", wage: 10361, days: 2, perHour: 5180, effective: 15541},
		// 82,920 / 48 = 1,727.5 -> 1,728
		{name: "6 days, half rounds up to even", wage: 10365, days: 6, perHour: 1728, effective: 12093},
		{name: "5 days, exact", wage: 10360, days: 5, perHour: 2072, effective: 12432},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := wage.CalculateWeeklyHolidayPay(tt.wage, tt.days, hours("8"))

			require.True(t, r.IsEligible)
			assert.Equal(t, tt.perHour, r.HolidayPayPerHour)
			assert.Equal(t, tt.effective, r.EffectiveHourlyWage)
			if r.EffectiveHourlyWage != r.BaseHourlyWage+r.HolidayPayPerHour {
				t.Errorf("effective %d != base %d + per hour %d", r.EffectiveHourlyWage, r.BaseHourlyWage, r.HolidayPayPerHour)
			}
		})
	}
}
