/*
rates.go - Statutory rate tables

PURPOSE:
  Versioned constants that the calculators consult. Nothing here is mutated
  at runtime. A year missing from the minimum wage table is a configuration
  error for the caller: paying below minimum wage has legal consequences, so
  the lookup never falls back to a neighbouring year.

CONSTANTS:
  WeeklyHolidayThresholdHours  15    weekly hours at which paid rest is owed
  DailyHolidayCapHours         8     max hours credited for the paid rest day
  WeeksPerMonth                4.345 fixed approximation of 365/12/7
  HolidayPayMultiplier         1.2   hourly wage uplift for a 40h week
  OvertimePremium              1.5   statutory overtime/holiday premium

SEE ALSO:
  - holiday.go: threshold and cap
  - breakdown.go: WeeksPerMonth
  - inclusive.go: OvertimePremium
*/
package wage

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	WeeklyHolidayThresholdHours = decimal.NewFromInt(15)
	DailyHolidayCapHours        = decimal.NewFromInt(8)
	StatutoryDailyHours         = decimal.NewFromInt(8)

	// WeeksPerMonth is kept as a literal so historical figures reproduce.
	WeeksPerMonth = decimal.RequireFromString("4.345")

	HolidayPayMultiplier = decimal.RequireFromString("1.2")
	OvertimePremium      = decimal.RequireFromString("1.5")
)

// minimumWageTable holds the statutory minimum hourly wage (KRW) per year.
var minimumWageTable = map[int]int64{
	2020: 8590,
	2021: 8720,
	2022: 9160,
	2023: 9620,
	2024: 9860,
	2025: 10030,
	2026: 10320,
}

// MinimumWage returns the statutory minimum hourly wage for year.
func MinimumWage(year int) (int64, error) {
	w, ok := minimumWageTable[year]
	if !ok {
		return 0, &UnknownRateYearError{Year: year}
	}
	return w, nil
}

// RateYears lists the years the table covers, ascending.
func RateYears() []int {
	years := make([]int, 0, len(minimumWageTable))
	for y := range minimumWageTable {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// MinimumWageWithHolidayPay is the minimum wage uplifted by HolidayPayMultiplier.
func MinimumWageWithHolidayPay(year int) (int64, error) {
	w, err := MinimumWage(year)
	if err != nil {
		return 0, err
	}
	return roundWon(decimal.NewFromInt(w).Mul(HolidayPayMultiplier)), nil
}

// =============================================================================
// MINIMUM WAGE CHECK
// =============================================================================

type MinimumWageCheck struct {
	Year        int
	HourlyWage  int64
	MinimumWage int64
	Compliant   bool
	Shortfall   int64 // per hour, zero when compliant
}

// CheckMinimumWage compares an hourly wage with the statutory minimum for year.
func CheckMinimumWage(year int, hourlyWage int64) (MinimumWageCheck, error) {
	min, err := MinimumWage(year)
	if err != nil {
		return MinimumWageCheck{}, err
	}
	check := MinimumWageCheck{
		Year:        year,
		HourlyWage:  hourlyWage,
		MinimumWage: min,
		Compliant:   hourlyWage >= min,
	}
	if !check.Compliant {
		check.Shortfall = min - hourlyWage
	}
	return check, nil
}

// =============================================================================
// ROUNDING
// =============================================================================

// roundWon rounds half-to-even to a whole currency unit.
// Applied only when a named output field is produced.
func roundWon(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}
