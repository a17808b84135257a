/*
holiday.go - Weekly holiday pay (주휴수당)

PURPOSE:
  Decides whether a worker is owed the statutory weekly paid rest day and
  how much it is worth.

ALGORITHM:
  1. weekly   = workDaysPerWeek * dailyWorkHours
  2. eligible = weekly >= 15            (inclusive, no tolerance)
  3. not eligible -> zero allowance, effective wage == base wage
  4. holidayHours = min(dailyWorkHours, 8)
  5. perWeek      = holidayHours * hourlyWage
  6. perHour      = perWeek / weekly
  7. effective    = hourlyWage + round(perHour)

  perWeek and perHour are rounded half-to-even from unrounded values.
  The effective wage adds the rounded per-hour figure, so it always equals
  BaseHourlyWage + HolidayPayPerHour.

EXAMPLE:
  r := CalculateWeeklyHolidayPay(10360, 5, decimal.NewFromInt(8))
  // r.HolidayPayPerWeek == 82880, r.HolidayPayPerHour == 2072
  // r.EffectiveHourlyWage == 12432
*/
package wage

import "github.com/shopspring/decimal"

// WeeklyHolidayPayResult is the outcome of the weekly holiday pay calculation.
type WeeklyHolidayPayResult struct {
	IsEligible          bool
	WeeklyWorkHours     decimal.Decimal
	DailyWorkHours      decimal.Decimal
	HolidayHours        decimal.Decimal // capped at DailyHolidayCapHours
	BaseHourlyWage      int64
	HolidayPayPerHour   int64
	HolidayPayPerWeek   int64
	EffectiveHourlyWage int64

	// rawPerWeek is the unrounded weekly allowance, reused by periodized
	// breakdowns so that monthly figures are rounded once.
	rawPerWeek decimal.Decimal
}

// CalculateWeeklyHolidayPay computes eligibility and size of the weekly paid rest allowance.
func CalculateWeeklyHolidayPay(hourlyWage int64, workDaysPerWeek int, dailyWorkHours decimal.Decimal) WeeklyHolidayPayResult {
	weekly := dailyWorkHours.Mul(decimal.NewFromInt(int64(workDaysPerWeek)))

	result := WeeklyHolidayPayResult{
		WeeklyWorkHours:     weekly,
		DailyWorkHours:      dailyWorkHours,
		HolidayHours:        decimal.Zero,
		BaseHourlyWage:      hourlyWage,
		EffectiveHourlyWage: hourlyWage,
		rawPerWeek:          decimal.Zero,
	}

	if weekly.LessThan(WeeklyHolidayThresholdHours) {
		return result
	}

	holidayHours := decimal.Min(dailyWorkHours, DailyHolidayCapHours)
	wage := decimal.NewFromInt(hourlyWage)
	perWeek := holidayHours.Mul(wage)
	perHour := perWeek.Div(weekly)

	result.IsEligible = true
	result.HolidayHours = holidayHours
	result.rawPerWeek = perWeek
	result.HolidayPayPerWeek = roundWon(perWeek)
	result.HolidayPayPerHour = roundWon(perHour)
	result.EffectiveHourlyWage = hourlyWage + result.HolidayPayPerHour
	return result
}
