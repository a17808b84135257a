package wage

import "github.com/shopspring/decimal"

// =============================================================================
// WAGE BREAKDOWN - Periodized compensation summary
// =============================================================================

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// WageBreakdown is a compensation summary for one period.
// TotalWage is always BaseWage + WeeklyHolidayPay.
type WageBreakdown struct {
	Period           Period
	BaseWage         int64
	WeeklyHolidayPay int64
	TotalWage        int64
	WeeklyWorkHours  decimal.Decimal
	IsEligible       bool
}

// MonthlyBreakdown periodizes with the fixed WeeksPerMonth factor.
func MonthlyBreakdown(hourlyWage int64, workDaysPerWeek int, dailyWorkHours decimal.Decimal) WageBreakdown {
	return MonthlyBreakdownWith(hourlyWage, workDaysPerWeek, dailyWorkHours, WeeksPerMonth)
}

// MonthlyBreakdownWith periodizes with an explicit weeks-per-month factor.
func MonthlyBreakdownWith(hourlyWage int64, workDaysPerWeek int, dailyWorkHours, weeksPerMonth decimal.Decimal) WageBreakdown {
	b := breakdown(hourlyWage, workDaysPerWeek, dailyWorkHours, weeksPerMonth)
	b.Period = PeriodMonthly
	return b
}

// WeeklyBreakdown is the same summary for a single week.
func WeeklyBreakdown(hourlyWage int64, workDaysPerWeek int, dailyWorkHours decimal.Decimal) WageBreakdown {
	b := breakdown(hourlyWage, workDaysPerWeek, dailyWorkHours, decimal.NewFromInt(1))
	b.Period = PeriodWeekly
	return b
}

func breakdown(hourlyWage int64, workDaysPerWeek int, dailyWorkHours, factor decimal.Decimal) WageBreakdown {
	h := CalculateWeeklyHolidayPay(hourlyWage, workDaysPerWeek, dailyWorkHours)

	base := roundWon(decimal.NewFromInt(hourlyWage).Mul(h.WeeklyWorkHours).Mul(factor))
	var holiday int64
	if h.IsEligible {
		holiday = roundWon(h.rawPerWeek.Mul(factor))
	}

	return WageBreakdown{
		BaseWage:         base,
		WeeklyHolidayPay: holiday,
		TotalWage:        base + holiday,
		WeeklyWorkHours:  h.WeeklyWorkHours,
		IsEligible:       h.IsEligible,
	}
}

// =============================================================================
// MONTHLY STANDARD HOURS - For monthly-wage contracts
// =============================================================================

// MonthlyStandardHours is the paid hours a monthly wage covers:
// (weekly work hours + paid holiday hours) * WeeksPerMonth, rounded.
// A 40-hour week gives 209.
func MonthlyStandardHours(weeklyWorkHours, holidayHours decimal.Decimal) int64 {
	return roundWon(weeklyWorkHours.Add(holidayHours).Mul(WeeksPerMonth))
}

// HourlyEquivalent converts a monthly wage to an hourly figure over standardHours.
func HourlyEquivalent(monthlyWage, standardHours int64) int64 {
	if standardHours <= 0 {
		return 0
	}
	return roundWon(decimal.NewFromInt(monthlyWage).Div(decimal.NewFromInt(standardHours)))
}
