package wage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary is the displayable wage figure set for one contract.
type Summary struct {
	WageType       WageType
	ContractWage   int64 // as written in the contract
	HourlyWage     int64 // the contract wage, or its hourly equivalent
	StandardHours  int64 // monthly standard hours, monthly contracts only
	DailyWorkHours decimal.Decimal
	Holiday        WeeklyHolidayPayResult
	Weekly         WageBreakdown
	Monthly        WageBreakdown
	MinimumWage    MinimumWageCheck
	Inclusive      *InclusiveWageResult
	SuggestedRates *InclusiveRates // pre-fill only, set when rates are missing
}

// Summarize computes all wage figures for terms against the minimum wage of year.
func Summarize(terms ContractTerms, year int) (Summary, error) {
	if err := terms.Validate(); err != nil {
		return Summary{}, err
	}

	daily := terms.DailyWorkHours()
	s := Summary{
		WageType:       terms.WageType,
		ContractWage:   terms.Wage,
		DailyWorkHours: daily,
	}

	switch terms.WageType {
	case WageHourly:
		s.HourlyWage = terms.Wage
	case WageMonthly:
		// Hours do not depend on the wage, so any rate gives the same shape.
		shape := CalculateWeeklyHolidayPay(0, terms.WorkDaysPerWeek, daily)
		s.StandardHours = MonthlyStandardHours(shape.WeeklyWorkHours, shape.HolidayHours)
		s.HourlyWage = HourlyEquivalent(terms.Wage, s.StandardHours)
	default:
		panic(fmt.Sprintf("wage: unknown wage type %d", terms.WageType))
	}

	check, err := CheckMinimumWage(year, s.HourlyWage)
	if err != nil {
		return Summary{}, err
	}
	s.MinimumWage = check

	s.Holiday = CalculateWeeklyHolidayPay(s.HourlyWage, terms.WorkDaysPerWeek, daily)
	s.Weekly = WeeklyBreakdown(s.HourlyWage, terms.WorkDaysPerWeek, daily)
	s.Monthly = MonthlyBreakdown(s.HourlyWage, terms.WorkDaysPerWeek, daily)

	switch terms.BusinessSize {
	case Under5:
	case Over5:
		if terms.InclusiveRates == nil {
			suggested := SuggestInclusiveRates(s.HourlyWage, daily)
			s.SuggestedRates = &suggested
			break
		}
		inc := CalculateInclusiveWage(InclusiveWageInput{
			HourlyWage:      s.HourlyWage,
			WorkDaysPerWeek: terms.WorkDaysPerWeek,
			DailyWorkHours:  daily,
			BusinessSize:    terms.BusinessSize,
			Rates:           *terms.InclusiveRates,
		})
		s.Inclusive = &inc
	default:
		panic(fmt.Sprintf("wage: unknown business size %d", terms.BusinessSize))
	}

	return s, nil
}
