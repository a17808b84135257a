/*
terms.go - Contract terms consumed by the calculators

KEY CONCEPTS:
  - ContractTerms: the wage and schedule fields of a contract, immutable per call
  - WageType: closed enum, Hourly | Monthly
  - BusinessSize: closed enum, Under5 | Over5 (inclusive-wage disclosure threshold)
  - InclusiveRates: optional unit rates for inclusive pay

  Both enums are parsed once at the boundary. Every switch over them in
  this module is exhaustive and ends in a panic for an unreachable value,
  so a new member shows up as a failing test rather than a silent default.
*/
package wage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMS
// =============================================================================

type WageType int

const (
	WageHourly WageType = iota + 1
	WageMonthly
)

func ParseWageType(s string) (WageType, error) {
	switch s {
	case "hourly":
		return WageHourly, nil
	case "monthly":
		return WageMonthly, nil
	}
	return 0, invalid("wage_type", fmt.Sprintf("unknown value %q", s))
}

func (t WageType) String() string {
	switch t {
	case WageHourly:
		return "hourly"
	case WageMonthly:
		return "monthly"
	}
	return fmt.Sprintf("WageType(%d)", int(t))
}

type BusinessSize int

const (
	Under5 BusinessSize = iota + 1
	Over5
)

func ParseBusinessSize(s string) (BusinessSize, error) {
	switch s {
	case "under5":
		return Under5, nil
	case "over5":
		return Over5, nil
	}
	return 0, invalid("business_size", fmt.Sprintf("unknown value %q", s))
}

func (b BusinessSize) String() string {
	switch b {
	case Under5:
		return "under5"
	case Over5:
		return "over5"
	}
	return fmt.Sprintf("BusinessSize(%d)", int(b))
}

// =============================================================================
// CONTRACT TERMS
// =============================================================================

// InclusiveRates are unit rates for the inclusive-wage allowances.
type InclusiveRates struct {
	OvertimePerHour   int64
	HolidayPerDay     int64
	AnnualLeavePerDay int64
}

// ContractTerms are the wage and schedule fields of a contract.
type ContractTerms struct {
	WageType        WageType
	Wage            int64 // per hour or per month depending on WageType
	WorkDaysPerWeek int
	StartTime       Clock
	EndTime         Clock
	BreakMinutes    int
	BusinessSize    BusinessSize
	InclusiveRates  *InclusiveRates
}

// DailyWorkHours is the elapsed hours of one scheduled day.
func (t ContractTerms) DailyWorkHours() decimal.Decimal {
	return ElapsedWorkHours(t.StartTime, t.EndTime, t.BreakMinutes)
}

// Validate checks the terms before they enter the numeric pipeline.
func (t ContractTerms) Validate() error {
	if t.WageType != WageHourly && t.WageType != WageMonthly {
		return invalid("wage_type", "must be hourly or monthly")
	}
	if t.Wage <= 0 {
		return invalid("wage", "must be positive")
	}
	if t.WorkDaysPerWeek < 1 || t.WorkDaysPerWeek > 7 {
		return invalid("work_days_per_week", "must be between 1 and 7")
	}
	if t.StartTime < 0 || t.StartTime >= minutesPerDay || t.EndTime < 0 || t.EndTime >= minutesPerDay {
		return fmt.Errorf("%w: schedule out of range", ErrInvalidClock)
	}
	if t.BreakMinutes < 0 {
		return invalid("break_minutes", "must not be negative")
	}
	if t.BusinessSize != Under5 && t.BusinessSize != Over5 {
		return invalid("business_size", "must be under5 or over5")
	}
	if r := t.InclusiveRates; r != nil {
		if r.OvertimePerHour < 0 || r.HolidayPerDay < 0 || r.AnnualLeavePerDay < 0 {
			return invalid("inclusive_rates", "must not be negative")
		}
	}
	return nil
}
