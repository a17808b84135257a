/*
inclusive.go - Inclusive wage (포괄임금) calculator

PURPOSE:
  For worksites with five or more employees, derives the fixed monthly
  overtime allowance and reports how each statutory allowance may be paid.

SETTLEMENT CLASSES:
  ┌────────────────┬──────────────────────────┬────────────────────────────┐
  │ Allowance      │ Settlement               │ In FixedMonthlyTotal       │
  ├────────────────┼──────────────────────────┼────────────────────────────┤
  │ overtime       │ included_in_fixed_pay    │ yes                        │
  │ holiday work   │ settled_on_occurrence    │ no, unit rate per day      │
  │ annual leave   │ compliance_risk          │ no, unit rate + warning    │
  └────────────────┴──────────────────────────┴────────────────────────────┘

  Holiday work cannot be planned and is paid per actual occurrence.
  Prepaying unused annual leave can be read as circumventing the worker's
  right to take leave, so it always carries a warning.

FORMULAS:
  dailyOvertimeHours   = max(0, daily - 8)
  monthlyOvertimeHours = round1(dailyOvertimeHours * days * 4.345)
  monthlyOvertimePay   = round(overtimePerHour * monthlyOvertimeHours)

  Suggested unit rates pre-fill a form. They are never substituted into a
  calculation the caller did not supply rates for.
*/
package wage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

type AllowanceKind string

const (
	AllowanceOvertime    AllowanceKind = "overtime"
	AllowanceHolidayWork AllowanceKind = "holiday_work"
	AllowanceAnnualLeave AllowanceKind = "annual_leave"
)

type Settlement string

const (
	SettlementIncludedInFixedPay Settlement = "included_in_fixed_pay"
	SettlementOnOccurrence       Settlement = "settled_on_occurrence"
	SettlementComplianceRisk     Settlement = "compliance_risk"
)

type RateUnit string

const (
	UnitPerMonth RateUnit = "per_month"
	UnitPerDay   RateUnit = "per_day"
)

const annualLeaveWarning = "prepaying unused annual leave may be treated as restricting the right to take leave"

// SettlementFor returns the fixed settlement class of an allowance kind.
func SettlementFor(kind AllowanceKind) Settlement {
	switch kind {
	case AllowanceOvertime:
		return SettlementIncludedInFixedPay
	case AllowanceHolidayWork:
		return SettlementOnOccurrence
	case AllowanceAnnualLeave:
		return SettlementComplianceRisk
	}
	panic(fmt.Sprintf("wage: unknown allowance kind %q", kind))
}

// =============================================================================
// INPUT / OUTPUT
// =============================================================================

type InclusiveWageInput struct {
	HourlyWage      int64
	WorkDaysPerWeek int
	DailyWorkHours  decimal.Decimal
	BusinessSize    BusinessSize
	Rates           InclusiveRates
}

type Allowance struct {
	Kind       AllowanceKind
	Settlement Settlement
	Amount     int64
	Unit       RateUnit
	Warning    string
}

type InclusiveWageResult struct {
	Applicable           bool
	DailyOvertimeHours   decimal.Decimal
	MonthlyOvertimeHours decimal.Decimal // one decimal place
	MonthlyOvertimePay   int64
	Allowances           []Allowance
	FixedMonthlyTotal    int64 // sum of allowances included in fixed pay
}

// CalculateInclusiveWage derives the inclusive-wage allowances.
// Worksites under five employees get a non-applicable result.
func CalculateInclusiveWage(in InclusiveWageInput) InclusiveWageResult {
	switch in.BusinessSize {
	case Under5:
		return InclusiveWageResult{
			DailyOvertimeHours:   decimal.Zero,
			MonthlyOvertimeHours: decimal.Zero,
		}
	case Over5:
	default:
		panic(fmt.Sprintf("wage: unknown business size %d", in.BusinessSize))
	}

	dailyOT := decimal.Max(decimal.Zero, in.DailyWorkHours.Sub(StatutoryDailyHours))
	monthlyOT := dailyOT.
		Mul(decimal.NewFromInt(int64(in.WorkDaysPerWeek))).
		Mul(WeeksPerMonth).
		RoundBank(1)
	overtimePay := roundWon(decimal.NewFromInt(in.Rates.OvertimePerHour).Mul(monthlyOT))

	allowances := []Allowance{
		{Kind: AllowanceOvertime, Amount: overtimePay, Unit: UnitPerMonth},
		{Kind: AllowanceHolidayWork, Amount: in.Rates.HolidayPerDay, Unit: UnitPerDay},
		{Kind: AllowanceAnnualLeave, Amount: in.Rates.AnnualLeavePerDay, Unit: UnitPerDay, Warning: annualLeaveWarning},
	}

	var fixed int64
	for i := range allowances {
		allowances[i].Settlement = SettlementFor(allowances[i].Kind)
		if allowances[i].Settlement == SettlementIncludedInFixedPay {
			fixed += allowances[i].Amount
		}
	}

	return InclusiveWageResult{
		Applicable:           true,
		DailyOvertimeHours:   dailyOT,
		MonthlyOvertimeHours: monthlyOT,
		MonthlyOvertimePay:   overtimePay,
		Allowances:           allowances,
		FixedMonthlyTotal:    fixed,
	}
}

// SuggestInclusiveRates returns default unit rates for pre-filling a form.
func SuggestInclusiveRates(hourlyWage int64, dailyWorkHours decimal.Decimal) InclusiveRates {
	w := decimal.NewFromInt(hourlyWage)
	return InclusiveRates{
		OvertimePerHour:   roundWon(w.Mul(OvertimePremium)),
		HolidayPerDay:     roundWon(w.Mul(OvertimePremium).Mul(dailyWorkHours)),
		AnnualLeavePerDay: roundWon(w.Mul(dailyWorkHours)),
	}
}
