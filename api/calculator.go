/*
calculator.go - Stateless wage calculator endpoints

PURPOSE:
  Lets the contract form preview wage figures before anything is saved.
  None of these handlers touch the store.

ENDPOINTS:
  POST /api/wage/hours                      Daily work hours from a schedule
  POST /api/wage/holiday-pay                Weekly holiday pay
  POST /api/wage/breakdown?period=monthly   Periodized breakdown (weekly|monthly)
  POST /api/wage/inclusive                  Inclusive wage allowances
  GET  /api/wage/inclusive/suggest          Suggested unit rates (pre-fill only)
  GET  /api/wage/minimum/{year}             Statutory minimum (?hourly_wage= checks it)
  POST /api/wage/summary?year=2025          Full summary for terms JSON

SCHEDULE INPUT:
  Calculators accept either daily_work_hours directly or a
  start_time/end_time/break_minutes triple. Clock strings are parsed here,
  so a bad "HH:MM" is a 400 before any arithmetic runs.
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/factory"
	"github.com/warp/contract-engine/wage"
)

// resolve returns the daily work hours described by the request.
func (s ScheduleRequest) resolve() (decimal.Decimal, error) {
	if s.DailyWorkHours != nil {
		if s.DailyWorkHours.IsNegative() {
			return decimal.Zero, &wage.InputError{Field: "daily_work_hours", Reason: "must not be negative"}
		}
		return *s.DailyWorkHours, nil
	}
	return wage.ElapsedWorkHoursString(s.StartTime, s.EndTime, s.BreakMinutes)
}

// validateWageInput rejects values the calculators must never see.
func validateWageInput(hourlyWage int64, workDaysPerWeek int) error {
	if hourlyWage <= 0 {
		return &wage.InputError{Field: "hourly_wage", Reason: "must be positive"}
	}
	if workDaysPerWeek < 1 || workDaysPerWeek > 7 {
		return &wage.InputError{Field: "work_days_per_week", Reason: "must be between 1 and 7"}
	}
	return nil
}

func (req HolidayPayRequest) validate() error {
	return validateWageInput(req.HourlyWage, req.WorkDaysPerWeek)
}

func (req InclusiveWageRequest) validate() error {
	if err := validateWageInput(req.HourlyWage, req.WorkDaysPerWeek); err != nil {
		return err
	}
	if req.Rates.OvertimePerHour < 0 || req.Rates.HolidayPerDay < 0 || req.Rates.AnnualLeavePerDay < 0 {
		return &wage.InputError{Field: "rates", Reason: "must not be negative"}
	}
	return nil
}

// CalculateHours returns the daily work hours of a schedule.
// POST /api/wage/hours
func (h *Handler) CalculateHours(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	hours, err := req.resolve()
	if err != nil {
		h.writeDomainError(w, "Invalid schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"daily_work_hours": hours})
}

// CalculateHolidayPay returns the weekly holiday pay result.
// POST /api/wage/holiday-pay
func (h *Handler) CalculateHolidayPay(w http.ResponseWriter, r *http.Request) {
	req, daily, ok := h.decodeHolidayPayRequest(w, r)
	if !ok {
		return
	}
	res := wage.CalculateWeeklyHolidayPay(req.HourlyWage, req.WorkDaysPerWeek, daily)
	writeJSON(w, http.StatusOK, toHolidayPayDTO(res))
}

// CalculateBreakdown returns a weekly or monthly breakdown.
// POST /api/wage/breakdown?period=monthly
func (h *Handler) CalculateBreakdown(w http.ResponseWriter, r *http.Request) {
	period := wage.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = wage.PeriodMonthly
	}
	if period != wage.PeriodMonthly && period != wage.PeriodWeekly {
		writeError(w, http.StatusBadRequest, "period must be weekly or monthly", nil)
		return
	}

	req, daily, ok := h.decodeHolidayPayRequest(w, r)
	if !ok {
		return
	}

	var b wage.WageBreakdown
	if period == wage.PeriodWeekly {
		b = wage.WeeklyBreakdown(req.HourlyWage, req.WorkDaysPerWeek, daily)
	} else {
		b = wage.MonthlyBreakdown(req.HourlyWage, req.WorkDaysPerWeek, daily)
	}
	writeJSON(w, http.StatusOK, toBreakdownDTO(b))
}

func (h *Handler) decodeHolidayPayRequest(w http.ResponseWriter, r *http.Request) (HolidayPayRequest, decimal.Decimal, bool) {
	var req HolidayPayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return req, decimal.Zero, false
	}
	if err := req.validate(); err != nil {
		h.writeDomainError(w, "Invalid wage input", err)
		return req, decimal.Zero, false
	}
	daily, err := req.resolve()
	if err != nil {
		h.writeDomainError(w, "Invalid schedule", err)
		return req, decimal.Zero, false
	}
	return req, daily, true
}

// CalculateInclusive returns the inclusive wage allowances.
// POST /api/wage/inclusive
func (h *Handler) CalculateInclusive(w http.ResponseWriter, r *http.Request) {
	var req InclusiveWageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeDomainError(w, "Invalid wage input", err)
		return
	}
	size, err := wage.ParseBusinessSize(req.BusinessSize)
	if err != nil {
		h.writeDomainError(w, "Invalid business size", err)
		return
	}
	daily, err := req.resolve()
	if err != nil {
		h.writeDomainError(w, "Invalid schedule", err)
		return
	}

	res := wage.CalculateInclusiveWage(wage.InclusiveWageInput{
		HourlyWage:      req.HourlyWage,
		WorkDaysPerWeek: req.WorkDaysPerWeek,
		DailyWorkHours:  daily,
		BusinessSize:    size,
		Rates: wage.InclusiveRates{
			OvertimePerHour:   req.Rates.OvertimePerHour,
			HolidayPerDay:     req.Rates.HolidayPerDay,
			AnnualLeavePerDay: req.Rates.AnnualLeavePerDay,
		},
	})
	writeJSON(w, http.StatusOK, toInclusiveDTO(res))
}

// SuggestInclusiveRates returns pre-fill rates for the inclusive wage form.
// GET /api/wage/inclusive/suggest?hourly_wage=10030&daily_work_hours=8
func (h *Handler) SuggestInclusiveRates(w http.ResponseWriter, r *http.Request) {
	hourly, err := strconv.ParseInt(r.URL.Query().Get("hourly_wage"), 10, 64)
	if err != nil || hourly < 0 {
		writeError(w, http.StatusBadRequest, "hourly_wage must be a non-negative integer", err)
		return
	}
	daily := wage.StatutoryDailyHours
	if raw := r.URL.Query().Get("daily_work_hours"); raw != "" {
		if daily, err = decimal.NewFromString(raw); err != nil || daily.IsNegative() {
			writeError(w, http.StatusBadRequest, "daily_work_hours must be a non-negative number", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, toRatesJSON(wage.SuggestInclusiveRates(hourly, daily)))
}

// GetMinimumWage returns the statutory minimum for a year.
// GET /api/wage/minimum/{year}?hourly_wage=9900
func (h *Handler) GetMinimumWage(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer", err)
		return
	}

	raw := r.URL.Query().Get("hourly_wage")
	if raw == "" {
		minWage, err := wage.MinimumWage(year)
		if err != nil {
			h.writeDomainError(w, "No minimum wage for year", err)
			return
		}
		withHoliday, _ := wage.MinimumWageWithHolidayPay(year)
		writeJSON(w, http.StatusOK, MinimumWageDTO{Year: year, MinimumWage: minWage, WithHolidayPay: withHoliday})
		return
	}

	hourly, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "hourly_wage must be an integer", err)
		return
	}
	check, err := wage.CheckMinimumWage(year, hourly)
	if err != nil {
		h.writeDomainError(w, "No minimum wage for year", err)
		return
	}
	writeJSON(w, http.StatusOK, toMinimumWageDTO(check))
}

// SummarizeTerms computes the full wage summary for unsaved terms.
// POST /api/wage/summary?year=2025
func (h *Handler) SummarizeTerms(w http.ResponseWriter, r *http.Request) {
	var req factory.TermsJSON
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	terms, err := h.Terms.TermsFromJSON(req)
	if err != nil {
		h.writeDomainError(w, "Invalid terms", err)
		return
	}

	year := h.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer", err)
			return
		}
	}

	s, err := wage.Summarize(terms, year)
	if err != nil {
		h.writeDomainError(w, "Failed to compute wage summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toWageSummaryDTO(s))
}
