/*
Package factory provides JSON to Go conversion for contract terms and drafts.

PURPOSE:
  Converts the JSON the clients send into wage.ContractTerms and
  contract.ContractDraft values. This is the boundary: clock strings,
  enum names and ranges are checked here, so the calculators never see
  malformed input.

JSON SCHEMA:
  {
    "employer_id": "emp-1",
    "worker_id": "",
    "title": "Weekend barista",
    "workplace_name": "Corner Cafe",
    "workplace_address": "12 Main St",
    "job_description": "coffee bar",
    "start_date": "2025-04-01",
    "end_date": "2025-09-30",
    "terms": {
      "wage_type": "hourly",
      "wage": 10030,
      "work_days_per_week": 5,
      "start_time": "09:00",
      "end_time": "18:00",
      "break_minutes": 60,
      "business_size": "over5",
      "inclusive_rates": {
        "overtime_per_hour": 15045,
        "holiday_per_day": 120360,
        "annual_leave_per_day": 80240
      }
    }
  }

DEFAULTS:
  - business_size: "under5"
  - break_minutes: 0
  - end_date: open-ended

USAGE:
  f := factory.NewTermsFactory()
  draft, err := f.ParseDraft(body)
  if err != nil {
      // wage.IsInputError(err) or contract.IsClientError(err) -> 400
  }
  c, err := svc.Create(ctx, draft, time.Now())

SEE ALSO:
  - wage/terms.go: ContractTerms and its enums
  - contract/draft.go: ContractDraft wizard
*/
package factory

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

// DateLayout is the wire format of contract dates.
const DateLayout = "2006-01-02"

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TermsJSON is the JSON representation of wage.ContractTerms.
type TermsJSON struct {
	WageType        string              `json:"wage_type"` // hourly, monthly
	Wage            int64               `json:"wage"`
	WorkDaysPerWeek int                 `json:"work_days_per_week"`
	StartTime       string              `json:"start_time"` // HH:MM
	EndTime         string              `json:"end_time"`   // HH:MM, before start means overnight
	BreakMinutes    int                 `json:"break_minutes"`
	BusinessSize    string              `json:"business_size,omitempty"` // under5, over5
	InclusiveRates  *InclusiveRatesJSON `json:"inclusive_rates,omitempty"`
}

// InclusiveRatesJSON represents the optional inclusive-wage unit rates.
type InclusiveRatesJSON struct {
	OvertimePerHour   int64 `json:"overtime_per_hour"`
	HolidayPerDay     int64 `json:"holiday_per_day"`
	AnnualLeavePerDay int64 `json:"annual_leave_per_day"`
}

// DraftJSON is the JSON representation of a contract draft.
type DraftJSON struct {
	EmployerID       string    `json:"employer_id"`
	WorkerID         string    `json:"worker_id,omitempty"`
	Title            string    `json:"title,omitempty"`
	WorkplaceName    string    `json:"workplace_name"`
	WorkplaceAddress string    `json:"workplace_address,omitempty"`
	JobDescription   string    `json:"job_description,omitempty"`
	StartDate        string    `json:"start_date"`
	EndDate          *string   `json:"end_date,omitempty"`
	Terms            TermsJSON `json:"terms"`
}

// =============================================================================
// TERMS FACTORY
// =============================================================================

// TermsFactory converts JSON terms and drafts to domain values.
type TermsFactory struct{}

// NewTermsFactory creates a new terms factory.
func NewTermsFactory() *TermsFactory {
	return &TermsFactory{}
}

// ParseTerms parses a JSON document into validated ContractTerms.
func (f *TermsFactory) ParseTerms(data []byte) (wage.ContractTerms, error) {
	var tj TermsJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return wage.ContractTerms{}, fmt.Errorf("%w: failed to parse terms JSON: %v", wage.ErrInvalidInput, err)
	}
	return f.TermsFromJSON(tj)
}

// TermsFromJSON converts TermsJSON into validated ContractTerms.
func (f *TermsFactory) TermsFromJSON(tj TermsJSON) (wage.ContractTerms, error) {
	wageType, err := wage.ParseWageType(tj.WageType)
	if err != nil {
		return wage.ContractTerms{}, err
	}

	size := wage.Under5
	if tj.BusinessSize != "" {
		if size, err = wage.ParseBusinessSize(tj.BusinessSize); err != nil {
			return wage.ContractTerms{}, err
		}
	}

	start, err := wage.ParseClock(tj.StartTime)
	if err != nil {
		return wage.ContractTerms{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := wage.ParseClock(tj.EndTime)
	if err != nil {
		return wage.ContractTerms{}, fmt.Errorf("end_time: %w", err)
	}

	terms := wage.ContractTerms{
		WageType:        wageType,
		Wage:            tj.Wage,
		WorkDaysPerWeek: tj.WorkDaysPerWeek,
		StartTime:       start,
		EndTime:         end,
		BreakMinutes:    tj.BreakMinutes,
		BusinessSize:    size,
	}
	if r := tj.InclusiveRates; r != nil {
		terms.InclusiveRates = &wage.InclusiveRates{
			OvertimePerHour:   r.OvertimePerHour,
			HolidayPerDay:     r.HolidayPerDay,
			AnnualLeavePerDay: r.AnnualLeavePerDay,
		}
	}

	if err := terms.Validate(); err != nil {
		return wage.ContractTerms{}, err
	}
	return terms, nil
}

// TermsToJSON converts ContractTerms back to their wire shape.
func (f *TermsFactory) TermsToJSON(t wage.ContractTerms) TermsJSON {
	tj := TermsJSON{
		WageType:        t.WageType.String(),
		Wage:            t.Wage,
		WorkDaysPerWeek: t.WorkDaysPerWeek,
		StartTime:       t.StartTime.String(),
		EndTime:         t.EndTime.String(),
		BreakMinutes:    t.BreakMinutes,
		BusinessSize:    t.BusinessSize.String(),
	}
	if r := t.InclusiveRates; r != nil {
		tj.InclusiveRates = &InclusiveRatesJSON{
			OvertimePerHour:   r.OvertimePerHour,
			HolidayPerDay:     r.HolidayPerDay,
			AnnualLeavePerDay: r.AnnualLeavePerDay,
		}
	}
	return tj
}

// =============================================================================
// DRAFTS
// =============================================================================

// ParseDraft parses a JSON document into a ContractDraft. The draft is
// validated again on Commit.
func (f *TermsFactory) ParseDraft(data []byte) (contract.ContractDraft, error) {
	var dj DraftJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return contract.ContractDraft{}, fmt.Errorf("%w: failed to parse draft JSON: %v", contract.ErrInvalidInput, err)
	}
	return f.DraftFromJSON(dj)
}

// DraftFromJSON converts DraftJSON into a ContractDraft.
func (f *TermsFactory) DraftFromJSON(dj DraftJSON) (contract.ContractDraft, error) {
	terms, err := f.TermsFromJSON(dj.Terms)
	if err != nil {
		return contract.ContractDraft{}, err
	}

	start, err := ParseDate(dj.StartDate)
	if err != nil {
		return contract.ContractDraft{}, fmt.Errorf("start_date: %w", err)
	}
	var end *time.Time
	if dj.EndDate != nil && *dj.EndDate != "" {
		e, err := ParseDate(*dj.EndDate)
		if err != nil {
			return contract.ContractDraft{}, fmt.Errorf("end_date: %w", err)
		}
		end = &e
	}

	draft := contract.NewDraft().
		WithParties(dj.EmployerID, dj.WorkerID).
		WithTitle(dj.Title).
		WithWorkplace(dj.WorkplaceName, dj.WorkplaceAddress, dj.JobDescription).
		WithPeriod(start, end).
		WithSchedule(terms.WorkDaysPerWeek, terms.StartTime, terms.EndTime, terms.BreakMinutes).
		WithWage(terms.WageType, terms.Wage).
		WithBusinessSize(terms.BusinessSize).
		WithInclusiveRates(terms.InclusiveRates)

	if err := draft.Validate(); err != nil {
		return contract.ContractDraft{}, err
	}
	return draft, nil
}

// ParseDate accepts "2006-01-02" or RFC3339 and returns a UTC time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", contract.ErrInvalidInput, s)
	}
	return t.UTC(), nil
}
