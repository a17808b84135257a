/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the domain model from the external API contract: enums travel by name,
  clocks as "HH:MM", dates as "YYYY-MM-DD", hours as decimal strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Contracts:
    ContractDTO, UpdateContractRequest, SignRequest, EditabilityDTO
    (create requests use factory.DraftJSON)

  Wage:
    ScheduleRequest, HolidayPayRequest, InclusiveWageRequest,
    HolidayPayDTO, BreakdownDTO, InclusiveWageDTO, MinimumWageDTO,
    WageSummaryDTO

  Career:
    RatingRequest, RatingDTO, CareerDTO, CareerItemDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Validation is done by the factory and the domain packages, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go, calculator.go: Use these types
  - factory/terms.go: TermsJSON, DraftJSON
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/factory"
	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// CONTRACT TYPES
// =============================================================================

// ContractDTO represents a contract in API responses.
type ContractDTO struct {
	ID                string            `json:"id"`
	EmployerID        string            `json:"employer_id"`
	WorkerID          string            `json:"worker_id,omitempty"`
	Status            string            `json:"status"`
	Title             string            `json:"title"`
	WorkplaceName     string            `json:"workplace_name"`
	WorkplaceAddress  string            `json:"workplace_address,omitempty"`
	JobDescription    string            `json:"job_description,omitempty"`
	StartDate         string            `json:"start_date"`
	EndDate           *string           `json:"end_date,omitempty"`
	Terms             factory.TermsJSON `json:"terms"`
	EmployerSigned    bool              `json:"employer_signed"`
	WorkerSigned      bool              `json:"worker_signed"`
	SignedAt          *string           `json:"signed_at,omitempty"`
	Editable          bool              `json:"editable"`
	RemainingEditDays int               `json:"remaining_edit_days"`
	CreatedAt         string            `json:"created_at"`
	UpdatedAt         string            `json:"updated_at"`
}

// UpdateContractRequest carries content changes. Omitted fields are unchanged.
type UpdateContractRequest struct {
	Title            *string            `json:"title,omitempty"`
	WorkplaceName    *string            `json:"workplace_name,omitempty"`
	WorkplaceAddress *string            `json:"workplace_address,omitempty"`
	JobDescription   *string            `json:"job_description,omitempty"`
	StartDate        *string            `json:"start_date,omitempty"`
	EndDate          *string            `json:"end_date,omitempty"`
	Terms            *factory.TermsJSON `json:"terms,omitempty"`
}

// SignRequest records one party's signature.
type SignRequest struct {
	Party     string `json:"party"` // employer, worker
	ActorID   string `json:"actor_id"`
	Signature string `json:"signature"`
}

// EditabilityDTO tells the client whether content edits are still accepted.
type EditabilityDTO struct {
	ContractID    string  `json:"contract_id"`
	Editable      bool    `json:"editable"`
	RemainingDays int     `json:"remaining_days"`
	GraceDays     int     `json:"grace_days"`
	Status        string  `json:"status"`
	NextSigner    *string `json:"next_signer,omitempty"`
}

// =============================================================================
// WAGE TYPES
// =============================================================================

// ScheduleRequest describes one working day. DailyWorkHours wins when given;
// otherwise it is derived from the clock times.
type ScheduleRequest struct {
	DailyWorkHours *decimal.Decimal `json:"daily_work_hours,omitempty"`
	StartTime      string           `json:"start_time,omitempty"`
	EndTime        string           `json:"end_time,omitempty"`
	BreakMinutes   int              `json:"break_minutes,omitempty"`
}

// HolidayPayRequest is the body of the holiday pay and breakdown calculators.
type HolidayPayRequest struct {
	HourlyWage      int64 `json:"hourly_wage"`
	WorkDaysPerWeek int   `json:"work_days_per_week"`
	ScheduleRequest
}

// InclusiveWageRequest is the body of the inclusive wage calculator.
type InclusiveWageRequest struct {
	HourlyWage      int64                      `json:"hourly_wage"`
	WorkDaysPerWeek int                        `json:"work_days_per_week"`
	BusinessSize    string                     `json:"business_size"`
	Rates           factory.InclusiveRatesJSON `json:"rates"`
	ScheduleRequest
}

// HolidayPayDTO is the weekly holiday pay result.
type HolidayPayDTO struct {
	IsEligible          bool            `json:"is_eligible"`
	WeeklyWorkHours     decimal.Decimal `json:"weekly_work_hours"`
	DailyWorkHours      decimal.Decimal `json:"daily_work_hours"`
	HolidayHours        decimal.Decimal `json:"holiday_hours"`
	BaseHourlyWage      int64           `json:"base_hourly_wage"`
	HolidayPayPerHour   int64           `json:"holiday_pay_per_hour"`
	HolidayPayPerWeek   int64           `json:"holiday_pay_per_week"`
	EffectiveHourlyWage int64           `json:"effective_hourly_wage"`
}

// BreakdownDTO is a periodized wage summary.
type BreakdownDTO struct {
	Period           string          `json:"period"`
	BaseWage         int64           `json:"base_wage"`
	WeeklyHolidayPay int64           `json:"weekly_holiday_pay"`
	TotalWage        int64           `json:"total_wage"`
	WeeklyWorkHours  decimal.Decimal `json:"weekly_work_hours"`
	IsEligible       bool            `json:"is_eligible"`
}

// AllowanceDTO is one inclusive-wage allowance.
type AllowanceDTO struct {
	Kind       string `json:"kind"`
	Settlement string `json:"settlement"`
	Amount     int64  `json:"amount"`
	Unit       string `json:"unit"`
	Warning    string `json:"warning,omitempty"`
}

// InclusiveWageDTO is the inclusive wage result.
type InclusiveWageDTO struct {
	Applicable           bool            `json:"applicable"`
	DailyOvertimeHours   decimal.Decimal `json:"daily_overtime_hours"`
	MonthlyOvertimeHours decimal.Decimal `json:"monthly_overtime_hours"`
	MonthlyOvertimePay   int64           `json:"monthly_overtime_pay"`
	Allowances           []AllowanceDTO  `json:"allowances"`
	FixedMonthlyTotal    int64           `json:"fixed_monthly_total"`
}

// MinimumWageDTO is the statutory minimum for a year, with an optional check.
type MinimumWageDTO struct {
	Year           int    `json:"year"`
	MinimumWage    int64  `json:"minimum_wage"`
	WithHolidayPay int64  `json:"with_holiday_pay"`
	HourlyWage     *int64 `json:"hourly_wage,omitempty"`
	Compliant      *bool  `json:"compliant,omitempty"`
	Shortfall      *int64 `json:"shortfall,omitempty"`
}

// WageSummaryDTO is the full wage view of a contract.
type WageSummaryDTO struct {
	WageType       string                      `json:"wage_type"`
	ContractWage   int64                       `json:"contract_wage"`
	HourlyWage     int64                       `json:"hourly_wage"`
	StandardHours  int64                       `json:"standard_hours,omitempty"`
	DailyWorkHours decimal.Decimal             `json:"daily_work_hours"`
	Holiday        HolidayPayDTO               `json:"holiday"`
	Weekly         BreakdownDTO                `json:"weekly"`
	Monthly        BreakdownDTO                `json:"monthly"`
	MinimumWage    MinimumWageDTO              `json:"minimum_wage"`
	Inclusive      *InclusiveWageDTO           `json:"inclusive,omitempty"`
	SuggestedRates *factory.InclusiveRatesJSON `json:"suggested_rates,omitempty"`
}

// =============================================================================
// CAREER TYPES
// =============================================================================

// RatingRequest is a worker's rating of a completed contract.
type RatingRequest struct {
	WorkerID string `json:"worker_id"`
	Score    int    `json:"score"`
	Comment  string `json:"comment,omitempty"`
}

// RatingDTO represents a rating in API responses.
type RatingDTO struct {
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CareerItemDTO is one completed contract in a career.
type CareerItemDTO struct {
	ContractID    string     `json:"contract_id"`
	Title         string     `json:"title"`
	WorkplaceName string     `json:"workplace_name"`
	StartDate     string     `json:"start_date"`
	SignedAt      *string    `json:"signed_at,omitempty"`
	DurationDays  int        `json:"duration_days"`
	DurationText  string     `json:"duration_text"`
	Rating        *RatingDTO `json:"rating,omitempty"`
}

// CareerDTO is the aggregate career view.
type CareerDTO struct {
	WorkerID      string          `json:"worker_id"`
	Items         []CareerItemDTO `json:"items"`
	TotalDays     int             `json:"total_days"`
	TotalText     string          `json:"total_text"`
	RatedCount    int             `json:"rated_count"`
	AverageRating float64         `json:"average_rating"`
}

// =============================================================================
// MISC
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`

	// SupportedYears is set on unknown_rate_year so clients can pick a year
	// the rate table covers.
	SupportedYears []int `json:"supported_years,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func formatDate(t time.Time) string {
	return t.Format(factory.DateLayout)
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

func (h *Handler) toContractDTO(c contract.Contract, now time.Time) ContractDTO {
	grace := h.Service.GracePeriodDays
	return ContractDTO{
		ID:                c.ID,
		EmployerID:        c.EmployerID,
		WorkerID:          c.WorkerID,
		Status:            string(c.Status),
		Title:             c.Title,
		WorkplaceName:     c.WorkplaceName,
		WorkplaceAddress:  c.WorkplaceAddress,
		JobDescription:    c.JobDescription,
		StartDate:         formatDate(c.StartDate),
		EndDate:           formatTimePtr(c.EndDate, factory.DateLayout),
		Terms:             h.Terms.TermsToJSON(c.Terms),
		EmployerSigned:    c.EmployerSignature != nil,
		WorkerSigned:      c.WorkerSignature != nil,
		SignedAt:          formatTimePtr(c.SignedAt, time.RFC3339),
		Editable:          contract.IsEditable(c.CreatedAt, now, grace),
		RemainingEditDays: contract.RemainingEditDays(c.CreatedAt, now, grace),
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         c.UpdatedAt.Format(time.RFC3339),
	}
}

func toEditabilityDTO(v contract.EditabilityView) EditabilityDTO {
	dto := EditabilityDTO{
		ContractID:    v.ContractID,
		Editable:      v.Editable,
		RemainingDays: v.RemainingDays,
		GraceDays:     v.GraceDays,
		Status:        string(v.Status),
	}
	if v.NextSigner != nil {
		s := string(*v.NextSigner)
		dto.NextSigner = &s
	}
	return dto
}

func toHolidayPayDTO(r wage.WeeklyHolidayPayResult) HolidayPayDTO {
	return HolidayPayDTO{
		IsEligible:          r.IsEligible,
		WeeklyWorkHours:     r.WeeklyWorkHours,
		DailyWorkHours:      r.DailyWorkHours,
		HolidayHours:        r.HolidayHours,
		BaseHourlyWage:      r.BaseHourlyWage,
		HolidayPayPerHour:   r.HolidayPayPerHour,
		HolidayPayPerWeek:   r.HolidayPayPerWeek,
		EffectiveHourlyWage: r.EffectiveHourlyWage,
	}
}

func toBreakdownDTO(b wage.WageBreakdown) BreakdownDTO {
	return BreakdownDTO{
		Period:           string(b.Period),
		BaseWage:         b.BaseWage,
		WeeklyHolidayPay: b.WeeklyHolidayPay,
		TotalWage:        b.TotalWage,
		WeeklyWorkHours:  b.WeeklyWorkHours,
		IsEligible:       b.IsEligible,
	}
}

func toInclusiveDTO(r wage.InclusiveWageResult) InclusiveWageDTO {
	dto := InclusiveWageDTO{
		Applicable:           r.Applicable,
		DailyOvertimeHours:   r.DailyOvertimeHours,
		MonthlyOvertimeHours: r.MonthlyOvertimeHours,
		MonthlyOvertimePay:   r.MonthlyOvertimePay,
		Allowances:           make([]AllowanceDTO, 0, len(r.Allowances)),
		FixedMonthlyTotal:    r.FixedMonthlyTotal,
	}
	for _, a := range r.Allowances {
		dto.Allowances = append(dto.Allowances, AllowanceDTO{
			Kind:       string(a.Kind),
			Settlement: string(a.Settlement),
			Amount:     a.Amount,
			Unit:       string(a.Unit),
			Warning:    a.Warning,
		})
	}
	return dto
}

func toRatesJSON(r wage.InclusiveRates) factory.InclusiveRatesJSON {
	return factory.InclusiveRatesJSON{
		OvertimePerHour:   r.OvertimePerHour,
		HolidayPerDay:     r.HolidayPerDay,
		AnnualLeavePerDay: r.AnnualLeavePerDay,
	}
}

func toMinimumWageDTO(check wage.MinimumWageCheck) MinimumWageDTO {
	dto := MinimumWageDTO{
		Year:        check.Year,
		MinimumWage: check.MinimumWage,
	}
	// The year was already resolved, so this lookup cannot miss.
	dto.WithHolidayPay, _ = wage.MinimumWageWithHolidayPay(check.Year)
	hourly, compliant, shortfall := check.HourlyWage, check.Compliant, check.Shortfall
	dto.HourlyWage = &hourly
	dto.Compliant = &compliant
	dto.Shortfall = &shortfall
	return dto
}

func toWageSummaryDTO(s wage.Summary) WageSummaryDTO {
	dto := WageSummaryDTO{
		WageType:       s.WageType.String(),
		ContractWage:   s.ContractWage,
		HourlyWage:     s.HourlyWage,
		StandardHours:  s.StandardHours,
		DailyWorkHours: s.DailyWorkHours,
		Holiday:        toHolidayPayDTO(s.Holiday),
		Weekly:         toBreakdownDTO(s.Weekly),
		Monthly:        toBreakdownDTO(s.Monthly),
		MinimumWage:    toMinimumWageDTO(s.MinimumWage),
	}
	if s.Inclusive != nil {
		inc := toInclusiveDTO(*s.Inclusive)
		dto.Inclusive = &inc
	}
	if s.SuggestedRates != nil {
		r := toRatesJSON(*s.SuggestedRates)
		dto.SuggestedRates = &r
	}
	return dto
}

func toCareerDTO(workerID string, s contract.CareerSummary) CareerDTO {
	dto := CareerDTO{
		WorkerID:      workerID,
		Items:         make([]CareerItemDTO, 0, len(s.Items)),
		TotalDays:     s.TotalDays,
		TotalText:     s.TotalText,
		RatedCount:    s.RatedCount,
		AverageRating: s.AverageRating,
	}
	for _, item := range s.Items {
		it := CareerItemDTO{
			ContractID:    item.Contract.ID,
			Title:         item.Contract.Title,
			WorkplaceName: item.Contract.WorkplaceName,
			StartDate:     formatDate(item.Contract.StartDate),
			SignedAt:      formatTimePtr(item.Contract.SignedAt, time.RFC3339),
			DurationDays:  item.DurationDays,
			DurationText:  item.DurationText,
		}
		if item.Rating != nil {
			it.Rating = &RatingDTO{
				Score:     item.Rating.Score,
				Comment:   item.Rating.Comment,
				CreatedAt: item.Rating.CreatedAt.Format(time.RFC3339),
			}
		}
		dto.Items = append(dto.Items, it)
	}
	return dto
}
