package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// CONTRACT DRAFT - Multi-step wizard state
// =============================================================================

// ContractDraft accumulates the wizard steps before a single commit.
// Every With* method returns a new value; a draft is never shared mutably.
type ContractDraft struct {
	employerID       string
	workerID         string
	title            string
	workplaceName    string
	workplaceAddress string
	jobDescription   string
	startDate        time.Time
	endDate          *time.Time
	terms            wage.ContractTerms
}

func NewDraft() ContractDraft {
	return ContractDraft{}
}

func (d ContractDraft) WithParties(employerID, workerID string) ContractDraft {
	d.employerID = employerID
	d.workerID = workerID
	return d
}

func (d ContractDraft) WithTitle(title string) ContractDraft {
	d.title = title
	return d
}

func (d ContractDraft) WithWorkplace(name, address, jobDescription string) ContractDraft {
	d.workplaceName = name
	d.workplaceAddress = address
	d.jobDescription = jobDescription
	return d
}

func (d ContractDraft) WithPeriod(start time.Time, end *time.Time) ContractDraft {
	d.startDate = start
	if end != nil {
		e := *end
		d.endDate = &e
	} else {
		d.endDate = nil
	}
	return d
}

func (d ContractDraft) WithSchedule(workDaysPerWeek int, start, end wage.Clock, breakMinutes int) ContractDraft {
	d.terms.WorkDaysPerWeek = workDaysPerWeek
	d.terms.StartTime = start
	d.terms.EndTime = end
	d.terms.BreakMinutes = breakMinutes
	return d
}

func (d ContractDraft) WithWage(wageType wage.WageType, amount int64) ContractDraft {
	d.terms.WageType = wageType
	d.terms.Wage = amount
	return d
}

func (d ContractDraft) WithBusinessSize(size wage.BusinessSize) ContractDraft {
	d.terms.BusinessSize = size
	return d
}

func (d ContractDraft) WithInclusiveRates(rates *wage.InclusiveRates) ContractDraft {
	if rates != nil {
		r := *rates
		d.terms.InclusiveRates = &r
	} else {
		d.terms.InclusiveRates = nil
	}
	return d
}

// Terms returns the wage terms collected so far.
func (d ContractDraft) Terms() wage.ContractTerms {
	return d.terms
}

// Validate reports the first missing or malformed step.
func (d ContractDraft) Validate() error {
	if strings.TrimSpace(d.employerID) == "" {
		return fmt.Errorf("%w: employer is required", ErrInvalidInput)
	}
	if strings.TrimSpace(d.workplaceName) == "" {
		return fmt.Errorf("%w: workplace is required", ErrInvalidInput)
	}
	if d.startDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	if d.endDate != nil && d.endDate.Before(d.startDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return d.terms.Validate()
}

// Commit turns the draft into a new contract in draft status.
func (d ContractDraft) Commit(id string, now time.Time) (Contract, error) {
	if id == "" {
		return Contract{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := d.Validate(); err != nil {
		return Contract{}, err
	}
	title := d.title
	if title == "" {
		title = d.workplaceName
	}
	return Contract{
		ID:               id,
		EmployerID:       d.employerID,
		WorkerID:         d.workerID,
		Status:           StatusDraft,
		Title:            title,
		WorkplaceName:    d.workplaceName,
		WorkplaceAddress: d.workplaceAddress,
		JobDescription:   d.jobDescription,
		StartDate:        d.startDate,
		EndDate:          d.endDate,
		Terms:            d.terms,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}
