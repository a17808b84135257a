package contract

import "time"

// =============================================================================
// EDITABILITY GATE
// =============================================================================
// Content fields may change for GracePeriodDays whole days after creation.
// Signature fields and status transitions are never gated.

const DefaultGracePeriodDays = 7

const day = 24 * time.Hour

// Field names a mutable part of a contract.
type Field string

const (
	FieldTitle          Field = "title"
	FieldWorkplace      Field = "workplace"
	FieldJobDescription Field = "job_description"
	FieldPeriod         Field = "period"
	FieldWage           Field = "wage"
	FieldSchedule       Field = "schedule"
	FieldBusinessSize   Field = "business_size"
	FieldInclusiveRates Field = "inclusive_rates"

	FieldEmployerSignature Field = "employer_signature"
	FieldWorkerSignature   Field = "worker_signature"
	FieldStatus            Field = "status"
)

// IsContent reports whether the field is subject to the edit window.
func (f Field) IsContent() bool {
	switch f {
	case FieldEmployerSignature, FieldWorkerSignature, FieldStatus:
		return false
	}
	return true
}

// ElapsedDays is the number of whole days from createdAt to now, never negative.
func ElapsedDays(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

// IsEditable reports whether content fields may still change at now.
func IsEditable(createdAt, now time.Time, gracePeriodDays int) bool {
	return ElapsedDays(createdAt, now) <= gracePeriodDays
}

// RemainingEditDays is the countdown shown to users; it never goes below zero.
func RemainingEditDays(createdAt, now time.Time, gracePeriodDays int) int {
	remaining := gracePeriodDays - ElapsedDays(createdAt, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckUpdate authorizes a write touching fields. It must be re-run where the
// write is persisted; a UI-side check is advisory only.
func CheckUpdate(c Contract, fields []Field, now time.Time, gracePeriodDays int) error {
	if IsEditable(c.CreatedAt, now, gracePeriodDays) {
		return nil
	}
	var locked []Field
	for _, f := range fields {
		if f.IsContent() {
			locked = append(locked, f)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	return &EditWindowClosedError{
		Fields:      locked,
		ElapsedDays: ElapsedDays(c.CreatedAt, now),
		GraceDays:   gracePeriodDays,
	}
}
