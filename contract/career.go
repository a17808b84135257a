/*
career.go - Career duration aggregation

PURPOSE:
  Builds a worker's career view from completed contracts: one item per
  contract with its duration, plus totals.

TWO BUCKETINGS:
  Items and totals are labelled by two separate functions on purpose.

  itemDurationText (calendar based, one contract):
    >= 12 months  "Y년 M개월" (months dropped when zero)
    >=  1 month   "M개월"
    >=  7 days    "W주"
    otherwise     "N일", N at least 1; a same-day contract reads "1일"

  totalDurationText (fixed 365/30-day buckets over summed days):
    >= 365 days   "Y년 M개월"
    >=  30 days   "M개월"
    >=   7 days   "W주"
    otherwise     "N일"

  Labels are display strings. Nothing should parse them back.

  The input list is expected to be fully materialized; fetching contracts
  and ratings is the caller's job (see Service.Career).
*/
package contract

import (
	"fmt"
	"sort"
	"time"
)

// CareerItem is one completed contract in a worker's career.
type CareerItem struct {
	Contract     Contract
	Rating       *Rating
	DurationDays int
	DurationText string
}

// CareerSummary is the aggregate career view.
type CareerSummary struct {
	Items         []CareerItem
	TotalDays     int
	TotalText     string
	RatedCount    int
	AverageRating float64
}

// BuildCareer aggregates completed contracts. ratings is keyed by contract ID.
func BuildCareer(contracts []Contract, ratings map[string]Rating, now time.Time) CareerSummary {
	var summary CareerSummary
	scoreSum := 0

	for _, c := range contracts {
		if c.Status != StatusCompleted {
			continue
		}
		end := now
		if c.SignedAt != nil {
			end = *c.SignedAt
		}
		days := daysBetween(c.StartDate, end)

		item := CareerItem{
			Contract:     c,
			DurationDays: days,
			DurationText: itemDurationText(c.StartDate, end, days),
		}
		if r, ok := ratings[c.ID]; ok {
			r := r
			item.Rating = &r
			summary.RatedCount++
			scoreSum += r.Score
		}

		summary.Items = append(summary.Items, item)
		summary.TotalDays += days
	}

	sort.SliceStable(summary.Items, func(i, j int) bool {
		return signedOrZero(summary.Items[i].Contract).After(signedOrZero(summary.Items[j].Contract))
	})

	summary.TotalText = totalDurationText(summary.TotalDays)
	if summary.RatedCount > 0 {
		summary.AverageRating = float64(scoreSum) / float64(summary.RatedCount)
	}
	return summary
}

func signedOrZero(c Contract) time.Time {
	if c.SignedAt == nil {
		return time.Time{}
	}
	return *c.SignedAt
}

// =============================================================================
// DATE HELPERS
// =============================================================================

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b, floored at zero.
func daysBetween(a, b time.Time) int {
	d := int(dateOnly(b).Sub(dateOnly(a)) / day)
	if d < 0 {
		return 0
	}
	return d
}

// monthsBetween counts whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	a, b = dateOnly(a), dateOnly(b)
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

// =============================================================================
// LABELS
// =============================================================================

func itemDurationText(start, end time.Time, days int) string {
	months := monthsBetween(start, end)
	switch {
	case months >= 12:
		if months%12 == 0 {
			return fmt.Sprintf("%d년", months/12)
		}
		return fmt.Sprintf("%d년 %d개월", months/12, months%12)
	case months >= 1:
		return fmt.Sprintf("%d개월", months)
	case days >= 7:
		return fmt.Sprintf("%d주", days/7)
	default:
		if days < 1 {
			days = 1
		}
		return fmt.Sprintf("%d일", days)
	}
}

const (
	totalDaysPerYear  = 365
	totalDaysPerMonth = 30
)

func totalDurationText(days int) string {
	switch {
	case days >= totalDaysPerYear:
		years, months := days/totalDaysPerYear, (days%totalDaysPerYear)/totalDaysPerMonth
		if months == 0 {
			return fmt.Sprintf("%d년", years)
		}
		return fmt.Sprintf("%d년 %d개월", years, months)
	case days >= totalDaysPerMonth:
		return fmt.Sprintf("%d개월", days/totalDaysPerMonth)
	case days >= 7:
		return fmt.Sprintf("%d주", days/7)
	default:
		return fmt.Sprintf("%d일", days)
	}
}
