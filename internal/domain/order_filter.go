package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderFilter selects orders by a single key. When several keys are set,
// Effective picks one: CustomerID, then Date, then Status.
type OrderFilter struct {
	CustomerID *int64
	Date       *time.Time // calendar date of CreationTime, UTC
	Status     *OrderStatus
}

func (f OrderFilter) Effective() OrderFilter {
	switch {
	case f.CustomerID != nil:
		return OrderFilter{CustomerID: f.CustomerID}
	case f.Date != nil:
		return OrderFilter{Date: f.Date}
	case f.Status != nil:
		return OrderFilter{Status: f.Status}
	default:
		return OrderFilter{}
	}
}

func (f OrderFilter) IsEmpty() bool {
	return f.CustomerID == nil && f.Date == nil && f.Status == nil
}

func (f OrderFilter) Validate() error {
	if f.Status != nil && *f.Status == "" {
		return errors.New("status is empty")
	}

	if f.Date != nil && f.Date.IsZero() {
		return errors.New("date is zero")
	}

	return nil
}

// CreatedAt returns the creation time range covered by Date, nil if Date is unset.
func (f OrderFilter) CreatedAt() *TimeRange {
	if f.Date == nil {
		return nil
	}

	day := DayRange(*f.Date)
	return &day
}

// TimeRange is half-open: After is inclusive, Before is exclusive.
type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before is before After")
		}
	}

	return nil
}

// DayRange covers the UTC calendar day of t.
func DayRange(t time.Time) TimeRange {
	y, m, d := t.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	return TimeRange{
		After:  &start,
		Before: &end,
	}
}

// ParseDate parses a YYYY-MM-DD query value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse[%s]: %w", s, err)
	}

	return t, nil
}
