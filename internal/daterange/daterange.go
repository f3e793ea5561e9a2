// Package daterange holds the calendar-date interval rules shared by pricing
// periods and lease rows: inclusive bounds, day granularity, and an absent end
// date meaning "open-ended".
package daterange

import (
	"errors"
	"time"
)

// Layout is the wire format of every calendar date in the API.
const Layout = "2006-01-02"

var (
	ErrMissingStartDate = errors.New("La date de début est obligatoire")
	ErrInvalidRange     = errors.New("La date de fin doit être postérieure ou égale à la date de début")
	ErrOverlapDetected  = errors.New("Les dates se chevauchent avec une période existante")
	ErrOpenPeriodExists = errors.New("Une période sans date de fin existe déjà, veuillez la clôturer avant d'en créer une nouvelle")
)

// Range is an inclusive [Start, End] interval. A nil End is +∞.
type Range struct {
	Start time.Time
	End   *time.Time
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD string. The empty string yields the zero time.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// ParseOptional is Parse for nullable end dates: "" yields nil.
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Format renders a nullable date, "" for nil.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}

func New(start time.Time, end *time.Time) Range {
	r := Range{Start: Day(start)}
	if end != nil {
		e := Day(*end)
		r.End = &e
	}
	return r
}

func (r Range) Open() bool { return r.End == nil }

// endsOnOrAfter reports whether r has not ended before d (∞ never ends).
func (r Range) endsOnOrAfter(d time.Time) bool {
	return r.End == nil || !Day(*r.End).Before(Day(d))
}

// Overlaps is the inclusive interval-intersection test:
// a.Start <= b.End && b.Start <= a.End, with ∞ for absent ends.
func Overlaps(a, b Range) bool {
	return b.endsOnOrAfter(a.Start) && a.endsOnOrAfter(b.Start)
}

func (r Range) Overlaps(o Range) bool { return Overlaps(r, o) }

// Contains reports whether d falls within r, bounds included.
func (r Range) Contains(d time.Time) bool {
	return !Day(d).Before(Day(r.Start)) && r.endsOnOrAfter(d)
}

// Check validates the candidate on its own.
func (r Range) Check() error {
	if r.Start.IsZero() {
		return ErrMissingStartDate
	}
	if r.End != nil && Day(*r.End).Before(Day(r.Start)) {
		return ErrInvalidRange
	}
	return nil
}

// Validate applies the full insert contract of a period against the other
// periods of the same owner. Callers updating a period pass existing without it.
func Validate(existing []Range, candidate Range) error {
	if err := candidate.Check(); err != nil {
		return err
	}
	if candidate.Open() {
		for _, e := range existing {
			if e.Open() {
				return ErrOpenPeriodExists
			}
		}
	}
	for _, e := range existing {
		if Overlaps(e, candidate) {
			return ErrOverlapDetected
		}
	}
	return nil
}

// IsValidation reports whether err is one of the range rule violations.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingStartDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrOverlapDetected) ||
		errors.Is(err, ErrOpenPeriodExists)
}
