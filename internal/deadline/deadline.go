// Package deadline resolves a date-only closing deadline into an absolute
// instant. A civil date D admits proposals through D 23:59:59 in the
// configured timezone; the cutoff is the first disallowed instant.
package deadline

import (
	"fmt"
	"time"
)

const civilDateLayout = "2006-01-02"

type Resolver struct {
	loc *time.Location
}

// NewResolver builds a resolver for the given IANA timezone name.
func NewResolver(tz string) (*Resolver, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load deadline timezone %q: %w", tz, err)
	}

	return &Resolver{loc: loc}, nil
}

// Cutoff returns midnight at the start of the day after the civil date, in
// the resolver's timezone. A submission is admitted while now < Cutoff.
func (r *Resolver) Cutoff(civilDate string) (time.Time, error) {
	day, err := time.ParseInLocation(civilDateLayout, civilDate, r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse closing date %q: %w", civilDate, err)
	}

	return day.AddDate(0, 0, 1), nil
}

// Passed reports whether the deadline for the civil date has passed at now.
func (r *Resolver) Passed(civilDate string, now time.Time) (bool, error) {
	cutoff, err := r.Cutoff(civilDate)
	if err != nil {
		return false, err
	}

	return !now.Before(cutoff), nil
}
