// Package period resolves a reporting scope into a half-open date interval.
// Every consumer (vendor reports, customer reports, bills, sales filters)
// goes through Resolve so the window math lives in exactly one place.
package period

import (
	"fmt"
	"time"
)

type Scope string

const (
	ScopeDaily   Scope = "daily"
	ScopeWeekly  Scope = "weekly"
	ScopeMonthly Scope = "monthly"
	ScopeYearly  Scope = "yearly"
	ScopeAll     Scope = "all"
	ScopeCustom  Scope = "custom"
)

// Sentinel bounds for ScopeAll. Wide enough to cover any stored record.
var (
	allStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	allEnd   = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Range is a half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive start,
// exclusive end).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ParseScope validates a scope string from a query parameter. An empty
// string defaults to daily, matching the old behavior clients rely on.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeDaily, ScopeWeekly, ScopeMonthly, ScopeYearly, ScopeAll, ScopeCustom:
		return Scope(s), nil
	case "":
		return ScopeDaily, nil
	}
	return "", fmt.Errorf("unknown period scope %q", s)
}

// FromQuery resolves the usual pair of query parameters: a scope string
// and an optional "YYYY-MM-DD" date. A date with no scope (or with
// scope=custom) selects that single day; otherwise the scope is anchored
// at now.
func FromQuery(scopeStr, dateStr string, now time.Time) (Range, error) {
	if dateStr != "" {
		d, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
		if scopeStr == "" || Scope(scopeStr) == ScopeCustom {
			return Resolve(ScopeCustom, d)
		}
		now = d
	}
	scope, err := ParseScope(scopeStr)
	if err != nil {
		return Range{}, err
	}
	return Resolve(scope, now)
}

// Resolve returns the interval for scope anchored at ref, in ref's location.
// ScopeCustom means the single calendar day of ref itself.
func Resolve(scope Scope, ref time.Time) (Range, error) {
	loc := ref.Location()
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	switch scope {
	case ScopeDaily, ScopeCustom:
		return Range{Start: midnight, End: midnight.AddDate(0, 0, 1)}, nil
	case ScopeWeekly:
		// Most recent Sunday at midnight; a Sunday ref starts its own week.
		start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return Range{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case ScopeMonthly:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case ScopeYearly:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, nil
	case ScopeAll:
		return Range{Start: allStart, End: allEnd}, nil
	}
	return Range{}, fmt.Errorf("unknown period scope %q", scope)
}
