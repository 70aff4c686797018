package tracker

import "github.com/etnz/tracker/date"

// Date is a day-granularity calendar date, re-exported for callers'
// convenience.
type Date = date.Date

// Today returns the current date in local time.
func Today() Date { return date.Today() }

// ParseDate parses a strict "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) { return date.Parse(s) }

// MustParseDate parses a strict "YYYY-MM-DD" date and panics on failure.
// For tests and literals.
func MustParseDate(s string) Date { return date.MustParse(s) }
