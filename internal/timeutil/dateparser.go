// Package timeutil parses the day arguments accepted by tiem.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoRe       = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay resolves input to midnight of a calendar day in now's location.
//
// Valid inputs:
//   - "today", "yesterday"
//   - "3 days ago", "1 day ago"
//   - "2021-12-21" (ISO format, preferred for ambiguous dates)
//   - "21/12/2021" (European format)
func ParseDay(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	loc := now.Location()

	switch input {
	case "":
		return time.Time{}, fmt.Errorf("date cannot be empty (use YYYY-MM-DD, 'today' or 'yesterday')")
	case "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now.AddDate(0, 0, -1)), nil
	}

	if m := daysAgoRe.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number of days: %s", m[1])
		}
		return StartOfDay(now.AddDate(0, 0, -n)), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return t, nil
	}
	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError explains what is missing from a date that almost parsed
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2021-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2021)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD, DD/MM/YYYY, 'today', 'yesterday' or 'N days ago')", input)
	}
}
