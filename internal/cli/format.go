// Package cli provides the CLI presentation layer for the tiem application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"time"

	"github.com/xolan/tiem/internal/worklog"
)

// maxContentWidth is how much of a malformed line is echoed back.
const maxContentWidth = 50

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatElapsedTime formats a duration as human-readable elapsed time
// Examples: "5m", "1h 23m", "2h"
func FormatElapsedTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return FormatDuration(int(d.Minutes()))
}

// FormatTimerStartTime formats the timer start time relative to now
func FormatTimerStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("15:04")

	if SameDay(startedAt, now) {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}

// FormatRecord formats a log record for display
// Example: "09:00-09:30  standup (30m)"
func FormatRecord(r worklog.Record) string {
	return fmt.Sprintf("%s-%s  %s (%s)", r.Started, r.Ended, r.Task, FormatDuration(r.DurationMinutes()))
}

// FormatDayForDisplay formats a date for headings
func FormatDayForDisplay(day time.Time) string {
	return day.Format("Mon, Jan 2, 2006")
}

// FormatFormatError formats a malformed log line into a human-readable string
func FormatFormatError(fe *worklog.FormatError) string {
	content := fe.Content
	if len(content) > maxContentWidth {
		content = content[:maxContentWidth-3] + "..."
	}
	return fmt.Sprintf("  Line %d: %q (error: %s)", fe.Line, content, fe.Reason)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// SameDay reports whether a and b fall on the same calendar day in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
