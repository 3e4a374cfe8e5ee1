package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/config"
	"github.com/xolan/tiem/internal/service"
	"github.com/xolan/tiem/internal/timeutil"
	"github.com/xolan/tiem/internal/worklog"
)

// dayExport is the json/yaml shape of `tiem log`.
type dayExport struct {
	Date         string           `json:"date" yaml:"date"`
	Path         string           `json:"path" yaml:"path"`
	Records      []worklog.Record `json:"records" yaml:"records"`
	TotalMinutes int              `json:"total_minutes" yaml:"total_minutes"`
}

// ShowLog prints the records of date (today when empty) in format, falling
// back to the configured log_format when format is empty.
func ShowLog(deps *cli.Deps, date string, format string) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	if format == "" {
		format = services.Config.Get().LogFormat
	}
	format = strings.ToLower(format)
	if !config.IsValidLogFormat(format) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid format '%s'\n", format)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use one of: text, json, yaml")
		deps.Exit(1)
		return
	}

	when, ok := resolveDay(deps, services, date)
	if !ok {
		return
	}
	day, err := services.Log.Day(when)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the daily log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		var fe *worklog.FormatError
		if errors.As(err, &fe) {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'tiem validate' to list every malformed line")
		}
		deps.Exit(1)
		return
	}

	switch format {
	case "json":
		writeJSON(deps, newDayExport(day))
	case "yaml":
		writeYAML(deps, newDayExport(day))
	default:
		writeText(deps, day)
	}
}

// ValidateLog reports the health of the daily file for date (today when empty)
func ValidateLog(deps *cli.Deps, date string) {
	services := loadServices(deps)
	if services == nil {
		return
	}

	when, ok := resolveDay(deps, services, date)
	if !ok {
		return
	}
	health, err := services.Log.Check(when)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate log: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Log file: %s\n", health.Path)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:     %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid records:   %d\n", health.ValidRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Malformed lines: %d\n", len(health.Problems))

	if len(health.Problems) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Malformed lines:")
		for _, fe := range health.Problems {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatFormatError(fe))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if len(health.Problems) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Log file is healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Log file has %d malformed %s\n",
		len(health.Problems), cli.Pluralize("line", len(health.Problems)))
	deps.Exit(1)
}

// resolveDay parses a --date value in the configured timezone. On failure it
// reports the error, exits and returns false.
func resolveDay(deps *cli.Deps, services *service.Services, value string) (time.Time, bool) {
	now := services.Log.Now()
	if value == "" {
		return now, true
	}
	day, err := timeutil.ParseDay(value, now)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", value)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM-DD, DD/MM/YYYY, 'today', 'yesterday' or 'N days ago'")
		deps.Exit(1)
		return time.Time{}, false
	}
	return day, true
}

func newDayExport(day *service.DayLog) dayExport {
	return dayExport{
		Date:         day.Date.Format(worklog.DateLayout),
		Path:         day.Path,
		Records:      day.Records,
		TotalMinutes: day.TotalMinutes,
	}
}

func writeText(deps *cli.Deps, day *service.DayLog) {
	heading := cli.FormatDayForDisplay(day.Date)
	if len(day.Records) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No records for %s\n", heading)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Log for %s:\n", heading)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, r := range day.Records {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(r))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n",
		cli.FormatDuration(day.TotalMinutes), len(day.Records), cli.Pluralize("record", len(day.Records)))
}

func writeJSON(deps *cli.Deps, v dayExport) {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode JSON")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

func writeYAML(deps *cli.Deps, v dayExport) {
	enc := yaml.NewEncoder(deps.Stdout)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	if err := enc.Encode(v); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode YAML")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
