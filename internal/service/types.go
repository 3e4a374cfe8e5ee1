// Package service provides the business logic layer for the tiem application.
// It composes the status and worklog stores, providing one API for both the
// CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/tiem/internal/status"
	"github.com/xolan/tiem/internal/worklog"
)

// TimerStatus represents the current state of the timer
type TimerStatus struct {
	Running     bool
	Status      status.Status
	ElapsedTime time.Duration
}

// DayLog contains the records of one daily file
type DayLog struct {
	Date         time.Time
	Path         string
	Records      []worklog.Record
	TotalMinutes int
}
