package service

import (
	"fmt"
	"time"

	"github.com/xolan/tiem/internal/worklog"
)

// LogService reads the daily log files
type LogService struct {
	log *worklog.Store
	now func() time.Time
}

// NewLogService creates a new LogService
func NewLogService(logStore *worklog.Store, now func() time.Time) *LogService {
	if now == nil {
		now = time.Now
	}
	return &LogService{log: logStore, now: now}
}

// Today returns today's records
func (s *LogService) Today() (*DayLog, error) {
	return s.Day(s.now())
}

// Day returns the records logged on the given date
func (s *LogService) Day(date time.Time) (*DayLog, error) {
	records, err := s.log.ReadDay(date)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	total := 0
	for _, r := range records {
		total += r.DurationMinutes()
	}

	return &DayLog{
		Date:         date,
		Path:         s.log.FileFor(date),
		Records:      records,
		TotalMinutes: total,
	}, nil
}

// Check reports malformed lines in the file for date
func (s *LogService) Check(date time.Time) (worklog.Health, error) {
	return s.log.Check(date)
}

// Now returns the current time in the configured timezone
func (s *LogService) Now() time.Time {
	return s.now()
}

// Dir returns the log directory
func (s *LogService) Dir() string {
	return s.log.Dir()
}
