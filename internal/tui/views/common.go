// Package views holds the tab views of the tiem TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/xolan/tiem/internal/cli"
	"github.com/xolan/tiem/internal/tui/ui"
	"github.com/xolan/tiem/internal/worklog"
)

// minTaskWidth keeps tasks readable on narrow terminals.
const minTaskWidth = 20

// RecordRenderOptions configures how records are rendered
type RecordRenderOptions struct {
	Width  int // available width
	Cursor int // highlighted record, -1 for none
}

// RenderRecordList renders records as aligned "start-end  task  duration" rows
func RenderRecordList(records []worklog.Record, styles ui.Styles, opts RecordRenderOptions) string {
	if len(records) == 0 {
		return ""
	}

	taskWidth := 0
	for _, r := range records {
		taskWidth = max(taskWidth, len([]rune(r.Task)))
	}
	// 13 for the time column, 10 for the duration, 2 separators
	taskWidth = min(taskWidth, max(opts.Width-25, minTaskWidth))

	var b strings.Builder
	for i, r := range records {
		task := truncate(r.Task, taskWidth)
		line := fmt.Sprintf("%s %s %s",
			styles.RecordTime.Render(fmt.Sprintf("%s-%s", r.Started, r.Ended)),
			styles.RecordTask.Render(fmt.Sprintf("%-*s", taskWidth, task)),
			styles.RecordDuration.Render(cli.FormatDuration(r.DurationMinutes())))
		if i == opts.Cursor {
			line = styles.RecordSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
