package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

// DailySummary renders a plain-text report of the active day: open tasks
// ordered by scheduled time, then a line per finished task.
func (s *Store) DailySummary() string {
	now := s.now().In(s.activeDay.Location())
	tasks := s.TasksForActiveDay()

	var open, done []model.Task
	for _, t := range tasks {
		if t.Done() {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		switch {
		case open[i].When == nil:
			return false
		case open[j].When == nil:
			return true
		default:
			return open[i].When.Before(*open[j].When)
		}
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Daily report: %s\n", s.ActiveProject().Name)
	fmt.Fprintf(&b, "Day %s, %d/%d done\n\n", s.ActiveDayKey(), len(done), len(tasks))

	b.WriteString("Open\n")
	if len(open) == 0 {
		b.WriteString("- nothing open\n")
	}
	for _, t := range open {
		b.WriteString(formatOpen(t, now))
	}

	b.WriteString("\nDone\n")
	if len(done) == 0 {
		b.WriteString("- nothing finished yet\n")
	}
	for _, t := range done {
		fmt.Fprintf(&b, "- %s\n", t.Title)
	}
	return strings.TrimSpace(b.String())
}

func formatOpen(t model.Task, now time.Time) string {
	var b strings.Builder
	at := "--:--"
	if t.When != nil {
		at = t.When.In(now.Location()).Format("15:04")
	}
	fmt.Fprintf(&b, "- %s [%s] %s", at, t.Status, t.Title)
	if t.Category != "" {
		fmt.Fprintf(&b, " (%s)", t.Category)
	}
	if t.DueDate != "" {
		if due, err := model.ParseDay(t.DueDate, now.Location()); err == nil {
			today := model.StartOfDay(now)
			switch {
			case due.Before(today):
				fmt.Fprintf(&b, "\n    due %s, overdue", t.DueDate)
			default:
				days := int(due.Sub(today).Hours()/24 + 0.5)
				fmt.Fprintf(&b, "\n    due %s, %d day(s) left", t.DueDate, days)
			}
		}
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n    %s", t.Description)
	}
	b.WriteByte('\n')
	return b.String()
}
