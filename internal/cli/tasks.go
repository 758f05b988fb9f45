package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/planner"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/ui"
)

var (
	errNoTask        = errors.New("no such task")
	errAmbiguousTask = errors.New("ambiguous task id")
)

// whenLayouts are tried in order; the last one is a time on the active day.
var whenLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "15:04"}

// parseWhen reads a timestamp in the active day's location. A bare clock
// time lands on the active day.
func parseWhen(raw string, day time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	loc := day.Location()
	for i, layout := range whenLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err != nil {
			continue
		}
		if i == len(whenLayouts)-1 {
			y, m, d := day.Date()
			t = time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339, \"YYYY-MM-DD HH:MM\" or \"HH:MM\")", raw)
}

// idRefPrefix forces a ref to be read as an id, for prefixes that are all
// digits and would otherwise parse as an index.
const idRefPrefix = "id:"

// resolveTask maps a 1-based index or an id (prefix) onto a task of the
// active day.
func resolveTask(s *planner.Store, ref string) (model.Task, error) {
	tasks := s.TasksForActiveDay()
	if id, ok := strings.CutPrefix(ref, idRefPrefix); ok {
		ref = id
		if ref == "" {
			return model.Task{}, fmt.Errorf("%w: empty id", errNoTask)
		}
	} else if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
		return tasks[n-1], nil
	}
	if t, ok := s.FindTask(ref); ok {
		return t, nil
	}
	var found []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", errNoTask, ref)
	case 1:
		return found[0], nil
	}
	return model.Task{}, fmt.Errorf("%w: %s matches %d tasks", errAmbiguousTask, ref, len(found))
}

func taskArg(s *planner.Store, args []string, cmd string, opt Options) (model.Task, bool) {
	if len(args) < 1 {
		ui.Fail(opt.Stderr, cmd+": missing <task>")
		return model.Task{}, false
	}
	t, err := resolveTask(s, args[0])
	if err != nil {
		ui.Fail(opt.Stderr, cmd+": "+err.Error())
		return model.Task{}, false
	}
	return t, true
}

// ---- ls ----

func doList(s *planner.Store, args []string, opt Options) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	group := fs.Bool("group", opt.Group, "group by status")
	if !parseFlags(fs, args, opt) {
		return exitUsage
	}

	tasks := s.TasksForActiveDay()
	lines := []string{dayHeader(s), ""}
	if len(tasks) == 0 {
		lines = append(lines, ui.Current().Muted.Render("No tasks for this day."))
		ui.Panel(opt.Stdout, lines)
		return exitOK
	}

	if *group {
		index := make(map[string]int, len(tasks))
		for i, t := range tasks {
			index[t.ID] = i + 1
		}
		for _, col := range s.Board() {
			if len(col.Tasks) == 0 {
				continue
			}
			lines = append(lines, ui.Current().StatusStyle(col.Status).Bold(true).Render(string(col.Status)))
			for _, t := range col.Tasks {
				lines = append(lines, taskLine(index[t.ID], t))
			}
		}
	} else {
		for i, t := range tasks {
			lines = append(lines, taskLine(i+1, t))
		}
	}
	lines = append(lines, "", ui.DistributionBar(s.StatusCounts(), 30), ui.Legend(s.StatusCounts()))
	ui.Panel(opt.Stdout, lines)
	return exitOK
}

func dayHeader(s *planner.Store) string {
	th := ui.Current()
	p := s.ActiveProject()
	day := s.ActiveDayKey()
	if s.IsToday() {
		day += " (today)"
	}
	total, done := 0, 0
	for _, c := range s.StatusCounts() {
		total += c.Count
		if c.Status == model.StatusDone {
			done = c.Count
		}
	}
	return fmt.Sprintf("%s  %s  %s", th.Title.Render(p.Name), th.Muted.Render(day), ui.ProgressBar(done, total, 12))
}

func taskLine(n int, t model.Task) string {
	th := ui.Current()
	box := th.Pending.Render(th.BoxUnchecked)
	title := ui.Truncate(t.Title, 48)
	if t.Done() {
		box = th.BoxChecked
		title = th.Done.Render(title)
	}
	line := fmt.Sprintf("%2d. %s %s %s %s", n, box, th.Muted.Render(shortID(t.ID)),
		th.StatusStyle(t.Status).Render("["+string(t.Status)+"]"), title)
	var extra []string
	if t.When != nil {
		extra = append(extra, t.When.Format("15:04"))
	}
	if t.Category != "" {
		extra = append(extra, "#"+t.Category)
	}
	if t.DueDate != "" {
		extra = append(extra, "due "+t.DueDate)
	}
	if len(extra) > 0 {
		line += "  " + th.Muted.Render(strings.Join(extra, " "))
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ---- add ----

func doAdd(s *planner.Store, args []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	desc := fs.String("desc", "", "description")
	when := fs.String("when", "", "scheduled time")
	category := fs.String("category", "", "category")
	due := fs.String("due", "", "due date YYYY-MM-DD")
	if !parseFlags(fs, args, opt) {
		return exitUsage
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		ui.Fail(opt.Stderr, "add: missing title")
		return exitUsage
	}

	var at *time.Time
	if *when != "" {
		t, err := parseWhen(*when, s.ActiveDay())
		if err != nil {
			ui.Fail(opt.Stderr, "add: "+err.Error())
			return exitUsage
		}
		at = &t
	}
	var extra model.Patch
	if *category != "" {
		extra.Category = category
	}
	if *due != "" {
		extra.DueDate = due
	}
	if err := extra.Validate(); err != nil {
		ui.Fail(opt.Stderr, "add: "+err.Error())
		return exitUsage
	}

	t, ok := s.AddTask(title, *desc, at)
	if !ok {
		ui.Fail(opt.Stderr, "add: task not added")
		return exitError
	}
	if !extra.Empty() {
		s.UpdateTask(t.ID, extra)
	}
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Added %s %q to %s", shortID(t.ID), t.Title, s.ActiveDayKey()))
	return exitOK
}

// ---- move / done / rm ----

func doMove(s *planner.Store, args []string, opt Options) int {
	if len(args) != 2 {
		ui.Fail(opt.Stderr, "move: usage: move <task> <status>")
		return exitUsage
	}
	t, ok := taskArg(s, args, "move", opt)
	if !ok {
		return exitUsage
	}
	status, err := model.ParseStatus(args[1])
	if err != nil {
		ui.Fail(opt.Stderr, "move: "+err.Error())
		return exitUsage
	}
	if t.Status == status {
		ui.Note(opt.Stdout, fmt.Sprintf("%q already %s", t.Title, status))
		return exitOK
	}
	s.MoveTask(t.ID, status)
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Moved %q to %s", t.Title, status))
	return exitOK
}

func doToggle(s *planner.Store, args []string, opt Options) int {
	t, ok := taskArg(s, args, "done", opt)
	if !ok {
		return exitUsage
	}
	s.ToggleDone(t.ID)
	if !saved(s, opt) {
		return exitError
	}
	now, _ := s.FindTask(t.ID)
	ui.OK(opt.Stdout, fmt.Sprintf("%q is now %s", now.Title, now.Status))
	return exitOK
}

func doRemove(s *planner.Store, args []string, opt Options) int {
	t, ok := taskArg(s, args, "rm", opt)
	if !ok {
		return exitUsage
	}
	s.RemoveTask(t.ID)
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Removed %q", t.Title))
	return exitOK
}

// ---- edit ----

func doEdit(s *planner.Store, args []string, opt Options) int {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		ui.Fail(opt.Stderr, "edit: usage: edit <task> [--title t] [--desc d] [--when w|none] [--category c] [--due d]")
		return exitUsage
	}
	t, ok := taskArg(s, args, "edit", opt)
	if !ok {
		return exitUsage
	}

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	var patch model.Patch
	var whenRaw string
	fs.Func("title", "new title", func(v string) error { patch.Title = &v; return nil })
	fs.Func("desc", "new description", func(v string) error { patch.Description = &v; return nil })
	fs.Func("category", "new category", func(v string) error { patch.Category = &v; return nil })
	fs.Func("due", "due date YYYY-MM-DD, empty clears", func(v string) error { patch.DueDate = &v; return nil })
	fs.StringVar(&whenRaw, "when", "", "scheduled time, none clears")
	if !parseFlags(fs, args[1:], opt) {
		return exitUsage
	}
	switch strings.ToLower(strings.TrimSpace(whenRaw)) {
	case "":
	case "none":
		patch.ClearWhen = true
	default:
		w, err := parseWhen(whenRaw, s.ActiveDay())
		if err != nil {
			ui.Fail(opt.Stderr, "edit: "+err.Error())
			return exitUsage
		}
		patch.When = &w
	}

	if patch.Empty() {
		ui.Fail(opt.Stderr, "edit: nothing to change")
		return exitUsage
	}
	if err := patch.Validate(); err != nil {
		ui.Fail(opt.Stderr, "edit: "+err.Error())
		return exitUsage
	}
	s.UpdateTask(t.ID, patch)
	if !saved(s, opt) {
		return exitError
	}
	ui.OK(opt.Stdout, fmt.Sprintf("Updated %s", shortID(t.ID)))
	return exitOK
}

// ---- stats / days ----

func doStats(s *planner.Store, opt Options) int {
	counts := s.StatusCounts()
	lines := []string{dayHeader(s), ""}
	for _, c := range counts {
		// pad before styling; escape codes would count toward the width
		label := fmt.Sprintf("%-12s", c.Status)
		lines = append(lines, fmt.Sprintf("%s %3d", ui.Current().StatusStyle(c.Status).Render(label), c.Count))
	}
	lines = append(lines, "", ui.DistributionBar(counts, 30))
	ui.Panel(opt.Stdout, lines)
	return exitOK
}

func doDays(s *planner.Store, opt Options) int {
	days := s.Days()
	if len(days) == 0 {
		fmt.Fprintln(opt.Stdout, ui.Current().Muted.Render("No days yet."))
		return exitOK
	}
	p := s.ActiveProject()
	active := s.ActiveDayKey()
	for _, d := range days {
		marker := " "
		if d == active {
			marker = "*"
		}
		fmt.Fprintf(opt.Stdout, "%s %s  %d\n", marker, d, len(p.TasksByDay[d]))
	}
	return exitOK
}
