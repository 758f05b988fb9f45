// Package tui is the interactive board: one lane per status for the active
// project and day, with inline editing and a project picker.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/planner"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/schedule"
)

// RolloverMsg tells the board the calendar day changed.
type RolloverMsg struct{}

type mode int

const (
	modeBoard mode = iota
	modeAdd
	modeEdit
	modeNewProject
	modeRename
	modePicker
)

// deleted remembers the last removed task for a single-level undo.
type deleted struct {
	task    model.Task
	index   int
	project string
	day     time.Time
}

// Model is the Bubble Tea model of the board.
type Model struct {
	store *planner.Store
	log   *slog.Logger
	keys  keyMap
	help  help.Model

	width, height int
	col, row      int

	mode    mode
	editID  string // task under the edit box
	ti      textinput.Model
	picker  list.Model
	inErr   string
	flash   string
	onToday bool

	undo *deleted
}

// New builds a board over s.
func New(s *planner.Store, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Projects"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(true)

	m := Model{
		store:   s,
		log:     log,
		keys:    newKeyMap(),
		help:    help.New(),
		width:   100,
		height:  30,
		ti:      ti,
		picker:  picker,
		onToday: s.IsToday(),
	}
	m.clamp()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// ---- selection ----

func (m Model) board() []model.Column { return m.store.Board() }

// clamp keeps the cursor inside the current lanes.
func (m *Model) clamp() {
	cols := m.board()
	m.col = max(0, min(m.col, len(cols)-1))
	n := len(cols[m.col].Tasks)
	m.row = max(0, min(m.row, n-1))
}

func (m Model) selected() (model.Task, bool) {
	cols := m.board()
	if m.col >= len(cols) {
		return model.Task{}, false
	}
	tasks := cols[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.row], true
}

// follow puts the cursor on task id wherever it now lives.
func (m *Model) follow(id string) {
	for ci, col := range m.board() {
		for ri, t := range col.Tasks {
			if t.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
	m.clamp()
}

func (m *Model) dayChanged() {
	m.onToday = m.store.IsToday()
	m.row = 0
	m.clamp()
}

func (m *Model) persisted(msg string) {
	if err := m.store.LastPersistError(); err != nil {
		m.flash = "save failed: " + err.Error()
		return
	}
	m.flash = msg
}

// ---- update ----

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.picker.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case RolloverMsg:
		return m.rollover(), nil
	}

	switch m.mode {
	case modeAdd, modeEdit, modeNewProject, modeRename:
		return m.updateInput(msg)
	case modePicker:
		return m.updatePicker(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.flash = ""
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(k, m.keys.Up):
		m.row--
		m.clamp()
	case key.Matches(k, m.keys.Down):
		m.row++
		m.clamp()
	case key.Matches(k, m.keys.Left):
		m.col--
		m.clamp()
	case key.Matches(k, m.keys.Right):
		m.col++
		m.clamp()

	case key.Matches(k, m.keys.Add):
		return m.openInput(modeAdd, "", "New task title...")
	case key.Matches(k, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			return m.openInput(modeEdit, t.Title, "Task title...")
		}
	case key.Matches(k, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(k, m.keys.Undo):
		m.undoDelete()
	case key.Matches(k, m.keys.Back):
		m.shiftSelected(-1)
	case key.Matches(k, m.keys.Forward):
		m.shiftSelected(1)
	case key.Matches(k, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.ToggleDone(t.ID)
			m.follow(t.ID)
			m.persisted("")
		}

	case key.Matches(k, m.keys.PrevDay):
		m.store.ShiftDay(-1)
		m.dayChanged()
	case key.Matches(k, m.keys.NextDay):
		m.store.ShiftDay(1)
		m.dayChanged()
	case key.Matches(k, m.keys.Today):
		m.store.Today()
		m.dayChanged()

	case key.Matches(k, m.keys.Projects):
		m.openPicker()
	case key.Matches(k, m.keys.NewProject):
		return m.openInput(modeNewProject, "", "Project name...")
	case key.Matches(k, m.keys.Rename):
		return m.openInput(modeRename, m.store.ActiveProject().Name, "Project name...")
	}
	return m, nil
}

func (m *Model) shiftSelected(dir int) {
	t, ok := m.selected()
	if !ok {
		return
	}
	next := t.Status.Next()
	if dir < 0 {
		next = t.Status.Prev()
	}
	if next == t.Status {
		return
	}
	m.store.MoveTask(t.ID, next)
	m.follow(t.ID)
	m.persisted("")
}

func (m *Model) deleteSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}
	index := 0
	for i, c := range m.store.TasksForActiveDay() {
		if c.ID == t.ID {
			index = i
			break
		}
	}
	if !m.store.RemoveTask(t.ID) {
		return
	}
	m.undo = &deleted{task: t, index: index, project: m.store.ActiveProject().ID, day: m.store.ActiveDay()}
	m.clamp()
	m.persisted(fmt.Sprintf("deleted %q (u to undo)", t.Title))
}

// undoDelete restores the last deleted task into the project and day it came
// from, then returns to the current view.
func (m *Model) undoDelete() {
	if m.undo == nil {
		return
	}
	u := m.undo
	m.undo = nil
	project, day := m.store.ActiveProject().ID, m.store.ActiveDay()
	m.store.SelectProject(u.project)
	m.store.SetActiveDay(u.day)
	restored := m.store.RestoreTask(u.task, u.index)
	m.store.SelectProject(project)
	m.store.SetActiveDay(day)
	if !restored {
		m.flash = "nothing to undo"
		return
	}
	m.follow(u.task.ID)
	m.persisted(fmt.Sprintf("restored %q", u.task.Title))
}

// rollover moves a board that was showing today on to the new date. An open
// title edit belongs to the old day and is dropped.
func (m Model) rollover() Model {
	yesterday := model.DayKey(m.store.Now().In(m.store.ActiveDay().Location()).AddDate(0, 0, -1))
	if m.onToday || m.store.ActiveDayKey() == yesterday {
		prev := m.store.ActiveDayKey()
		m.store.Today()
		m.dayChanged()
		if m.mode == modeEdit && m.store.ActiveDayKey() != prev {
			m = m.closeInput()
			m.flash = "day changed, edit cancelled"
		}
		m.log.Info("day rollover", slog.String("day", m.store.ActiveDayKey()))
	}
	return m
}

// ---- inline input ----

func (m Model) openInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.inErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	cmd := m.ti.Focus()
	return m, cmd
}

func (m Model) closeInput() Model {
	m.mode = modeBoard
	m.editID = ""
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m.closeInput(), nil
		case "enter":
			value := strings.TrimSpace(m.ti.Value())
			if value == "" {
				m.inErr = "cannot be empty"
				return m, nil
			}
			m.commitInput(value)
			return m.closeInput(), nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) commitInput(value string) {
	switch m.mode {
	case modeAdd:
		if t, ok := m.store.AddTask(value, "", nil); ok {
			m.follow(t.ID)
			m.persisted("")
		}
	case modeEdit:
		if m.store.UpdateTask(m.editID, model.Patch{Title: &value}) {
			m.follow(m.editID)
			m.persisted("")
		}
	case modeNewProject:
		if p, ok := m.store.CreateProject(value, ""); ok {
			m.dayChanged()
			m.persisted(fmt.Sprintf("created %q", p.Name))
		}
	case modeRename:
		p := m.store.ActiveProject()
		m.store.UpdateProjectMeta(p.ID, value, p.Description)
		m.persisted("")
	}
}

// ---- project picker ----

type projectItem struct {
	project model.Project
	active  bool
}

func (i projectItem) Title() string {
	if i.active {
		return "* " + i.project.Name
	}
	return i.project.Name
}

func (i projectItem) Description() string {
	d := fmt.Sprintf("%d task(s)", i.project.TaskCount())
	if i.project.Description != "" {
		d += " · " + i.project.Description
	}
	return d
}

func (i projectItem) FilterValue() string { return i.project.Name }

func (m *Model) openPicker() {
	active := m.store.ActiveProject().ID
	projects := m.store.Projects()
	items := make([]list.Item, 0, len(projects))
	selected := 0
	for i, p := range projects {
		items = append(items, projectItem{project: p, active: p.ID == active})
		if p.ID == active {
			selected = i
		}
	}
	m.picker.SetItems(items)
	m.picker.SetSize(m.width-4, m.height-4)
	m.picker.Select(selected)
	m.mode = modePicker
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && m.picker.FilterState() != list.Filtering {
		switch k.String() {
		case "esc", "q":
			m.mode = modeBoard
			return m, nil
		case "enter":
			if it, ok := m.picker.SelectedItem().(projectItem); ok {
				m.store.SelectProject(it.project.ID)
				m.row, m.col = 0, 0
				m.clamp()
			}
			m.mode = modeBoard
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// Run shows the board until the user quits. A daily cron job at rolloverAt
// (HH:MM) moves the board to the new day.
func Run(s *planner.Store, opt Options) error {
	p := tea.NewProgram(New(s, opt.Logger), tea.WithAltScreen())

	at := opt.RolloverAt
	if at == "" {
		at = "00:00"
	}
	sched := schedule.New(time.Local)
	if _, err := sched.Daily(at, func() { p.Send(RolloverMsg{}) }); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	_, err := p.Run()
	return err
}

// Options configure Run.
type Options struct {
	RolloverAt string
	Logger     *slog.Logger
}
