// Package planner is the state model behind the board: projects holding
// tasks bucketed by day, the active project and day, and the query and
// mutation operations over them. Every effective mutation writes the whole
// project collection back to the store's Slot.
//
// A Store is not safe for concurrent use; the UI that owns it drives it from
// one goroutine.
package planner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

// Store owns the planner state and its persistence.
type Store struct {
	slot  Slot
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	projects  []model.Project
	projectID string
	activeDay time.Time

	lastPersistErr error
	dirty          bool
	closed         bool
}

// Open loads the snapshot from slot. An empty, unreadable or invalid slot
// yields the single default project; the cause is logged, never returned.
func Open(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		log:   discardLogger(),
		now:   time.Now,
		newID: defaultIDGenerator,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.activeDay = model.StartOfDay(s.now())
	s.projects = s.load()
	s.projectID = s.projects[0].ID
	return s
}

func (s *Store) load() []model.Project {
	data, err := s.slot.Read()
	if err != nil {
		s.log.Warn("read planner state; starting fresh", slog.Any("err", err))
		return []model.Project{s.defaultProject()}
	}
	projects, err := model.DecodeSnapshot(data)
	if err != nil {
		if !errors.Is(err, model.ErrEmptySnapshot) {
			s.log.Warn("decode planner state; starting fresh", slog.Any("err", err))
		}
		return []model.Project{s.defaultProject()}
	}
	s.log.Debug("planner state loaded", slog.Int("projects", len(projects)))
	return projects
}

func (s *Store) defaultProject() model.Project {
	return model.NewProject(s.newID(), model.DefaultProjectName, model.DefaultProjectDescription)
}

// ---------------------------------------------------
// Lifecycle
// ---------------------------------------------------

// Persist writes the full snapshot to the slot.
func (s *Store) Persist() error {
	data, err := model.EncodeSnapshot(s.projects)
	if err == nil {
		err = s.slot.Write(data)
	}
	if err != nil {
		s.lastPersistErr = fmt.Errorf("persist: %w", err)
		s.log.Error("persist planner state", slog.Any("err", err))
		return s.lastPersistErr
	}
	s.lastPersistErr = nil
	s.dirty = false
	return nil
}

// LastPersistError is the error of the most recent write, or nil.
func (s *Store) LastPersistError() error { return s.lastPersistErr }

// Close persists unsaved changes and closes the slot when it holds resources.
// A session that never mutated leaves the slot untouched. Calling Close twice
// is harmless.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.dirty || s.lastPersistErr != nil {
		err = s.Persist()
	}
	if c, ok := s.slot.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close slot: %w", cerr)
		}
	}
	return err
}

func (s *Store) mutated(op string, attrs ...any) {
	s.log.Debug(op, attrs...)
	s.dirty = true
	_ = s.Persist()
}

// ---------------------------------------------------
// Projects
// ---------------------------------------------------

// Projects returns a deep copy of every project, in creation order.
func (s *Store) Projects() []model.Project {
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// ActiveProject is the selected project, or the first one when the
// selection no longer resolves.
func (s *Store) ActiveProject() model.Project {
	return s.projects[s.activeIndex()].Clone()
}

func (s *Store) activeIndex() int {
	if i := s.projectIndex(s.projectID); i >= 0 {
		return i
	}
	return 0
}

func (s *Store) projectIndex(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindProject resolves a project by id, then by case-insensitive name.
func (s *Store) FindProject(ref string) (model.Project, bool) {
	if i := s.projectIndex(ref); i >= 0 {
		return s.projects[i].Clone(), true
	}
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			return p.Clone(), true
		}
	}
	return model.Project{}, false
}

// SelectProject makes id the active project. Unknown ids are ignored.
func (s *Store) SelectProject(id string) bool {
	if s.projectIndex(id) < 0 {
		return false
	}
	s.projectID = id
	return true
}

// CreateProject appends an empty project and selects it. A blank name is a
// no-op.
func (s *Store) CreateProject(name, description string) (model.Project, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, false
	}
	p := model.NewProject(s.uniqueProjectID(), name, strings.TrimSpace(description))
	s.projects = append(s.projects, p)
	s.projectID = p.ID
	s.mutated("project created", slog.String("project", p.ID))
	return p.Clone(), true
}

// UpdateProjectMeta replaces name and description, leaving tasks alone.
func (s *Store) UpdateProjectMeta(id, name, description string) bool {
	i := s.projectIndex(id)
	if i < 0 {
		return false
	}
	s.projects[i].Name = name
	s.projects[i].Description = description
	s.mutated("project updated", slog.String("project", id))
	return true
}

func (s *Store) uniqueProjectID() string {
	for {
		id := s.newID()
		if id != "" && s.projectIndex(id) < 0 {
			return id
		}
	}
}

// ---------------------------------------------------
// Active day
// ---------------------------------------------------

// SetActiveDay picks the bucket later task calls work on. Only the calendar
// date of day, in day's location, matters.
func (s *Store) SetActiveDay(day time.Time) {
	s.activeDay = model.StartOfDay(day)
}

func (s *Store) ActiveDay() time.Time { return s.activeDay }

func (s *Store) ActiveDayKey() string { return model.DayKey(s.activeDay) }

// ShiftDay moves the active day by n calendar days.
func (s *Store) ShiftDay(n int) {
	s.activeDay = s.activeDay.AddDate(0, 0, n)
}

// Now reads the store's clock.
func (s *Store) Now() time.Time { return s.now() }

// Today resets the active day to the clock's current date.
func (s *Store) Today() {
	s.activeDay = model.StartOfDay(s.now())
}

// IsToday reports whether the active day is the clock's current date.
func (s *Store) IsToday() bool {
	return model.DayKey(s.now().In(s.activeDay.Location())) == s.ActiveDayKey()
}

// Days lists the active project's bucket keys in calendar order.
func (s *Store) Days() []string {
	return s.projects[s.activeIndex()].Days()
}
