package planner

import (
	"log/slog"
	"strings"
	"time"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

// bucket returns the active project's index and the active day's key.
func (s *Store) bucket() (int, string) {
	return s.activeIndex(), s.ActiveDayKey()
}

// TasksForActiveDay copies the active day's bucket, newest first.
func (s *Store) TasksForActiveDay() []model.Task {
	pi, key := s.bucket()
	tasks := s.projects[pi].TasksByDay[key]
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// FindTask looks id up in the active day's bucket.
func (s *Store) FindTask(id string) (model.Task, bool) {
	pi, key := s.bucket()
	for _, t := range s.projects[pi].TasksByDay[key] {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

// AddTask puts a new Todo task at the head of the active day's bucket.
// A title that trims to nothing is a no-op.
func (s *Store) AddTask(title, description string, when *time.Time) (model.Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, false
	}
	pi, key := s.bucket()
	t := model.Task{
		ID:          s.uniqueTaskID(pi),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      model.StatusTodo,
	}
	if when != nil {
		// monotonic reading does not survive a round trip
		w := when.Round(0)
		t.When = &w
	}
	p := &s.projects[pi]
	current := p.TasksByDay[key]
	bucket := make([]model.Task, 0, len(current)+1)
	bucket = append(bucket, t)
	bucket = append(bucket, current...)
	p.TasksByDay[key] = bucket
	s.mutated("task added", slog.String("project", p.ID), slog.String("day", key), slog.String("task", t.ID))
	return t.Clone(), true
}

// UpdateTask merges patch into the task with id in the active day's bucket.
// Tasks on other days are out of reach; an empty or invalid patch is a no-op.
// Changing When never moves the task to another bucket.
func (s *Store) UpdateTask(id string, patch model.Patch) bool {
	if patch.Empty() {
		return false
	}
	if err := patch.Validate(); err != nil {
		s.log.Debug("task patch rejected", slog.String("task", id), slog.Any("err", err))
		return false
	}
	pi, key := s.bucket()
	tasks := s.projects[pi].TasksByDay[key]
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = patch.Apply(tasks[i])
			s.mutated("task updated", slog.String("project", s.projects[pi].ID), slog.String("day", key), slog.String("task", id))
			return true
		}
	}
	return false
}

// MoveTask sets the status of id.
func (s *Store) MoveTask(id string, status model.Status) bool {
	return s.UpdateTask(id, model.StatusPatch(status))
}

// ToggleDone flips id between Done and Todo.
func (s *Store) ToggleDone(id string) bool {
	t, ok := s.FindTask(id)
	if !ok {
		return false
	}
	next := model.StatusDone
	if t.Done() {
		next = model.StatusTodo
	}
	return s.MoveTask(id, next)
}

// RemoveTask drops id from the active day's bucket. The bucket itself stays,
// possibly empty.
func (s *Store) RemoveTask(id string) bool {
	pi, key := s.bucket()
	p := &s.projects[pi]
	tasks, ok := p.TasksByDay[key]
	if !ok {
		return false
	}
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false
	}
	p.TasksByDay[key] = kept
	s.mutated("task removed", slog.String("project", p.ID), slog.String("day", key), slog.String("task", id))
	return true
}

// RestoreTask puts a previously removed task back into the active day's
// bucket at index, clamped to the bucket. A task whose id is already taken in
// the project is refused.
func (s *Store) RestoreTask(t model.Task, index int) bool {
	pi, key := s.bucket()
	p := &s.projects[pi]
	if t.ID == "" || !t.Status.Valid() || p.HasTaskID(t.ID) {
		return false
	}
	current := p.TasksByDay[key]
	index = max(0, min(index, len(current)))
	bucket := make([]model.Task, 0, len(current)+1)
	bucket = append(bucket, current[:index]...)
	bucket = append(bucket, t.Clone())
	bucket = append(bucket, current[index:]...)
	p.TasksByDay[key] = bucket
	s.mutated("task restored", slog.String("project", p.ID), slog.String("day", key), slog.String("task", t.ID))
	return true
}

// StatusCounts counts the active day's tasks per status, in board order,
// zeros included.
func (s *Store) StatusCounts() []model.StatusCount {
	pi, key := s.bucket()
	return model.CountByStatus(s.projects[pi].TasksByDay[key])
}

// StatusCountMap is StatusCounts keyed by status.
func (s *Store) StatusCountMap() map[model.Status]int {
	counts := s.StatusCounts()
	out := make(map[model.Status]int, len(counts))
	for _, c := range counts {
		out[c.Status] = c.Count
	}
	return out
}

// Board groups the active day's tasks into status columns.
func (s *Store) Board() []model.Column {
	pi, key := s.bucket()
	return model.GroupByStatus(s.projects[pi].TasksByDay[key])
}

func (s *Store) uniqueTaskID(pi int) string {
	for {
		id := s.newID()
		if id != "" && !s.projects[pi].HasTaskID(id) {
			return id
		}
	}
}
