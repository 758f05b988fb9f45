package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	DefaultProjectName        = "My First Project"
	DefaultProjectDescription = "Daily planner for my tasks."
)

var (
	ErrEmptySnapshot   = errors.New("snapshot holds no projects")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// EncodeSnapshot serializes the whole project collection.
func EncodeSnapshot(projects []Project) ([]byte, error) {
	b, err := json.Marshal(projects)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a persisted collection and checks the invariants a
// running store relies on: at least one project, ids present, statuses valid
// and task ids unique per project.
func DecodeSnapshot(data []byte) ([]Project, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySnapshot
	}
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %w", ErrInvalidSnapshot, err)
	}
	if len(projects) == 0 {
		return nil, ErrEmptySnapshot
	}
	seenProjects := make(map[string]bool, len(projects))
	for i := range projects {
		p := &projects[i]
		if p.ID == "" {
			return nil, fmt.Errorf("%w: project %d has no id", ErrInvalidSnapshot, i)
		}
		if seenProjects[p.ID] {
			return nil, fmt.Errorf("%w: duplicate project id %q", ErrInvalidSnapshot, p.ID)
		}
		seenProjects[p.ID] = true
		if p.TasksByDay == nil {
			p.TasksByDay = map[string][]Task{}
		}
		seenTasks := map[string]bool{}
		for day, tasks := range p.TasksByDay {
			if tasks == nil {
				p.TasksByDay[day] = []Task{}
			}
			for _, t := range tasks {
				if t.ID == "" {
					return nil, fmt.Errorf("%w: task without id in %s/%s", ErrInvalidSnapshot, p.ID, day)
				}
				if !t.Status.Valid() {
					return nil, fmt.Errorf("%w: task %q: %w", ErrInvalidSnapshot, t.ID, ErrInvalidStatus)
				}
				if seenTasks[t.ID] {
					return nil, fmt.Errorf("%w: duplicate task id %q in project %q", ErrInvalidSnapshot, t.ID, p.ID)
				}
				seenTasks[t.ID] = true
			}
		}
	}
	return projects, nil
}
