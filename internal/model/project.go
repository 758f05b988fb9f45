package model

import "sort"

// Project owns tasks bucketed by day key, newest first within a bucket.
type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TasksByDay  map[string][]Task `json:"tasksByDay"`
}

func NewProject(id, name, description string) Project {
	return Project{
		ID:          id,
		Name:        name,
		Description: description,
		TasksByDay:  map[string][]Task{},
	}
}

// Clone deep-copies the buckets. An empty bucket stays an empty, non-nil slice.
func (p Project) Clone() Project {
	out := p
	out.TasksByDay = make(map[string][]Task, len(p.TasksByDay))
	for day, tasks := range p.TasksByDay {
		cp := make([]Task, len(tasks))
		for i, t := range tasks {
			cp[i] = t.Clone()
		}
		out.TasksByDay[day] = cp
	}
	return out
}

// HasTaskID reports whether any bucket holds a task with id.
func (p Project) HasTaskID(id string) bool {
	for _, tasks := range p.TasksByDay {
		for _, t := range tasks {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

func (p Project) TaskCount() int {
	n := 0
	for _, tasks := range p.TasksByDay {
		n += len(tasks)
	}
	return n
}

// Days lists the bucket keys in calendar order.
func (p Project) Days() []string {
	days := make([]string, 0, len(p.TasksByDay))
	for day := range p.TasksByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
