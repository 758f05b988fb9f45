// Package model holds the planner's domain types and the snapshot codec.
package model

import "time"

// Task is one card on a day's board.
//
// Category and DueDate are optional metadata; a task counts as completed when
// its status is Done.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	When        *time.Time `json:"when"`
	Category    string     `json:"category,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
}

func (t Task) Done() bool { return t.Status == StatusDone }

// Clone copies t, including the When pointer target.
func (t Task) Clone() Task {
	if t.When != nil {
		w := *t.When
		t.When = &w
	}
	return t
}
