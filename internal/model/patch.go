package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBlankTitle = errors.New("title is blank")

// Patch is a partial task update. nil fields are left alone; ClearWhen wins
// over When and unsets the timestamp.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	When        *time.Time
	ClearWhen   bool
	Category    *string
	DueDate     *string
}

// StatusPatch changes only the status.
func StatusPatch(s Status) Patch { return Patch{Status: &s} }

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.When == nil && !p.ClearWhen && p.Category == nil && p.DueDate == nil
}

// Validate rejects values a task may never hold. An empty DueDate clears it.
func (p Patch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(*p.Status))
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrBlankTitle
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := ParseDay(*p.DueDate, time.UTC); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns t with the patch merged in. The id never changes.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	switch {
	case p.ClearWhen:
		t.When = nil
	case p.When != nil:
		w := p.When.Round(0)
		t.When = &w
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t
}
