package model

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusTesting    Status = "Testing"
	StatusDone       Status = "Done"
)

var ErrInvalidStatus = errors.New("invalid status")

var statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusTesting, StatusDone}

// Statuses returns the enumeration in board order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Index is the column position of s, or -1.
func (s Status) Index() int {
	for i, v := range statuses {
		if s == v {
			return i
		}
	}
	return -1
}

// Next and Prev step along the board, stopping at the edges.
func (s Status) Next() Status {
	i := s.Index()
	if i < 0 || i == len(statuses)-1 {
		return s
	}
	return statuses[i+1]
}

func (s Status) Prev() Status {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return statuses[i-1]
}

// ParseStatus accepts the canonical names case-insensitively, plus the
// compact spellings typed on a command line ("inprogress", "in-progress", "todo").
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	for _, v := range statuses {
		if strings.ReplaceAll(strings.ToLower(string(v)), " ", "") == norm {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return []byte(s), nil
}

// UnmarshalText only admits the exact canonical names; persisted state is
// never written any other way.
func (s *Status) UnmarshalText(b []byte) error {
	v := Status(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(b))
	}
	*s = v
	return nil
}
