package model

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status Status
	Count  int
}

// CountByStatus counts tasks per status in board order, zeros included.
func CountByStatus(tasks []Task) []StatusCount {
	out := make([]StatusCount, len(statuses))
	for i, s := range statuses {
		out[i].Status = s
	}
	for _, t := range tasks {
		if i := t.Status.Index(); i >= 0 {
			out[i].Count++
		}
	}
	return out
}

// Column is one status lane of the board.
type Column struct {
	Status Status
	Tasks  []Task
}

// GroupByStatus splits tasks into the five lanes, keeping their order.
func GroupByStatus(tasks []Task) []Column {
	out := make([]Column, len(statuses))
	for i, s := range statuses {
		out[i] = Column{Status: s, Tasks: []Task{}}
	}
	for _, t := range tasks {
		if i := t.Status.Index(); i >= 0 {
			out[i].Tasks = append(out[i].Tasks, t.Clone())
		}
	}
	return out
}
