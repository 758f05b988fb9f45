package planner

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

var march1 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, slot Slot) *Store {
	t.Helper()
	if slot == nil {
		slot = NewMemorySlot(nil)
	}
	return Open(slot,
		WithClock(func() time.Time { return march1 }),
		WithIDGenerator(seqIDs()),
	)
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

type failingSlot struct {
	data     []byte
	readErr  error
	writeErr error
}

func (f *failingSlot) Read() ([]byte, error) { return f.data, f.readErr }
func (f *failingSlot) Write([]byte) error    { return f.writeErr }

func TestOpen_FreshStoreHasDefaultProject(t *testing.T) {
	s := newTestStore(t, nil)

	projects := s.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, model.DefaultProjectName, projects[0].Name)
	assert.Equal(t, model.DefaultProjectDescription, projects[0].Description)
	assert.Empty(t, projects[0].TasksByDay)
	assert.NotNil(t, projects[0].TasksByDay)
	assert.Equal(t, projects[0].ID, s.ActiveProject().ID)
	assert.Equal(t, "2024-03-01", s.ActiveDayKey())
}

func TestOpen_FallsBackOnBadState(t *testing.T) {
	cases := map[string]Slot{
		"garbage":        NewMemorySlot([]byte("{not json")),
		"empty array":    NewMemorySlot([]byte("[]")),
		"blank":          NewMemorySlot([]byte("  \n")),
		"unknown status": NewMemorySlot([]byte(`[{"id":"p","name":"x","tasksByDay":{"2024-03-01":[{"id":"t","title":"a","status":"Blocked","when":null}]}}]`)),
		"read error":     &failingSlot{readErr: errors.New("disk gone")},
	}
	for name, slot := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, slot)
			projects := s.Projects()
			require.Len(t, projects, 1)
			assert.Equal(t, model.DefaultProjectName, projects[0].Name)
		})
	}
}

func TestOpen_LoadsPersistedProjects(t *testing.T) {
	first := newTestStore(t, nil)
	first.CreateProject("Side project", "weekends")
	first.AddTask("Plan", "", nil)
	data, err := first.slot.Read()
	require.NoError(t, err)

	second := newTestStore(t, NewMemorySlot(data))
	assert.Equal(t, first.Projects(), second.Projects())
	// selection is view state and resets to the first project
	assert.Equal(t, model.DefaultProjectName, second.ActiveProject().Name)
}

func TestAddTask_NewestFirstWithTodoStatus(t *testing.T) {
	s := newTestStore(t, nil)
	for _, title := range []string{"one", "two", "three"} {
		_, ok := s.AddTask(title, "", nil)
		require.True(t, ok)
	}

	got := s.TasksForActiveDay()
	assert.Equal(t, []string{"three", "two", "one"}, titles(got))
	for _, task := range got {
		assert.Equal(t, model.StatusTodo, task.Status)
		assert.NotEmpty(t, task.ID)
	}
}

func TestAddTask_AThenB(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddTask("A", "", nil)
	s.AddTask("B", "", nil)
	assert.Equal(t, []string{"B", "A"}, titles(s.TasksForActiveDay()))
}

func TestAddTask_WriteReportScenario(t *testing.T) {
	s := newTestStore(t, nil)
	s.SetActiveDay(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	_, ok := s.AddTask("Write report", "", nil)
	require.True(t, ok)

	got := s.TasksForActiveDay()
	require.Len(t, got, 1)
	assert.Equal(t, "Write report", got[0].Title)
	assert.Equal(t, model.StatusTodo, got[0].Status)
	assert.Nil(t, got[0].When)
}

func TestAddTask_BlankTitleIsNoop(t *testing.T) {
	slot := NewMemorySlot(nil)
	s := newTestStore(t, slot)
	s.AddTask("keep", "", nil)
	writes := slot.Writes()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := s.AddTask(title, "desc", nil)
		assert.False(t, ok)
	}
	assert.Len(t, s.TasksForActiveDay(), 1)
	assert.Equal(t, writes, slot.Writes())
}

func TestAddTask_TrimsAndKeepsWhen(t *testing.T) {
	s := newTestStore(t, nil)
	when := time.Date(2024, 3, 1, 14, 15, 0, 0, time.UTC)

	task, ok := s.AddTask("  Call Bob ", "  about lunch ", &when)
	require.True(t, ok)
	assert.Equal(t, "Call Bob", task.Title)
	assert.Equal(t, "about lunch", task.Description)
	require.NotNil(t, task.When)
	assert.True(t, task.When.Equal(when))
}

func TestAddTask_IDsUniqueWithinProject(t *testing.T) {
	ids := []string{"p", "dup", "dup", "dup", "fresh"}
	n := 0
	s := Open(NewMemorySlot(nil),
		WithClock(func() time.Time { return march1 }),
		WithIDGenerator(func() string { id := ids[n]; n++; return id }),
	)
	a, _ := s.AddTask("a", "", nil)
	s.ShiftDay(1)
	b, _ := s.AddTask("b", "", nil)
	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "fresh", b.ID)
}

func TestAddTask_BucketIsActiveDay(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddTask("today", "", nil)
	s.ShiftDay(1)
	assert.Empty(t, s.TasksForActiveDay())
	s.AddTask("tomorrow", "", nil)

	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, s.Days())
	s.Today()
	assert.Equal(t, []string{"today"}, titles(s.TasksForActiveDay()))
	assert.True(t, s.IsToday())
}

func TestUpdateTask_StatusOnlyChangesStatus(t *testing.T) {
	s := newTestStore(t, nil)
	when := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	a, _ := s.AddTask("A", "first", &when)
	b, _ := s.AddTask("B", "second", nil)
	before := s.TasksForActiveDay()

	require.True(t, s.UpdateTask(a.ID, model.StatusPatch(model.StatusDone)))

	after := s.TasksForActiveDay()
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0], "other task untouched")
	want := before[1]
	want.Status = model.StatusDone
	assert.Equal(t, want, after[1])
	assert.Equal(t, b.ID, after[0].ID)
}

func TestUpdateTask_PartialFields(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.AddTask("A", "desc", nil)
	when := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	cat := "Work"
	due := "2024-03-10"

	require.True(t, s.UpdateTask(a.ID, model.Patch{When: &when, Category: &cat, DueDate: &due}))
	got, ok := s.FindTask(a.ID)
	require.True(t, ok)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, "Work", got.Category)
	assert.Equal(t, "2024-03-10", got.DueDate)
	require.NotNil(t, got.When)
	assert.True(t, got.When.Equal(when))

	// a later when does not move the task out of today's bucket
	assert.Equal(t, []string{"2024-03-01"}, s.Days())

	require.True(t, s.UpdateTask(a.ID, model.Patch{ClearWhen: true}))
	got, _ = s.FindTask(a.ID)
	assert.Nil(t, got.When)
}

func TestUpdateTask_Noops(t *testing.T) {
	slot := NewMemorySlot(nil)
	s := newTestStore(t, slot)
	a, _ := s.AddTask("A", "", nil)
	writes := slot.Writes()
	before := s.Projects()

	bad := model.Status("Blocked")
	blank := "  "
	badDay := "03/01/2024"

	assert.False(t, s.UpdateTask("missing", model.StatusPatch(model.StatusDone)))
	assert.False(t, s.UpdateTask(a.ID, model.Patch{}))
	assert.False(t, s.UpdateTask(a.ID, model.Patch{Status: &bad}))
	assert.False(t, s.UpdateTask(a.ID, model.Patch{Title: &blank}))
	assert.False(t, s.UpdateTask(a.ID, model.Patch{DueDate: &badDay}))

	s.ShiftDay(1)
	assert.False(t, s.UpdateTask(a.ID, model.StatusPatch(model.StatusDone)), "other day's bucket is out of reach")

	assert.Equal(t, before, s.Projects())
	assert.Equal(t, writes, slot.Writes())
}

func TestMoveAndToggle(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.AddTask("A", "", nil)

	require.True(t, s.MoveTask(a.ID, model.StatusReview))
	got, _ := s.FindTask(a.ID)
	assert.Equal(t, model.StatusReview, got.Status)

	require.True(t, s.ToggleDone(a.ID))
	got, _ = s.FindTask(a.ID)
	assert.True(t, got.Done())

	require.True(t, s.ToggleDone(a.ID))
	got, _ = s.FindTask(a.ID)
	assert.Equal(t, model.StatusTodo, got.Status)

	assert.False(t, s.ToggleDone("missing"))
}

func TestRemoveTask_Idempotent(t *testing.T) {
	slot := NewMemorySlot(nil)
	s := newTestStore(t, slot)
	a, _ := s.AddTask("A", "", nil)
	s.AddTask("B", "", nil)

	require.True(t, s.RemoveTask(a.ID))
	state := s.Projects()
	writes := slot.Writes()

	assert.False(t, s.RemoveTask(a.ID))
	assert.Equal(t, state, s.Projects())
	assert.Equal(t, writes, slot.Writes())
	assert.Equal(t, []string{"B"}, titles(s.TasksForActiveDay()))
}

func TestRemoveTask_LeavesEmptyBucket(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.AddTask("A", "", nil)
	require.True(t, s.RemoveTask(a.ID))

	p := s.ActiveProject()
	bucket, ok := p.TasksByDay["2024-03-01"]
	require.True(t, ok)
	assert.NotNil(t, bucket)
	assert.Empty(t, bucket)
	assert.False(t, s.RemoveTask("never-there"))
}

func TestStatusCounts_SumMatchesTasks(t *testing.T) {
	s := newTestStore(t, nil)
	assertCounts := func() {
		t.Helper()
		counts := s.StatusCounts()
		require.Len(t, counts, 5)
		sum := 0
		for i, c := range counts {
			assert.Equal(t, model.Statuses()[i], c.Status)
			sum += c.Count
		}
		assert.Equal(t, len(s.TasksForActiveDay()), sum)
	}

	assertCounts()
	a, _ := s.AddTask("A", "", nil)
	b, _ := s.AddTask("B", "", nil)
	s.AddTask("C", "", nil)
	assertCounts()
	s.MoveTask(a.ID, model.StatusTesting)
	s.MoveTask(b.ID, model.StatusDone)
	assertCounts()
	s.RemoveTask(b.ID)
	assertCounts()

	m := s.StatusCountMap()
	assert.Equal(t, 1, m[model.StatusTodo])
	assert.Equal(t, 1, m[model.StatusTesting])
	assert.Equal(t, 0, m[model.StatusDone])
}

func TestBoard_GroupsByStatus(t *testing.T) {
	s := newTestStore(t, nil)
	a, _ := s.AddTask("A", "", nil)
	s.AddTask("B", "", nil)
	c, _ := s.AddTask("C", "", nil)
	s.MoveTask(a.ID, model.StatusDone)
	s.MoveTask(c.ID, model.StatusDone)

	board := s.Board()
	require.Len(t, board, 5)
	assert.Equal(t, []string{"B"}, titles(board[0].Tasks))
	assert.Empty(t, board[1].Tasks)
	assert.Equal(t, model.StatusDone, board[4].Status)
	assert.Equal(t, []string{"C", "A"}, titles(board[4].Tasks))
}

func TestProjects_CreateSelectUpdate(t *testing.T) {
	s := newTestStore(t, nil)
	first := s.ActiveProject()

	_, ok := s.CreateProject("  ", "x")
	assert.False(t, ok)
	assert.Len(t, s.Projects(), 1)

	p, ok := s.CreateProject("Garden", "veg patch")
	require.True(t, ok)
	assert.Equal(t, p.ID, s.ActiveProject().ID)
	assert.Empty(t, p.TasksByDay)

	s.AddTask("Water tomatoes", "", nil)
	require.True(t, s.UpdateProjectMeta(p.ID, "Allotment", "plot 12"))
	got := s.ActiveProject()
	assert.Equal(t, "Allotment", got.Name)
	assert.Equal(t, "plot 12", got.Description)
	assert.Equal(t, 1, got.TaskCount())
	assert.False(t, s.UpdateProjectMeta("missing", "a", "b"))

	assert.False(t, s.SelectProject("missing"))
	assert.Equal(t, p.ID, s.ActiveProject().ID)
	require.True(t, s.SelectProject(first.ID))
	assert.Empty(t, s.TasksForActiveDay())

	found, ok := s.FindProject("allotment")
	require.True(t, ok)
	assert.Equal(t, p.ID, found.ID)
}

func TestProjects_SnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddTask("A", "", nil)
	snap := s.Projects()
	snap[0].Name = "mutated"
	snap[0].TasksByDay["2024-03-01"][0].Title = "mutated"

	assert.Equal(t, model.DefaultProjectName, s.ActiveProject().Name)
	assert.Equal(t, "A", s.TasksForActiveDay()[0].Title)
}

func TestPersist_EveryMutationWritesSnapshot(t *testing.T) {
	slot := NewMemorySlot(nil)
	s := newTestStore(t, slot)
	assert.Equal(t, 0, slot.Writes())

	a, _ := s.AddTask("A", "", nil)
	s.MoveTask(a.ID, model.StatusDone)
	s.CreateProject("P", "")
	s.UpdateProjectMeta(s.ActiveProject().ID, "Q", "")
	s.SelectProject(s.Projects()[0].ID)
	s.SetActiveDay(march1)
	s.RemoveTask(a.ID)
	assert.Equal(t, 5, slot.Writes())

	data, err := slot.Read()
	require.NoError(t, err)
	decoded, err := model.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, s.Projects(), decoded)
}

func TestPersist_WriteFailureKeepsMemoryState(t *testing.T) {
	slot := &failingSlot{writeErr: errors.New("read-only")}
	s := newTestStore(t, slot)

	_, ok := s.AddTask("A", "", nil)
	assert.True(t, ok)
	assert.Len(t, s.TasksForActiveDay(), 1)
	require.Error(t, s.LastPersistError())
	assert.ErrorContains(t, s.LastPersistError(), "read-only")
}

type closingSlot struct {
	MemorySlot
	closed int
}

func (c *closingSlot) Close() error { c.closed++; return nil }

func TestClose_ClosesOnce(t *testing.T) {
	slot := &closingSlot{}
	s := newTestStore(t, slot)
	s.AddTask("A", "", nil)
	require.Equal(t, 1, slot.Writes())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, slot.closed)
	assert.Equal(t, 1, slot.Writes(), "nothing unsaved at close")
}

func TestClose_ReadOnlySessionDoesNotWrite(t *testing.T) {
	slot := NewMemorySlot([]byte(`[{"id":"p","name":"Mine"`))
	s := newTestStore(t, slot)
	require.Equal(t, model.DefaultProjectName, s.ActiveProject().Name)

	s.TasksForActiveDay()
	s.StatusCounts()
	s.ShiftDay(1)
	require.NoError(t, s.Close())
	assert.Equal(t, 0, slot.Writes())

	data, err := slot.Read()
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p","name":"Mine"`, string(data))
}

func TestClose_RetriesFailedPersist(t *testing.T) {
	slot := &failingSlot{writeErr: errors.New("disk full")}
	s := newTestStore(t, slot)
	s.AddTask("A", "", nil)
	require.Error(t, s.LastPersistError())

	slot.writeErr = nil
	require.NoError(t, s.Close())
	assert.NoError(t, s.LastPersistError())
}
