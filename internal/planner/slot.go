package planner

import "sync"

// Slot is the durable key-value cell the store writes its snapshot into.
// Read returns (nil, nil) when nothing has been written yet.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// MemorySlot keeps the snapshot in process memory.
type MemorySlot struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

func NewMemorySlot(initial []byte) *MemorySlot {
	s := &MemorySlot{}
	if initial != nil {
		s.data = append([]byte(nil), initial...)
	}
	return s
}

func (s *MemorySlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.writes++
	return nil
}

// Writes counts successful writes.
func (s *MemorySlot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
