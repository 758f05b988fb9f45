package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-file slot. Single file, human-readable, portable.
// No locking; one local user, one writer.

const fileExt = ".json"

// Slot keeps one snapshot in <dir>/<key>.json.
type Slot struct {
	path string
}

// New returns the slot for key under dir. The directory is created on first
// write.
func New(dir, key string) *Slot {
	return &Slot{path: filepath.Join(dir, key+fileExt)}
}

// Path is the backing file.
func (s *Slot) Path() string { return s.path }

// Read returns (nil, nil) when the file does not exist yet.
func (s *Slot) Read() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Write replaces the file through a temp file and rename, so a crash leaves
// either the old or the new snapshot. Valid JSON is stored indented.
func (s *Slot) Write(data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err == nil {
		data = buf.Bytes()
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
