package store

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nhle/task-tracker/internal/model"
)

// FileTaskStore implements TaskStore over a semicolon-delimited text
// file, one task per line. Blank lines are ignored on read and never
// written back.
type FileTaskStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTaskStore opens the task file at path, creating it empty if
// it does not exist.
func NewFileTaskStore(path string) (*FileTaskStore, error) {
	if err := ensureFile(path, ""); err != nil {
		return nil, fmt.Errorf("initialising task file: %w", err)
	}
	return &FileTaskStore{path: path}, nil
}

// Path returns the durable file location.
func (s *FileTaskStore) Path() string {
	return s.path
}

// LoadAll reads and parses every row in file order.
func (s *FileTaskStore) LoadAll() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readRows(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for i, row := range rows {
		t, err := model.ParseTaskRow(row)
		if err != nil {
			return nil, fmt.Errorf("task file line %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// AppendOne appends the task's row to the file without touching the
// existing rows.
func (s *FileTaskStore) AppendOne(t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening task file for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(t.Row() + "\n"); err != nil {
		return fmt.Errorf("appending task row: %w", err)
	}

	return f.Close()
}

// PersistAll overwrites the file with the full list in order. Every
// committed mutation flushes through here, so the file always matches
// the in-memory state once the edit returns.
func (s *FileTaskStore) PersistAll(tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]string, len(tasks))
	for i, t := range tasks {
		rows[i] = t.Row()
	}

	if err := writeRows(s.path, rows); err != nil {
		return fmt.Errorf("overwriting task file: %w", err)
	}

	return nil
}

// readRows loads a row-oriented file as a slice of non-blank lines.
func readRows(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows, nil
}

// writeRows overwrites a row-oriented file with one row per line.
func writeRows(path string, rows []string) error {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ensureFile creates path with the given initial contents if it does
// not already exist.
func ensureFile(path, contents string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}
