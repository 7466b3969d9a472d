// Package store implements service.Store on a single JSON file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"todo/internal/logging"
	"todo/internal/service"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Outcome classifies the result of reading the task file.
type Outcome int

const (
	// Loaded means the file held a JSON array; invalid records may still
	// have been dropped.
	Loaded Outcome = iota

	// Missing means the file does not exist.
	Missing

	// Unreadable means the file exists but could not be read as UTF-8 text.
	Unreadable

	// Malformed means the content is not valid JSON.
	Malformed

	// NotArray means the top-level JSON value is not an array.
	NotArray
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Unreadable:
		return "unreadable"
	case Malformed:
		return "malformed"
	case NotArray:
		return "not-array"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// LoadResult is the detailed result of Read.
type LoadResult struct {
	Tasks   []service.Task
	Outcome Outcome
	Err     error // cause for Unreadable and Malformed
	Dropped int   // records rejected by validation
}

var _ service.Store = (*FileStore)(nil)

// FileStore reads and writes the whole task collection at one path.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *FileStore) {
		s.fs = fsys
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a FileStore for path.
func New(path string, opts ...Option) *FileStore {
	s := &FileStore{
		fs:     afero.NewOsFs(),
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the task file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements service.Store. Absence and corruption both yield an
// empty collection.
func (s *FileStore) Load() []service.Task {
	return s.Read().Tasks
}

// Read reads the task file and reports how it went. Tasks is never nil.
func (s *FileStore) Read() LoadResult {
	res := s.read()
	if res.Outcome != Loaded {
		s.logger.Debug("task file not loaded", "path", s.path, "outcome", res.Outcome, "err", res.Err)
	}
	return res
}

func (s *FileStore) read() LoadResult {
	empty := []service.Task{}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{Tasks: empty, Outcome: Missing}
		}
		return LoadResult{Tasks: empty, Outcome: Unreadable, Err: err}
	}
	if !utf8.Valid(data) {
		return LoadResult{Tasks: empty, Outcome: Unreadable, Err: errors.New("invalid UTF-8")}
	}

	doc, err := decode(data)
	if err != nil {
		return LoadResult{Tasks: empty, Outcome: Malformed, Err: err}
	}

	items, ok := doc.([]any)
	if !ok {
		return LoadResult{Tasks: empty, Outcome: NotArray}
	}

	res := LoadResult{Tasks: make([]service.Task, 0, len(items)), Outcome: Loaded}
	for i, item := range items {
		task, err := parseRecord(item)
		if err != nil {
			res.Dropped++
			s.logger.Debug("dropped task record", "path", s.path, "index", i, "reason", err)
			continue
		}
		res.Tasks = append(res.Tasks, task)
	}
	return res
}

// decode parses exactly one JSON value, keeping numbers as json.Number.
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// Save implements service.Store. The file is replaced through a temporary
// sibling and a rename.
func (s *FileStore) Save(tasks []service.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp := s.path + ".tmp-" + uuid.NewString()
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.logger.Debug("wrote task file", "path", s.path, "tasks", len(tasks), "bytes", len(data))
	return nil
}
