package service

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/logging"
)

// Service is the in-memory authority over the task collection for one
// process. Every mutation is written through to the Store before returning.
type Service struct {
	store    Store
	tasks    []Task
	nextID   int
	logger   *log.Logger
	rollback bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRollback restores the previous collection when a save fails.
// Without it a failed save leaves the mutation applied in memory.
func WithRollback(enabled bool) Option {
	return func(s *Service) {
		s.rollback = enabled
	}
}

// New loads the collection from store once and computes the next id.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = store.Load()
	if s.tasks == nil {
		s.tasks = []Task{}
	}
	s.nextID = computeNextID(s.tasks)

	s.logger.Debug("loaded tasks", "count", len(s.tasks), "next_id", s.nextID)
	return s
}

// computeNextID returns max(id)+1, or 1 for an empty collection. It returns
// 0 when the largest id is math.MaxInt, so Add refuses further tasks.
func computeNextID(tasks []Task) int {
	next := 1
	for _, t := range tasks {
		if t.ID == math.MaxInt {
			return 0
		}
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// List returns a copy of the collection in insertion order.
func (s *Service) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add appends a new task with the trimmed text and persists the collection.
func (s *Service) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if err := check(addInput{Text: text, NextID: s.nextID}); err != nil {
		return Task{}, err
	}

	restore := s.snapshot()

	task := Task{ID: s.nextID, Text: text}
	if s.nextID == math.MaxInt {
		s.nextID = 0
	} else {
		s.nextID++
	}
	s.tasks = append(s.tasks, task)

	if err := s.persist("add", restore); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Complete marks the task with id as completed and persists the collection.
// Completing an already completed task is allowed and re-persists.
func (s *Service) Complete(id int) (Task, error) {
	i, err := s.find(id)
	if err != nil {
		return Task{}, err
	}

	restore := s.snapshot()
	s.tasks[i].Completed = true
	task := s.tasks[i]

	if err := s.persist("complete", restore); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Delete removes the task with id and persists the remaining collection.
func (s *Service) Delete(id int) (Task, error) {
	i, err := s.find(id)
	if err != nil {
		return Task{}, err
	}

	restore := s.snapshot()
	task := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)

	if err := s.persist("delete", restore); err != nil {
		return Task{}, err
	}
	return task, nil
}

// find validates id and returns the index of the first matching task.
func (s *Service) find(id int) (int, error) {
	if err := check(idInput{ID: id}); err != nil {
		return -1, err
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, notFound(id)
}

// snapshot captures the state needed to undo a mutation.
func (s *Service) snapshot() func() {
	tasks := slices.Clone(s.tasks)
	nextID := s.nextID
	return func() {
		s.tasks = tasks
		s.nextID = nextID
	}
}

func (s *Service) persist(op string, restore func()) error {
	if err := s.store.Save(s.tasks); err != nil {
		if s.rollback {
			restore()
			s.logger.Debug("save failed, rolled back", "op", op, "err", err)
		} else {
			s.logger.Debug("save failed, in-memory tasks differ from file", "op", op, "err", err)
		}
		return fmt.Errorf("persist tasks: %w", err)
	}
	s.logger.Debug("saved tasks", "op", op, "count", len(s.tasks))
	return nil
}
