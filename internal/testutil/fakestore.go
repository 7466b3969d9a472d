// Package testutil provides testing utilities.
package testutil

import (
	"sync"

	"todo/internal/service"
)

// FakeStore is an in-memory implementation of service.Store for testing.
// It records every saved snapshot.
type FakeStore struct {
	mu    sync.Mutex
	tasks []service.Task
	saves [][]service.Task

	// Error injection for testing
	SaveErr error
}

// NewFakeStore creates a FakeStore that loads the given tasks.
func NewFakeStore(tasks ...service.Task) *FakeStore {
	return &FakeStore{tasks: clone(tasks)}
}

// Load implements service.Store.
func (f *FakeStore) Load() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.tasks)
}

// Save implements service.Store. When SaveErr is set nothing is stored.
func (f *FakeStore) Save(tasks []service.Task) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = clone(tasks)
	f.saves = append(f.saves, clone(tasks))
	return nil
}

// Tasks returns the currently stored tasks.
func (f *FakeStore) Tasks() []service.Task {
	return f.Load()
}

// SaveCount returns how many saves succeeded.
func (f *FakeStore) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func clone(tasks []service.Task) []service.Task {
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out
}
