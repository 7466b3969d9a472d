// Package service owns the in-memory task collection and its invariants.
package service

// Task represents a single task item.
type Task struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Store persists the full task collection as a single unit.
// Implementations never fail on Load; unreadable or corrupt data loads as
// an empty (or filtered) collection.
type Store interface {
	// Load returns the persisted tasks in stored order.
	Load() []Task

	// Save replaces the persisted collection with tasks.
	Save(tasks []Task) error
}

// Tracker defines the task operations consumed by the command layer.
type Tracker interface {
	// List returns a copy of all tasks in insertion order.
	List() []Task

	// Add creates a task from text (trimmed) and persists the collection.
	Add(text string) (Task, error)

	// Complete marks the task with id as completed.
	Complete(id int) (Task, error)

	// Delete removes the task with id and returns it.
	Delete(id int) (Task, error)
}
