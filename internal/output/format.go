// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/service"
)

const (
	// MarkDone is the checkbox for a completed task.
	MarkDone = "[x]"

	// MarkOpen is the checkbox for an open task.
	MarkOpen = "[ ]"
)

// Printer writes task lines to one destination. Styles only apply when the
// destination is a terminal.
type Printer struct {
	w    io.Writer
	done lipgloss.Style
}

// NewPrinter creates a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:    w,
		done: r.NewStyle().Faint(true).TabWidth(lipgloss.NoTabConversion),
	}
}

// Task formats a task line.
// Format: "{MARK} {ID}: {TEXT}\n", e.g. "[x] 1: Buy milk".
func (p *Printer) Task(task service.Task) {
	text := normalizeText(task.Text)
	mark := MarkOpen
	if task.Completed {
		mark = MarkDone
		text = p.done.Render(text)
	}
	fmt.Fprintf(p.w, "%s %d: %s\n", mark, task.ID, text)
}

// Tasks formats each task in order.
func (p *Printer) Tasks(tasks []service.Task) {
	for _, t := range tasks {
		p.Task(t)
	}
}

// Added writes the confirmation for a new task.
func Added(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "Added task %d: %s\n", task.ID, normalizeText(task.Text))
}

// Completed writes the confirmation for a completed task.
func Completed(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "Completed task %d.\n", task.ID)
}

// Deleted writes the confirmation for a deleted task.
func Deleted(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "Deleted task %d.\n", task.ID)
}

// normalizeText keeps each task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
