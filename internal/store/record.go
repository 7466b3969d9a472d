package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/service"
)

// recordSchema describes one stored task. Extra keys are allowed and ignored.
const recordSchema = `{
  "type": "object",
  "required": ["id", "text", "completed"],
  "properties": {
    "id": {"type": "integer"},
    "text": {"type": "string"},
    "completed": {"type": "boolean"}
  }
}`

var taskSchema = jsonschema.MustCompileString("task.schema.json", recordSchema)

// parseRecord validates one decoded array element and converts it to a Task.
// v must come from a decoder with UseNumber set.
func parseRecord(v any) (service.Task, error) {
	if err := taskSchema.Validate(v); err != nil {
		return service.Task{}, err
	}

	m := v.(map[string]any)

	// The schema accepts 1.0 and 1e2 as integers; the stored form must be
	// a plain integer literal that fits in an int.
	num, ok := m["id"].(json.Number)
	if !ok {
		return service.Task{}, fmt.Errorf("id: unexpected type %T", m["id"])
	}
	id, err := strconv.Atoi(num.String())
	if err != nil {
		return service.Task{}, fmt.Errorf("id: %q is not an integer", num.String())
	}

	return service.Task{
		ID:        id,
		Text:      m["text"].(string),
		Completed: m["completed"].(bool),
	}, nil
}
