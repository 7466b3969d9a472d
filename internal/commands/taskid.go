package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single positional task id.
// Only syntax is checked here; range and existence are checked by the
// service so that "0" reports the same error as any other invalid id.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
