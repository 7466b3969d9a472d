// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown id).
	UserError = 1

	// ConfigError indicates an invalid config file or a held task file lock.
	ConfigError = 2

	// StorageError indicates the task file could not be written.
	StorageError = 3
)
