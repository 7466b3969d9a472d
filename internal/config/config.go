// Package config handles the configuration directory, config file and the
// task file location.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.toml"

	// DefaultDataFile is the task file used when nothing else is configured,
	// relative to the working directory.
	DefaultDataFile = "todos.json"

	// EnvDataFile overrides the task file path.
	EnvDataFile = "TODO_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataFile is the task file path.
	DataFile string

	// Lock enables the advisory lock on the task file.
	Lock bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig is the shape of config.toml.
type fileConfig struct {
	File string `toml:"file"`
	Lock bool   `toml:"lock"`
}

// New creates a Config with the default or specified config directory and
// resolves the task file: default, then config.toml, then TODO_FILE.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// A missing config.toml is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:      dir,
		DataFile: DefaultDataFile,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvDataFile); env != "" {
		cfg.DataFile = env
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	var fc fileConfig
	md, err := toml.DecodeFile(c.FilePath(), &fc)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("invalid %s: %w", c.FilePath(), err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("invalid %s: unknown key %q", c.FilePath(), undecoded[0].String())
	}

	if fc.File != "" {
		c.DataFile = c.resolve(fc.File)
	}
	if md.IsDefined("lock") {
		c.Lock = fc.Lock
	}
	return nil
}

// resolve makes a config-file path absolute relative to the config
// directory and expands a leading ~/.
func (c *Config) resolve(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}
