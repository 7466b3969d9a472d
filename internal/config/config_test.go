package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0o644))
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultDataFile, cfg.DataFile)
	assert.False(t, cfg.Lock)
	assert.Equal(t, filepath.Join(dir, ConfigFile), cfg.FilePath())
}

func TestNew_DefaultDirFromXDG(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, AppName), cfg.Dir)
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")

	tests := []struct {
		name     string
		body     string
		wantFile func(dir string) string
		wantLock bool
	}{
		{
			name:     "relative file",
			body:     "file = \"tasks.json\"\n",
			wantFile: func(dir string) string { return filepath.Join(dir, "tasks.json") },
		},
		{
			name:     "absolute file",
			body:     "file = \"/var/lib/todo/tasks.json\"\n",
			wantFile: func(string) string { return "/var/lib/todo/tasks.json" },
		},
		{
			name:     "lock only",
			body:     "lock = true\n",
			wantFile: func(string) string { return DefaultDataFile },
			wantLock: true,
		},
		{
			name:     "empty file",
			body:     "",
			wantFile: func(string) string { return DefaultDataFile },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			cfg, err := New(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile(dir), cfg.DataFile)
			assert.Equal(t, tt.wantLock, cfg.Lock)
		})
	}
}

func TestNew_HomeRelativeFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	writeConfig(t, dir, "file = \"~/todos.json\"\n")

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "todos.json"), cfg.DataFile)
}

func TestNew_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "file = \"tasks.json\"\n")
	t.Setenv(EnvDataFile, "/tmp/from-env.json")

	cfg, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.json", cfg.DataFile)
}

func TestNew_InvalidConfigFile(t *testing.T) {
	t.Setenv(EnvDataFile, "")

	tests := []struct {
		name    string
		body    string
		errPart string
	}{
		{"syntax", "file = [\n", "invalid "},
		{"wrong type", "lock = \"yes\"\n", "invalid "},
		{"unknown key", "colour = \"red\"\n", `unknown key "colour"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			cfg, err := New(dir)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}
