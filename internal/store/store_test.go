package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/service"
)

const testPath = "/data/todos.json"

func newMemStore(t *testing.T, content string) (*FileStore, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if content != "" {
		require.NoError(t, afero.WriteFile(fsys, testPath, []byte(content), 0o644))
	}
	return New(testPath, WithFs(fsys)), fsys
}

func TestLoad_MissingFile(t *testing.T) {
	s, _ := newMemStore(t, "")

	res := s.Read()
	assert.Equal(t, Missing, res.Outcome)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
	assert.NoError(t, res.Err)

	assert.Empty(t, s.Load())
}

func TestLoad_Malformed(t *testing.T) {
	for name, content := range map[string]string{
		"truncated":       `[{"id": 1, "text": "Buy milk"`,
		"not json":        `hello`,
		"trailing data":   `[] []`,
		"only whitespace": "  \n",
	} {
		t.Run(name, func(t *testing.T) {
			s, _ := newMemStore(t, content)

			res := s.Read()
			assert.Equal(t, Malformed, res.Outcome)
			assert.Error(t, res.Err)
			assert.Empty(t, res.Tasks)
			assert.NotNil(t, s.Load())
		})
	}
}

func TestLoad_NotArray(t *testing.T) {
	s, _ := newMemStore(t, `{"id": 1, "text": "Buy milk", "completed": false}`)

	res := s.Read()
	assert.Equal(t, NotArray, res.Outcome)
	assert.Empty(t, res.Tasks)
}

func TestLoad_InvalidUTF8(t *testing.T) {
	s, _ := newMemStore(t, "[\xff\xfe]")

	res := s.Read()
	assert.Equal(t, Unreadable, res.Outcome)
	assert.Error(t, res.Err)
	assert.Empty(t, res.Tasks)
}

func TestLoad_ValidFile(t *testing.T) {
	s, _ := newMemStore(t, `[
  {
    "id": 1,
    "text": "Buy milk",
    "completed": false
  },
  {
    "id": 3,
    "text": "Café",
    "completed": true
  }
]`)

	res := s.Read()
	require.Equal(t, Loaded, res.Outcome)
	assert.Zero(t, res.Dropped)
	assert.Equal(t, []service.Task{
		{ID: 1, Text: "Buy milk", Completed: false},
		{ID: 3, Text: "Café", Completed: true},
	}, res.Tasks)
}

func TestLoad_DropsInvalidRecords(t *testing.T) {
	s, _ := newMemStore(t, `[
  {"id": 1, "text": "ok", "completed": false},
  {"id": true, "text": "bool id", "completed": false},
  {"id": "3", "text": "string id", "completed": false},
  {"id": 4.5, "text": "fractional id", "completed": false},
  {"id": 5, "text": 7, "completed": false},
  {"id": 6, "text": "no completed"},
  {"id": 7, "text": "numeric completed", "completed": 1},
  "not an object",
  null,
  {"id": 8, "text": "extra keys", "completed": true, "priority": "high"},
  {"id": 9.0, "text": "float literal", "completed": false},
  {"id": 99999999999999999999999, "text": "too big", "completed": false}
]`)

	res := s.Read()
	require.Equal(t, Loaded, res.Outcome)
	assert.Equal(t, 10, res.Dropped)
	assert.Equal(t, []service.Task{
		{ID: 1, Text: "ok"},
		{ID: 8, Text: "extra keys", Completed: true},
	}, res.Tasks)
}

func TestLoad_EmptyArray(t *testing.T) {
	s, _ := newMemStore(t, `[]`)

	res := s.Read()
	assert.Equal(t, Loaded, res.Outcome)
	assert.NotNil(t, res.Tasks)
	assert.Empty(t, res.Tasks)
}

func TestSave_Format(t *testing.T) {
	s, fsys := newMemStore(t, "")

	err := s.Save([]service.Task{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Write <tests> & ship", Completed: true},
	})
	require.NoError(t, err)

	got, err := afero.ReadFile(fsys, testPath)
	require.NoError(t, err)

	want := `[
  {
    "id": 1,
    "text": "Buy milk",
    "completed": false
  },
  {
    "id": 2,
    "text": "Write <tests> & ship",
    "completed": true
  }
]`
	assert.Equal(t, want, string(got))
}

func TestSave_EscapesNonASCII(t *testing.T) {
	s, fsys := newMemStore(t, "")

	require.NoError(t, s.Save([]service.Task{{ID: 1, Text: "Café ☕ 😀"}}))

	got, err := afero.ReadFile(fsys, testPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"text": "Caf\u00e9 \u2615 \ud83d\ude00"`)

	for _, b := range got {
		assert.Less(t, b, byte(0x80), "non-ASCII byte in output")
	}

	// Escapes decode back to the original text
	assert.Equal(t, []service.Task{{ID: 1, Text: "Café ☕ 😀"}}, s.Load())
}

func TestSave_Empty(t *testing.T) {
	s, fsys := newMemStore(t, `[{"id": 1, "text": "old", "completed": false}]`)

	require.NoError(t, s.Save(nil))

	got, err := afero.ReadFile(fsys, testPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New("/a/b/c/todos.json", WithFs(fsys))

	require.NoError(t, s.Save([]service.Task{{ID: 1, Text: "nested"}}))

	exists, err := afero.Exists(fsys, "/a/b/c/todos.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSave_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	s, fsys := newMemStore(t, `[{"id": 7, "text": "old", "completed": true}]`)

	require.NoError(t, s.Save([]service.Task{{ID: 1, Text: "new"}}))

	assert.Equal(t, []service.Task{{ID: 1, Text: "new"}}, s.Load())

	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "todos.json", entries[0].Name())
}

func TestSave_WriteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	original := `[{"id": 1, "text": "keep", "completed": false}]`
	require.NoError(t, afero.WriteFile(base, testPath, []byte(original), 0o644))

	s := New(testPath, WithFs(afero.NewReadOnlyFs(base)))

	err := s.Save([]service.Task{{ID: 1, Text: "changed"}})
	require.Error(t, err)

	got, readErr := afero.ReadFile(base, testPath)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(got))

	// Reads still work on a read-only filesystem
	assert.Equal(t, []service.Task{{ID: 1, Text: "keep"}}, s.Load())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, fsys := newMemStore(t, "")

	tasks := []service.Task{
		{ID: 1, Text: "Buy milk", Completed: true},
		{ID: 4, Text: "tab\tand \"quotes\""},
		{ID: 2, Text: "línea"},
	}
	require.NoError(t, s.Save(tasks))
	assert.Equal(t, tasks, New(testPath, WithFs(fsys)).Load())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "not-array", NotArray.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
