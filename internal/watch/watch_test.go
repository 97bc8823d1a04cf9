package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/pipeline"
	"github.com/davetashner/tally/internal/testable"
)

const boardJSON = `{"checklists":[{"name":"Rollout","checkItems":[
  {"name":"CityA\t10","state":"complete"},
  {"name":"CityB\t5","state":"incomplete"}]}]}`

func fixedPipeline() pipeline.Config {
	return pipeline.Config{Today: time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC)}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRender_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "board.json"), boardJSON)
	out := filepath.Join(t.TempDir(), "dash.md")

	w := New(Options{Dir: dir, Output: out, Formatter: output.NewMarkdownFormatter(), Pipeline: fixedPipeline()})
	require.NoError(t, w.Render(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- **% Complete:** 66.7 %")
	_, err = os.Stat(out + tmpSuffix)
	assert.True(t, os.IsNotExist(err), "staging file should be renamed away")
}

func TestRender_NoInputKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "dash.md")
	writeFile(t, out, "previous")

	w := New(Options{Dir: dir, Output: out, Formatter: output.NewMarkdownFormatter()})
	err := w.Render(context.Background())
	assert.ErrorIs(t, err, checklist.ErrNoInput)

	data, _ := os.ReadFile(out)
	assert.Equal(t, "previous", string(data))
}

func TestRender_MalformedKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), "{oops")
	out := filepath.Join(t.TempDir(), "dash.md")
	writeFile(t, out, "previous")

	w := New(Options{Dir: dir, Output: out, Formatter: output.NewMarkdownFormatter()})
	err := w.Render(context.Background())

	var mie *checklist.MalformedInputError
	assert.ErrorAs(t, err, &mie)
	data, _ := os.ReadFile(out)
	assert.Equal(t, "previous", string(data))
}

func TestRender_SkipsOwnOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "board.json"), boardJSON)
	out := filepath.Join(dir, "dashboard.json")
	writeFile(t, out, "not a checklist export")

	w := New(Options{Dir: dir, Output: out, Formatter: output.NewJSONFormatter(), Pipeline: fixedPipeline()})
	require.NoError(t, w.Render(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"record_count": 2`)
}

func TestRender_WriteErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "board.json"), boardJSON)
	out := filepath.Join(t.TempDir(), "dash.md")

	t.Run("write", func(t *testing.T) {
		fsys := &testable.MockFileSystem{
			WriteFileFn: func(string, []byte, os.FileMode) error { return errors.New("disk full") },
		}
		w := New(Options{Dir: dir, Output: out, Formatter: output.NewMarkdownFormatter(), FS: fsys})
		err := w.Render(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("rename", func(t *testing.T) {
		fsys := &testable.MockFileSystem{
			WriteFileFn: func(string, []byte, os.FileMode) error { return nil },
			RenameFn:    func(string, string) error { return errors.New("cross-device link") },
		}
		w := New(Options{Dir: dir, Output: out, Formatter: output.NewMarkdownFormatter(), FS: fsys})
		err := w.Render(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rename")
	})
}

func TestRelevant(t *testing.T) {
	w := New(Options{Dir: "/data", Output: "/data/out.json"})
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/data/a.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/a.json", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/data/a.json", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/data/a.json", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/data/a.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/a.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/data/out.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.event), "%s %s", tt.event.Op, tt.event.Name)
	}
}

func TestRun_NoFormatter(t *testing.T) {
	err := New(Options{Dir: t.TempDir()}).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_MissingDir(t *testing.T) {
	w := New(Options{Dir: filepath.Join(t.TempDir(), "missing"), Formatter: output.NewTextFormatter()})
	assert.Error(t, w.Run(context.Background()))
}

func TestRun_RerendersOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "board.json"), boardJSON)
	out := filepath.Join(t.TempDir(), "dash.md")

	renders := make(chan error, 16)
	w := New(Options{
		Dir:       dir,
		Output:    out,
		Formatter: output.NewMarkdownFormatter(),
		Pipeline:  fixedPipeline(),
		Debounce:  20 * time.Millisecond,
		OnRender:  func(err error) { renders <- err },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-renders:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial render did not happen")
	}

	writeFile(t, filepath.Join(dir, "second.json"), `{"checklists":[{"name":"More","checkItems":[{"name":"CityZ\t5","state":"complete"}]}]}`)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "| CityZ |")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
