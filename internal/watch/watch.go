// Package watch re-renders a dashboard whenever the checklist exports in a
// directory change.
package watch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/pipeline"
	"github.com/davetashner/tally/internal/testable"
)

// DefaultDebounce is the quiet period after the last event before rendering.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Dir is the directory holding the .json exports.
	Dir string

	// Output is the file the rendered dashboard is written to.
	Output string

	// Formatter renders the view.
	Formatter output.Formatter

	// Pipeline holds the run settings. Today is ignored unless set.
	Pipeline pipeline.Config

	// Debounce is the quiet period. Zero means DefaultDebounce.
	Debounce time.Duration

	// FS is used for reading inputs and writing output. Defaults to testable.DefaultFS.
	FS testable.FileSystem

	// OnRender, if set, is called after every render attempt.
	OnRender func(err error)
}

// Watcher renders once on start and again after each debounced batch of
// changes. Renders run serially on the watch loop.
type Watcher struct {
	opts Options
}

// New creates a Watcher.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.FS == nil {
		opts.FS = testable.DefaultFS
	}
	return &Watcher{opts: opts}
}

// Run watches until ctx is cancelled. It returns an error only when the
// watch cannot be established; render failures are logged and the previous
// output is kept.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.Formatter == nil {
		return errors.New("watch: no formatter configured")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.opts.Dir, err)
	}
	slog.Info("watching for changes", "dir", w.opts.Dir, "output", w.opts.Output, "format", w.opts.Formatter.Name())

	w.renderAndReport(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.opts.Debounce)
			pending = true
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		case <-timer.C:
			if pending {
				pending = false
				w.renderAndReport(ctx)
			}
		}
	}
}

// relevant reports whether event concerns an input document.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if !checklist.IsJSONFile(event.Name) {
		return false
	}
	return !w.isOutput(event.Name)
}

func (w *Watcher) isOutput(name string) bool {
	a, err1 := filepath.Abs(name)
	b, err2 := filepath.Abs(w.opts.Output)
	if err1 != nil || err2 != nil {
		return filepath.Clean(name) == filepath.Clean(w.opts.Output)
	}
	return a == b || a == b+tmpSuffix
}

func (w *Watcher) renderAndReport(ctx context.Context) {
	err := w.Render(ctx)
	switch {
	case err == nil:
	case errors.Is(err, checklist.ErrNoInput):
		slog.Warn("no checklist documents found, keeping previous output", "dir", w.opts.Dir)
	default:
		slog.Error("render failed, keeping previous output", "error", err)
	}
	if w.opts.OnRender != nil {
		w.opts.OnRender(err)
	}
}

// tmpSuffix marks the staging file written before the atomic rename.
const tmpSuffix = ".tmp"

// Render runs the pipeline once and replaces the output file. The output is
// only touched when the whole render succeeds.
func (w *Watcher) Render(ctx context.Context) error {
	loader := checklist.Loader{FS: w.opts.FS}
	all, err := loader.Read([]string{w.opts.Dir})
	if err != nil {
		return err
	}
	sources := all[:0]
	for _, src := range all {
		if !w.isOutput(src.Name) {
			sources = append(sources, src)
		}
	}

	start := time.Now()
	res, err := pipeline.New(w.opts.Pipeline).Run(ctx, sources)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.opts.Formatter.Format(res.View, &buf); err != nil {
		return fmt.Errorf("format %s: %w", w.opts.Formatter.Name(), err)
	}

	tmp := w.opts.Output + tmpSuffix
	if err := w.opts.FS.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := w.opts.FS.Rename(tmp, w.opts.Output); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	slog.Info("dashboard written",
		"output", w.opts.Output,
		"documents", len(sources),
		"records", len(res.Records),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
