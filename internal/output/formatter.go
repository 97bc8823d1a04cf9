// Package output defines the Formatter interface for rendering a dashboard
// view in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/tally/internal/dashboard"
)

// Formatter writes a dashboard view to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "html", "json", "markdown").
	Name() string

	// MediaType returns the MIME type of the rendered output.
	MediaType() string

	// Format writes the view to w.
	Format(v *dashboard.View, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, strings.Join(names(), ", "))
	}
	return f, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return names()
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

func names() []string {
	out := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
