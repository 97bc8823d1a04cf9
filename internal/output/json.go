package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/tally/internal/dashboard"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps the dashboard view with metadata for the JSON output format.
type JSONEnvelope struct {
	Dashboard *dashboard.View `json:"dashboard"`
	Metadata  JSONMetadata    `json:"metadata"`
}

// JSONMetadata describes the run that produced the view.
type JSONMetadata struct {
	RecordCount int      `json:"record_count"`
	Sources     []string `json:"sources"`
	GeneratedAt string   `json:"generated_at"`
}

// JSONFormatter writes the view as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// MediaType returns the MIME type of JSON output.
func (f *JSONFormatter) MediaType() string {
	return "application/json"
}

// Format writes the view as a JSON document with a metadata envelope to w.
// Output is pretty-printed unless Compact is set or w is a pipe or regular file.
func (f *JSONFormatter) Format(v *dashboard.View, w io.Writer) error {
	if v == nil {
		return fmt.Errorf("nil dashboard view")
	}

	data, err := f.Marshal(v, f.shouldCompact(w))
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}

	return nil
}

// Marshal encodes the view envelope without writing it.
func (f *JSONFormatter) Marshal(v *dashboard.View, compact bool) ([]byte, error) {
	generated := v.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
		if f.nowFunc != nil {
			generated = f.nowFunc()
		}
	}

	sources := v.Sources
	if sources == nil {
		sources = []string{}
	}

	envelope := JSONEnvelope{
		Dashboard: v,
		Metadata: JSONMetadata{
			RecordCount: len(v.Details),
			Sources:     sources,
			GeneratedAt: generated.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}

	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		// Character device means a terminal.
		if fi.Mode()&os.ModeCharDevice != 0 {
			return false
		}
		return true
	}

	// Non-file writers (buffers, HTTP responses) get pretty output.
	return false
}
