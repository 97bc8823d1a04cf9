// Package pipeline runs the extraction, aggregation and presentation steps
// over one batch of checklist documents and returns everything a surface
// needs to render the result.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/davetashner/tally/internal/checklist"
)

// Anomaly describes an item that fell back to a default value. Anomalies are
// reported, never treated as errors.
type Anomaly struct {
	// Source is the document the item came from.
	Source string

	// Field is the record field that was defaulted.
	Field string

	// Message describes the fallback.
	Message string
}

// String implements fmt.Stringer.
func (a Anomaly) String() string {
	return fmt.Sprintf("%s: %s: %s", a.Source, a.Field, a.Message)
}

// InspectRecord returns the defaults applied while extracting r.
func InspectRecord(r checklist.Record) []Anomaly {
	var out []Anomaly

	if strings.TrimSpace(r.City) == "" {
		out = append(out, Anomaly{
			Source:  r.Source,
			Field:   "City",
			Message: "item name is empty",
		})
	}

	if r.PointsDefaulted {
		out = append(out, Anomaly{
			Source:  r.Source,
			Field:   "Points",
			Message: fmt.Sprintf("no numeric points token for %q, using 0", r.City),
		})
	}

	if r.Checklist == checklist.PlaceholderName {
		out = append(out, Anomaly{
			Source:  r.Source,
			Field:   "Checklist",
			Message: "checklist has no name",
		})
	}

	return out
}
