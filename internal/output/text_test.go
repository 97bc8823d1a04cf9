package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter_Name(t *testing.T) {
	assert.Equal(t, "text", NewTextFormatter().Name())
}

func TestTextFormatter_Output(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(testView(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Checklist Progress\nSources: board.json\n"))
	for _, want := range []string{
		"Overview", "% Complete", "66.7 %", "19/08/2025",
		"Points per Day", "Calendar days", "Business days",
		"Points Distribution", "33.3 %",
		"Details", "CityA", "Yes",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextFormatter_DetailOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(testView(), &buf))

	out := buf.String()
	details := out[strings.Index(out, "Details"):]
	a := strings.Index(details, "CityA")
	b := strings.Index(details, "CityB")
	c := strings.Index(details, "CityC")
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestTextFormatter_EmptyDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(emptyView(), &buf))
	assert.Contains(t, buf.String(), "No checklist items found.")
}

func TestTextFormatter_WriteError(t *testing.T) {
	err := NewTextFormatter().Format(testView(), &failWriter{failAfter: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write title")

	err = NewTextFormatter().Format(testView(), &failWriter{failAfter: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write section Overview")
}
