package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/tally/internal/pipeline"
)

func TestLayer_ProjectOverridesGlobal(t *testing.T) {
	global := &Config{
		DeliveryDate: "2025-08-19",
		TeamSize:     intPtr(4),
		Title:        "Global",
		Server:       ServerConfig{Addr: ":8501", MaxUploadMB: 10},
		Watch:        WatchConfig{Debounce: "1s"},
	}
	project := &Config{
		TeamSize:      intPtr(6),
		OutputFormat:  "html",
		SkipMalformed: true,
		Server:        ServerConfig{MaxUploadMB: 2},
	}

	got := Layer(global, project)
	assert.Equal(t, "2025-08-19", got.DeliveryDate)
	assert.Equal(t, 6, *got.TeamSize)
	assert.Equal(t, "Global", got.Title)
	assert.Equal(t, "html", got.OutputFormat)
	assert.True(t, got.SkipMalformed)
	assert.Equal(t, ":8501", got.Server.Addr)
	assert.Equal(t, 2, got.Server.MaxUploadMB)
	assert.Equal(t, "1s", got.Watch.Debounce)

	// Inputs are not modified.
	assert.Equal(t, 4, *global.TeamSize)
	assert.Equal(t, 10, global.Server.MaxUploadMB)
}

func TestLayer_NilInputs(t *testing.T) {
	assert.Equal(t, &Config{}, Layer(nil, nil))
	assert.Equal(t, &Config{Title: "x"}, Layer(&Config{Title: "x"}, nil))
	assert.Equal(t, &Config{Title: "y"}, Layer(nil, &Config{Title: "y"}))
}

func TestMerge_FileFillsZeroCLI(t *testing.T) {
	file := &Config{
		DeliveryDate:  "2025-09-30",
		TeamSize:      intPtr(5),
		Title:         "Rollout",
		SkipMalformed: true,
	}

	got := Merge(file, pipeline.Config{})
	assert.Equal(t, time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), got.DeliveryDate)
	assert.Equal(t, 5, got.TeamSize)
	assert.Equal(t, "Rollout", got.Title)
	assert.True(t, got.SkipMalformed)
}

func TestMerge_CLIWins(t *testing.T) {
	file := &Config{DeliveryDate: "2025-09-30", TeamSize: intPtr(5), Title: "File"}
	cli := pipeline.Config{
		DeliveryDate: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		TeamSize:     2,
		Title:        "CLI",
		Today:        time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}

	got := Merge(file, cli)
	assert.Equal(t, cli, got)
}

func TestMerge_InvalidFileValuesIgnored(t *testing.T) {
	file := &Config{DeliveryDate: "soon", TeamSize: intPtr(0)}
	got := Merge(file, pipeline.Config{})
	assert.True(t, got.DeliveryDate.IsZero())
	assert.Zero(t, got.TeamSize)
}
