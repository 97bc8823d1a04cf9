package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/dashboard"
	"github.com/davetashner/tally/internal/metrics"
)

// Config holds the inputs of a run that do not come from the documents.
type Config struct {
	// DeliveryDate is the deadline the remaining work is measured against.
	DeliveryDate time.Time

	// TeamSize is the number of people the pending points are split across.
	TeamSize int

	// Today pins the current date. Zero means the wall clock.
	Today time.Time

	// Title is the dashboard heading.
	Title string

	// SkipMalformed drops undecodable documents instead of failing the batch.
	SkipMalformed bool
}

// Result is the output of a single run.
type Result struct {
	Records   []checklist.Record
	Metrics   metrics.Aggregate
	View      *dashboard.View
	Anomalies []Anomaly
	Duration  time.Duration
}

// Pipeline turns checklist documents into a dashboard view. It holds no state
// between runs, so one Pipeline may serve concurrent callers.
type Pipeline struct {
	config  Config
	nowFunc func() time.Time
}

// New creates a Pipeline from cfg, filling in defaults for the delivery date
// and team size.
func New(cfg Config) *Pipeline {
	if cfg.DeliveryDate.IsZero() {
		cfg.DeliveryDate = metrics.DefaultDeliveryDate
	}
	if cfg.TeamSize == 0 {
		cfg.TeamSize = metrics.DefaultTeamSize
	}
	return &Pipeline{config: cfg, nowFunc: time.Now}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Run decodes sources and computes the dashboard. It returns
// checklist.ErrNoInput for an empty batch and a *checklist.MalformedInputError
// when a document cannot be decoded (unless SkipMalformed is set).
func (p *Pipeline) Run(ctx context.Context, sources []checklist.Source) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := checklist.ParseAll(sources, p.config.SkipMalformed)
	if err != nil {
		return nil, err
	}
	return p.RunDocuments(docs), nil
}

// RunDocuments computes the dashboard for already decoded documents.
func (p *Pipeline) RunDocuments(docs []checklist.Document) *Result {
	start := time.Now()
	now := p.nowFunc()

	today := p.config.Today
	if today.IsZero() {
		today = now
	}

	records := checklist.Extract(docs)
	agg := metrics.Compute(records, metrics.Params{
		Today:        today,
		DeliveryDate: p.config.DeliveryDate,
		TeamSize:     p.config.TeamSize,
	})

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	view := dashboard.Build(records, agg, dashboard.Options{
		Title:       p.config.Title,
		GeneratedAt: now,
		Sources:     names,
	})

	var anomalies []Anomaly
	for _, r := range records {
		anomalies = append(anomalies, InspectRecord(r)...)
	}
	for _, a := range anomalies {
		slog.Debug("defaulted field", "source", a.Source, "field", a.Field, "detail", a.Message)
	}

	slog.Info("dashboard computed",
		"documents", len(docs),
		"items", len(records),
		"total_points", agg.TotalPoints,
		"percent_complete", agg.PercentComplete,
		"defaulted_fields", len(anomalies),
	)

	return &Result{
		Records:   records,
		Metrics:   agg,
		View:      view,
		Anomalies: anomalies,
		Duration:  time.Since(start),
	}
}
