package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/config"
	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/pipeline"
)

// toolFormats are the formats a tool result can carry as text.
var toolFormats = []string{"json", "markdown", "text"}

// DashboardInput is the input schema for the dashboard MCP tool.
type DashboardInput struct {
	Paths         []string `json:"paths,omitempty" jsonschema:"Checklist export files or directories of .json exports (defaults to current directory)"`
	DeliveryDate  string   `json:"delivery_date,omitempty" jsonschema:"Delivery date as YYYY-MM-DD (default from config, else 2025-08-19)"`
	TeamSize      int      `json:"team_size,omitempty" jsonschema:"Number of people sharing the pending points (default from config, else 4)"`
	Today         string   `json:"today,omitempty" jsonschema:"Pin the current date as YYYY-MM-DD (default: today)"`
	Format        string   `json:"format,omitempty" jsonschema:"Output format: json, markdown or text (default: json)"`
	SkipMalformed bool     `json:"skip_malformed,omitempty" jsonschema:"Skip undecodable documents instead of failing"`
}

// ParseItemInput is the input schema for the parse_item MCP tool.
type ParseItemInput struct {
	Name string `json:"name" jsonschema:"Checklist item name, e.g. a city and points separated by a tab"`
}

// ParseItemOutput is the structured result of the parse_item MCP tool.
type ParseItemOutput struct {
	City   string `json:"city"`
	Points int    `json:"points"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all tally tools to the MCP server.
func registerTools(server *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Compute checklist progress from exported board JSON: percent complete, days and business days left, points per day and per person, and per-city details.",
		Annotations: readOnly,
	}, handleDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_item",
		Description: "Split a checklist item name into its city and points the way the dashboard does.",
		Annotations: readOnly,
	}, handleParseItem)
}

func handleDashboard(ctx context.Context, _ *mcp.CallToolRequest, input DashboardInput) (*mcp.CallToolResult, any, error) {
	paths := input.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	resolved := make([]string, 0, len(paths))
	var configDir string
	for _, p := range paths {
		info, err := ResolvePath(p)
		if err != nil {
			return nil, nil, err
		}
		if configDir == "" {
			configDir = info.ConfigDir
		}
		resolved = append(resolved, info.AbsPath)
	}

	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	if !isToolFormat(format) {
		return nil, nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(toolFormats, ", "))
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, err
	}

	cliCfg, err := toolConfig(input)
	if err != nil {
		return nil, nil, err
	}

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load global config: %w", err)
	}
	projectCfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Merge(config.Layer(globalCfg, projectCfg), cliCfg)

	loader := &checklist.Loader{}
	sources, err := loader.Read(resolved)
	if err != nil {
		return nil, nil, err
	}

	result, err := pipeline.New(cfg).Run(ctx, sources)
	if err != nil {
		if errors.Is(err, checklist.ErrNoInput) {
			return nil, nil, fmt.Errorf("no checklist documents found in %s", strings.Join(paths, ", "))
		}
		return nil, nil, fmt.Errorf("dashboard failed: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(result.View, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

func handleParseItem(_ context.Context, _ *mcp.CallToolRequest, input ParseItemInput) (*mcp.CallToolResult, ParseItemOutput, error) {
	city, points := checklist.ParseItemName(input.Name)
	out := ParseItemOutput{City: city, Points: points}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("city=%q points=%d", city, points)},
		},
	}, out, nil
}

// toolConfig converts tool arguments into pipeline settings.
func toolConfig(input DashboardInput) (pipeline.Config, error) {
	var cfg pipeline.Config
	if input.DeliveryDate != "" {
		d, err := config.ParseDate(input.DeliveryDate)
		if err != nil {
			return cfg, fmt.Errorf("delivery_date must be YYYY-MM-DD, got %q", input.DeliveryDate)
		}
		cfg.DeliveryDate = d
	}
	if input.Today != "" {
		d, err := config.ParseDate(input.Today)
		if err != nil {
			return cfg, fmt.Errorf("today must be YYYY-MM-DD, got %q", input.Today)
		}
		cfg.Today = d
	}
	if input.TeamSize < 0 {
		return cfg, fmt.Errorf("team_size must be at least 1, got %d", input.TeamSize)
	}
	cfg.TeamSize = input.TeamSize
	cfg.SkipMalformed = input.SkipMalformed
	return cfg, nil
}

func isToolFormat(name string) bool {
	for _, f := range toolFormats {
		if f == name {
			return true
		}
	}
	return false
}
