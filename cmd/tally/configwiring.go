package main

import (
	"path/filepath"
	"strings"

	"github.com/davetashner/tally/internal/config"
	"github.com/davetashner/tally/internal/pipeline"
)

// defaultFormat is used when neither a flag, the config nor the output file
// extension picks a format.
const defaultFormat = "text"

// flagOverrides holds the run settings given on the command line. render,
// serve and watch each build one and pass it to pipelineConfig so the
// precedence rules live in one place.
type flagOverrides struct {
	DeliveryDate string
	Today        string
	Title        string

	// TeamSizeChanged indicates --team-size was explicitly set.
	TeamSize        int
	TeamSizeChanged bool

	SkipMalformed bool
}

// loadFileConfig layers the project config in dir over the global config and
// validates the result.
func loadFileConfig(dir string) (*config.Config, error) {
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "tally: failed to load global config (%v)", err)
	}
	projectCfg, err := config.Load(dir)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "tally: failed to load %s (%v)", config.FileName, err)
	}
	cfg := config.Layer(globalCfg, projectCfg)
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "tally: %v", err)
	}
	return cfg, nil
}

// pipelineConfig applies flags over the file config. Flags win; unset flags
// fall through to the file, then to the pipeline defaults.
func pipelineConfig(fileCfg *config.Config, flags flagOverrides) (pipeline.Config, error) {
	var cli pipeline.Config

	if flags.DeliveryDate != "" {
		d, err := config.ParseDate(flags.DeliveryDate)
		if err != nil {
			return cli, exitError(ExitInvalidArgs, "tally: --delivery-date must be YYYY-MM-DD, got %q", flags.DeliveryDate)
		}
		cli.DeliveryDate = d
	}
	if flags.Today != "" {
		d, err := config.ParseDate(flags.Today)
		if err != nil {
			return cli, exitError(ExitInvalidArgs, "tally: --today must be YYYY-MM-DD, got %q", flags.Today)
		}
		cli.Today = d
	}
	if flags.TeamSizeChanged {
		if flags.TeamSize < 1 {
			return cli, exitError(ExitInvalidArgs, "tally: --team-size must be at least 1, got %d", flags.TeamSize)
		}
		cli.TeamSize = flags.TeamSize
	}
	cli.Title = flags.Title
	cli.SkipMalformed = flags.SkipMalformed

	return config.Merge(fileCfg, cli), nil
}

// resolveFormat picks the output format: the flag, then the config, then the
// output file extension, then defaultFormat.
func resolveFormat(flag string, fileCfg *config.Config, outPath string) string {
	if flag != "" {
		return flag
	}
	if fileCfg != nil && fileCfg.OutputFormat != "" {
		return fileCfg.OutputFormat
	}
	if f := formatForPath(outPath); f != "" {
		return f
	}
	return defaultFormat
}

// formatForPath maps an output file extension to a format name.
func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	case ".json":
		return "json"
	case ".md", ".markdown":
		return "markdown"
	case ".txt":
		return "text"
	case ".xlsx":
		return "xlsx"
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	default:
		return ""
	}
}
