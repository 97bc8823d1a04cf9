package config

import (
	"github.com/davetashner/tally/internal/pipeline"
)

// Layer combines the global and project configs. Project values take
// precedence; zero-value project fields fall through to the global config.
func Layer(global, project *Config) *Config {
	merged := Config{}
	if global != nil {
		merged = *global
	}
	if project == nil {
		return &merged
	}

	if project.DeliveryDate != "" {
		merged.DeliveryDate = project.DeliveryDate
	}
	if project.TeamSize != nil {
		merged.TeamSize = project.TeamSize
	}
	if project.Title != "" {
		merged.Title = project.Title
	}
	if project.OutputFormat != "" {
		merged.OutputFormat = project.OutputFormat
	}
	if project.SkipMalformed {
		merged.SkipMalformed = true
	}
	if project.Server.Addr != "" {
		merged.Server.Addr = project.Server.Addr
	}
	if project.Server.MaxUploadMB != 0 {
		merged.Server.MaxUploadMB = project.Server.MaxUploadMB
	}
	if project.Watch.Debounce != "" {
		merged.Watch.Debounce = project.Watch.Debounce
	}
	return &merged
}

// Merge combines file-based config with CLI-provided pipeline settings.
// CLI values take precedence; zero-value CLI fields fall through to the file.
// Unparseable file values are skipped; Validate reports them.
func Merge(fileCfg *Config, cliCfg pipeline.Config) pipeline.Config {
	result := cliCfg

	if result.DeliveryDate.IsZero() && fileCfg.DeliveryDate != "" {
		if d, err := ParseDate(fileCfg.DeliveryDate); err == nil {
			result.DeliveryDate = d
		}
	}

	if result.TeamSize == 0 && fileCfg.TeamSize != nil && *fileCfg.TeamSize > 0 {
		result.TeamSize = *fileCfg.TeamSize
	}

	if result.Title == "" && fileCfg.Title != "" {
		result.Title = fileCfg.Title
	}

	// SkipMalformed: CLI wins if true, otherwise file config.
	if !result.SkipMalformed && fileCfg.SkipMalformed {
		result.SkipMalformed = true
	}

	return result
}
