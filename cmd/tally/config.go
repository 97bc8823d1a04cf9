package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/tally/internal/config"
	"github.com/davetashner/tally/internal/metrics"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify tally configuration",
	Long: `View and modify tally configuration.

Tally reads configuration from .tally.yaml (or .tally.toml) in the current
directory. A global config at ~/.config/tally/config.yaml provides defaults.
Project settings override global settings; flags override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration tally would run with, as YAML: the project
config layered over the global config, with built-in defaults filled in.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  tally config get team_size
  tally config get server.addr
  tally config get server
  tally config get --global delivery_date`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string.
By default, writes to .tally.yaml in the current directory.
Use --global to write to ~/.config/tally/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  tally config set delivery_date 2025-09-30
  tally config set team_size 6
  tally config set server.addr :9000
  tally config set --global output_format html`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the project config (.tally.yaml) or global config
(~/.config/tally/config.yaml). Project values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/tally/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/tally/config.yaml)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadFileConfig(".")
	if err != nil {
		return err
	}
	return config.Write(cmd.OutOrStdout(), withDefaults(cfg))
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	if configGlobal {
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = globalCfg
	} else {
		repoCfg, err := config.Load(".")
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		globalCfg, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = config.Layer(globalCfg, repoCfg)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return err
	}

	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}

	globalMap, err := config.ToFlatMap(globalCfg)
	if err != nil {
		return err
	}
	repoMap, err := config.ToFlatMap(repoCfg)
	if err != nil {
		return err
	}

	type entry struct {
		value  any
		source string
	}

	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range repoMap {
		seen[k] = entry{value: v, source: "project"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'tally config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)

	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source, globalColor, repoColor))
	}

	return nil
}

// withDefaults returns a copy of cfg with every unset setting filled in.
func withDefaults(cfg *config.Config) *config.Config {
	out := *cfg
	if out.DeliveryDate == "" {
		out.DeliveryDate = metrics.DefaultDeliveryDate.Format(config.DateLayout)
	}
	if out.TeamSize == nil {
		n := metrics.DefaultTeamSize
		out.TeamSize = &n
	}
	if out.OutputFormat == "" {
		out.OutputFormat = defaultFormat
	}
	out.Server.Addr = cfg.Addr()
	out.Server.MaxUploadMB = int(cfg.MaxUploadBytes() >> 20)
	out.Watch.Debounce = cfg.Debounce().String()
	return &out
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "project":
		return repoColor.Sprintf("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
