package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/pipeline"
)

// Render-specific flag values.
var (
	renderFormat        string
	renderOutput        string
	renderDeliveryDate  string
	renderTeamSize      int
	renderToday         string
	renderTitle         string
	renderSkipMalformed bool
)

// renderCmd computes the dashboard once and writes it in one format.
var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Render the progress dashboard from checklist exports",
	Long: `Load checklist exports, compute progress metrics and write the dashboard.

Each path may be a JSON export, a directory (its .json files are read in name
order) or "-" for standard input. With no paths the current directory is used.

Settings are resolved in order: flags, .tally.yaml in the current directory,
the global config, then built-in defaults (delivery 2025-08-19, team of 4).

Exit codes: 0 rendered, 1 invalid arguments or config, 2 no documents found,
3 malformed document.`,
	Example: `  tally render exports/
  tally render board.json --team-size 6 --delivery-date 2025-09-30
  tally render exports/ -o dashboard.html
  cat board.json | tally render - -f json`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: "+formatList())
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderDeliveryDate, "delivery-date", "", "delivery date as YYYY-MM-DD")
	renderCmd.Flags().IntVar(&renderTeamSize, "team-size", 0, "number of people sharing the pending points")
	renderCmd.Flags().StringVar(&renderToday, "today", "", "pin the current date as YYYY-MM-DD")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "dashboard title")
	renderCmd.Flags().BoolVar(&renderSkipMalformed, "skip-malformed", false, "skip undecodable documents instead of failing")
}

func runRender(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(".")
	if err != nil {
		return err
	}

	cfg, err := pipelineConfig(fileCfg, flagOverrides{
		DeliveryDate:    renderDeliveryDate,
		Today:           renderToday,
		Title:           renderTitle,
		TeamSize:        renderTeamSize,
		TeamSizeChanged: cmd.Flags().Changed("team-size"),
		SkipMalformed:   renderSkipMalformed,
	})
	if err != nil {
		return err
	}

	format := resolveFormat(renderFormat, fileCfg, renderOutput)
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return exitError(ExitInvalidArgs, "tally: invalid --format (%v)", err)
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	result, err := runPipeline(cmd, cfg, inputs)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if renderOutput != "" {
		f, err := cmdFS.Create(renderOutput)
		if err != nil {
			return exitError(ExitInvalidArgs, "tally: cannot create output file %q (%v)", renderOutput, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := formatter.Format(result.View, w); err != nil {
		return exitError(ExitInvalidArgs, "tally: formatting failed (%v)", err)
	}

	slog.Info("render complete",
		"format", format,
		"records", len(result.Records),
		"percent_complete", result.Metrics.PercentComplete,
		"duration", result.Duration)
	return nil
}

// runPipeline reads inputs and computes the dashboard, mapping load failures
// to exit codes.
func runPipeline(cmd *cobra.Command, cfg pipeline.Config, inputs []string) (*pipeline.Result, error) {
	loader := &checklist.Loader{FS: cmdFS, Stdin: cmd.InOrStdin()}
	sources, err := loader.Read(inputs)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "tally: %v", err)
	}

	result, err := pipeline.New(cfg).Run(cmd.Context(), sources)
	if err != nil {
		return nil, pipelineExitError(err)
	}
	return result, nil
}

// pipelineExitError maps a pipeline failure to its exit code.
func pipelineExitError(err error) error {
	var mie *checklist.MalformedInputError
	switch {
	case errors.Is(err, checklist.ErrNoInput):
		return exitError(ExitNoInput, "tally: no checklist documents found; pass at least one JSON export")
	case errors.As(err, &mie):
		return exitError(ExitMalformedInput, "tally: %v (use --skip-malformed to ignore it)", mie)
	default:
		return exitError(ExitInvalidArgs, "tally: %v", err)
	}
}

func formatList() string {
	return strings.Join(output.Names(), ", ")
}
