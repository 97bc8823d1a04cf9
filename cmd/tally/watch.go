package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/watch"
)

// Watch-specific flag values.
var (
	watchOutput        string
	watchFormat        string
	watchDebounce      time.Duration
	watchDeliveryDate  string
	watchTeamSize      int
	watchTitle         string
	watchSkipMalformed bool
)

// watchCmd re-renders the dashboard whenever the exports in a directory change.
var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Re-render the dashboard when exports change",
	Long: `Watch DIR for changes to .json exports and rewrite the output file after
each burst of changes. The file is replaced atomically. A render that fails
(no documents, malformed document) is logged and the previous output is kept.

The format defaults to the config's output_format, then the output file
extension.`,
	Example: `  tally watch exports/ -o dashboard.html
  tally watch exports/ -o status.md --debounce 1s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file path (required)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format: "+formatList())
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-rendering (default from config, else 300ms)")
	watchCmd.Flags().StringVar(&watchDeliveryDate, "delivery-date", "", "delivery date as YYYY-MM-DD")
	watchCmd.Flags().IntVar(&watchTeamSize, "team-size", 0, "number of people sharing the pending points")
	watchCmd.Flags().StringVar(&watchTitle, "title", "", "dashboard title")
	watchCmd.Flags().BoolVar(&watchSkipMalformed, "skip-malformed", false, "skip undecodable documents instead of failing the render")
	_ = watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := cmdFS.Stat(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "tally: cannot watch %q (%v)", dir, err)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "tally: %q is not a directory", dir)
	}

	fileCfg, err := loadFileConfig(".")
	if err != nil {
		return err
	}

	cfg, err := pipelineConfig(fileCfg, flagOverrides{
		DeliveryDate:    watchDeliveryDate,
		Title:           watchTitle,
		TeamSize:        watchTeamSize,
		TeamSizeChanged: cmd.Flags().Changed("team-size"),
		SkipMalformed:   watchSkipMalformed,
	})
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(resolveFormat(watchFormat, fileCfg, watchOutput))
	if err != nil {
		return exitError(ExitInvalidArgs, "tally: invalid --format (%v)", err)
	}

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = fileCfg.Debounce()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(watch.Options{
		Dir:       dir,
		Output:    watchOutput,
		Formatter: formatter,
		Pipeline:  cfg,
		Debounce:  debounce,
		FS:        cmdFS,
	})
	if err := w.Run(ctx); err != nil {
		return exitError(ExitInvalidArgs, "tally: %v", err)
	}
	return nil
}
