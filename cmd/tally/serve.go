package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davetashner/tally/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr          string
	serveDeliveryDate  string
	serveTeamSize      int
	serveTitle         string
	serveSkipMalformed bool
)

// serveCmd runs the HTTP upload server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Start an HTTP server with an upload form. Uploaded checklist exports are
rendered as an HTML dashboard at POST /dashboard, or as JSON at
POST /api/dashboard. GET /healthz answers 204 for liveness probes.

The delivery date and team size given here are defaults; the upload form
can override them per request. Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else :8501)")
	serveCmd.Flags().StringVar(&serveDeliveryDate, "delivery-date", "", "default delivery date as YYYY-MM-DD")
	serveCmd.Flags().IntVar(&serveTeamSize, "team-size", 0, "default team size")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "dashboard title")
	serveCmd.Flags().BoolVar(&serveSkipMalformed, "skip-malformed", false, "skip undecodable uploads instead of rejecting the request")
}

func runServe(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(".")
	if err != nil {
		return err
	}

	cfg, err := pipelineConfig(fileCfg, flagOverrides{
		DeliveryDate:    serveDeliveryDate,
		Title:           serveTitle,
		TeamSize:        serveTeamSize,
		TeamSizeChanged: cmd.Flags().Changed("team-size"),
		SkipMalformed:   serveSkipMalformed,
	})
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = fileCfg.Addr()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Pipeline:       cfg,
		MaxUploadBytes: fileCfg.MaxUploadBytes(),
	})

	slog.Info("serving dashboard", "addr", addr, "max_upload_bytes", fileCfg.MaxUploadBytes())
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return exitError(ExitInvalidArgs, "tally: serve %s (%v)", addr, err)
	}
	slog.Info("server stopped")
	return nil
}
