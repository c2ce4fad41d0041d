package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/selection"
	"timelanes/internal/visual"
	"timelanes/internal/web"
)

var serveFlags struct {
	csvFile    string
	configFile string
	listen     string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart over HTTP with interactive selection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.csvFile, "csv", "", "CSV file with timeline data (required)")
	serveCmd.Flags().StringVar(&serveFlags.configFile, "config", "", "YAML configuration file (optional)")
	serveCmd.Flags().StringVar(&serveFlags.listen, "listen", "", "HTTP listen address (overrides config)")
	_ = serveCmd.MarkFlagRequired("csv")
}

func runServe(ctx context.Context) error {
	conf, err := config.Load(serveFlags.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if serveFlags.listen != "" {
		conf.Serve.Listen = serveFlags.listen
	}

	view, err := dataview.LoadCSV(serveFlags.csvFile, conf.Roles)
	if err != nil {
		return fmt.Errorf("loading CSV data: %w", err)
	}

	vis := visual.New(conf, selection.LogHost{})
	if result := vis.Update(view); result.Err != nil {
		return fmt.Errorf("rendering chart: %w", result.Err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return web.Start(ctx, conf.Serve.Listen, vis)
}
