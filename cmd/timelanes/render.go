package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"timelanes/internal/capture"
	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/selection"
	"timelanes/internal/visual"
)

var renderFlags struct {
	csvFile    string
	configFile string
	outputFile string
	pngFile    string
	strict     bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a timeline chart from CSV data to SVG",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRender(cmd.Context())
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFlags.csvFile, "csv", "", "CSV file with timeline data (required)")
	renderCmd.Flags().StringVar(&renderFlags.configFile, "config", "", "YAML configuration file (optional)")
	renderCmd.Flags().StringVar(&renderFlags.outputFile, "output", "", "output SVG filename (default: CSV name with .svg)")
	renderCmd.Flags().StringVar(&renderFlags.pngFile, "png", "", "also export a PNG screenshot via headless Chromium")
	renderCmd.Flags().BoolVar(&renderFlags.strict, "strict", false, "fail when input rows are dropped")
	_ = renderCmd.MarkFlagRequired("csv")
}

func runRender(ctx context.Context) error {
	conf, err := config.Load(renderFlags.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	view, err := dataview.LoadCSV(renderFlags.csvFile, conf.Roles)
	if err != nil {
		return fmt.Errorf("loading CSV data: %w", err)
	}

	vis := visual.New(conf, selection.LogHost{})
	result := vis.Update(view)
	if result.Err != nil {
		return fmt.Errorf("rendering chart: %w", result.Err)
	}

	slog.Info("chart rendered",
		"records", result.Records,
		"dropped", len(result.Dropped),
		"truncated", result.Truncated,
	)
	if renderFlags.strict && len(result.Dropped) > 0 {
		var combined error
		for _, d := range result.Dropped {
			combined = multierror.Append(combined, fmt.Errorf("row %d: %s", d.Row, d.Reason))
		}
		return fmt.Errorf("dropped %d input rows: %w", len(result.Dropped), combined)
	}

	outputPath := outputFilename(renderFlags.csvFile, renderFlags.outputFile)
	if err := os.WriteFile(outputPath, []byte(result.SVG), 0o644); err != nil {
		return fmt.Errorf("writing SVG file: %w", err)
	}
	fmt.Printf("Timeline chart generated: %s\n", outputPath)

	if renderFlags.pngFile != "" {
		if err := exportPNG(ctx, conf, result.SVG, renderFlags.pngFile); err != nil {
			return err
		}
		fmt.Printf("PNG exported: %s\n", renderFlags.pngFile)
	}
	return nil
}

// exportPNG stages the document in a temporary HTML page and screenshots it
// with headless Chromium.
func exportPNG(ctx context.Context, conf config.Config, svg, pngPath string) error {
	dir, err := os.MkdirTemp("", "timelanes-*")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(dir)

	page := filepath.Join(dir, "chart.html")
	html := "<!DOCTYPE html><html><body style=\"margin:0\">" + svg + "</body></html>"
	if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
		return fmt.Errorf("staging chart page: %w", err)
	}

	return capture.ChartPNG(ctx, capture.Options{
		URL:        "file://" + page,
		OutputPath: pngPath,
		Width:      conf.Chart.Width,
		Height:     conf.Chart.Height,
	})
}

// outputFilename determines the output SVG path: the explicit flag when
// given, otherwise the CSV filename with its extension swapped.
func outputFilename(csvFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}
	base := filepath.Base(csvFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}
