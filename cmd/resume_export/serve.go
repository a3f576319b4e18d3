package main

import (
	"fmt"

	"github.com/saleemkhair/resume-export/internal/config"
	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/raster"
	"github.com/saleemkhair/resume-export/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveStrategy   string
	serveSurfaceURL string
	serveSelector   string
	serveChromePath string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the export API server",
	Long: `Start an HTTP server that exports posted content models.

  POST /export          JSON or YAML content model in, PDF attachment out
  POST /export/outline  same input, JSON page outline out
  GET  /health

Query parameters page_size, orientation and max_lines override the page geometry.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveStrategy, "strategy", "s", "text", "Export strategy: text, raster or auto")
	serveCmd.Flags().StringVar(&serveSurfaceURL, "surface-url", "", "URL of the rendered resume page (raster and auto strategies)")
	serveCmd.Flags().StringVar(&serveSelector, "selector", raster.DefaultSelector, "CSS selector of the resume root")
	serveCmd.Flags().StringVar(&serveChromePath, "chrome", "", "Path to the Chrome/Chromium binary")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log requests and export steps")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Strategy:   serveStrategy,
		SurfaceURL: serveSurfaceURL,
		Selector:   serveSelector,
		ChromePath: serveChromePath,
		Verbose:    serveVerbose,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	strategy, _ := export.ParseStrategy(cfg.Strategy)
	settle, _ := cfg.Settle()

	opts := export.Options{
		Strategy: strategy,
		Settle:   settle,
		Verbose:  cfg.Verbose,
	}
	if cfg.SurfaceURL != "" && strategy != export.StrategyText {
		surface := raster.NewBrowserSurface(cfg.SurfaceURL, cfg.Selector)
		surface.ExecPath = cfg.ChromePath
		surface.Verbose = cfg.Verbose
		defer func() { _ = surface.Close() }()
		opts.Surface = surface
	}

	srv := server.New(server.Config{Port: servePort, Verbose: cfg.Verbose}, export.New(opts))
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
