package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/saleemkhair/resume-export/internal/config"
	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/layout"
	"github.com/saleemkhair/resume-export/internal/observability"
	"github.com/saleemkhair/resume-export/internal/raster"
	"github.com/spf13/cobra"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export a resume content file to PDF",
	Long: `Loads a content model (.json, .yaml) and writes <Name>_Resume.pdf to the output directory.

Strategies:
  text    synthesize vector text from the content model (default)
  raster  snapshot the resume rendered at --surface-url and page the bitmap
  auto    raster when --surface-url is set, falling back to text if the capture fails

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runExportCmd,
}

var (
	exportConfigPath  string
	exportContent     string
	exportOutDir      string
	exportStrategy    string
	exportSurfaceURL  string
	exportSelector    string
	exportSettle      string
	exportChromePath  string
	exportPageSize    string
	exportOrientation string
	exportMaxLines    int
	exportVerbose     bool
)

func init() {
	// Config file flag (processed first)
	exportCommand.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	exportCommand.Flags().StringVarP(&exportContent, "content", "c", "", "Path to the content model file")
	exportCommand.Flags().StringVarP(&exportOutDir, "out", "o", "", "Output directory (default current directory)")
	exportCommand.Flags().StringVarP(&exportStrategy, "strategy", "s", "", "Export strategy: text, raster or auto")
	exportCommand.Flags().StringVar(&exportSurfaceURL, "surface-url", "", "URL of the rendered resume page (raster and auto strategies)")
	exportCommand.Flags().StringVar(&exportSelector, "selector", "", "CSS selector of the resume root (default "+raster.DefaultSelector+")")
	exportCommand.Flags().StringVar(&exportSettle, "settle", "", "Delay between forcing animations visible and capturing, e.g. 300ms")
	exportCommand.Flags().StringVar(&exportChromePath, "chrome", "", "Path to the Chrome/Chromium binary")
	exportCommand.Flags().StringVar(&exportPageSize, "page-size", "", "Page size: A3, A4, A5, Letter, Legal")
	exportCommand.Flags().StringVar(&exportOrientation, "orientation", "", "Page orientation: portrait or landscape")
	exportCommand.Flags().IntVar(&exportMaxLines, "max-lines", 0, "Maximum lines per page")
	exportCommand.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(exportCommand)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if exportConfigPath != "" {
		loadedCfg, err := config.LoadConfig(exportConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if exportVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", exportConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.Content = exportContent
	}
	if flags.Changed("out") {
		cfg.OutputDir = exportOutDir
	}
	if flags.Changed("strategy") {
		cfg.Strategy = exportStrategy
	}
	if flags.Changed("surface-url") {
		cfg.SurfaceURL = exportSurfaceURL
	}
	if flags.Changed("selector") {
		cfg.Selector = exportSelector
	}
	if flags.Changed("settle") {
		cfg.SettleDelay = exportSettle
	}
	if flags.Changed("chrome") {
		cfg.ChromePath = exportChromePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = exportVerbose
	}
	cfg.Geometry = geometryOverrides(cfg.Geometry, exportPageSize, exportOrientation, exportMaxLines)

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		OutputDir: ".",
		Strategy:  string(export.StrategyText),
		Selector:  raster.DefaultSelector,
	})

	// Step 4: Validate
	if cfg.Content == "" {
		return fmt.Errorf("--content must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	strategy, _ := export.ParseStrategy(cfg.Strategy)
	settle, _ := cfg.Settle()

	// Step 5: Load content
	model, err := content.Load(cfg.Content)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintContentSummary(model)
		if g, err := layout.Resolve(cfg.Geometry); err == nil {
			printer.PrintGeometry(g)
		}
	}

	// Step 6: Export
	opts := export.Options{
		Strategy: strategy,
		Settle:   settle,
		Verbose:  cfg.Verbose,
	}
	if cfg.Verbose {
		opts.OnProgress = func(ev export.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stdout, "[EXPORT] %s: %s\n", ev.Step, ev.Message)
		}
	}
	if cfg.SurfaceURL != "" && strategy != export.StrategyText {
		surface := raster.NewBrowserSurface(cfg.SurfaceURL, cfg.Selector)
		surface.ExecPath = cfg.ChromePath
		surface.Verbose = cfg.Verbose
		defer func() { _ = surface.Close() }()
		opts.Surface = surface
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc, err := export.New(opts).ExportDocument(ctx, model, cfg.Geometry)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	// Step 7: Save
	path, err := export.TriggerDownload(doc, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	if cfg.Verbose {
		printer.PrintExportResult(doc, path)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Exported %s (%d pages, %s strategy)\n", path, doc.Pages, doc.Strategy)
	return nil
}

// geometryOverrides layers the page flags over the config geometry without
// mutating it. It returns nil when neither sets anything.
func geometryOverrides(base *layout.Geometry, pageSize, orientation string, maxLines int) *layout.Geometry {
	if base == nil && pageSize == "" && orientation == "" && maxLines == 0 {
		return nil
	}
	var g layout.Geometry
	if base != nil {
		g = *base
	}
	if pageSize != "" {
		g.PageSize = pageSize
	}
	if orientation != "" {
		g.Orientation = orientation
	}
	if maxLines != 0 {
		g.MaxLinesPerPage = maxLines
	}
	return &g
}
