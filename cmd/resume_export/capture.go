package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/saleemkhair/resume-export/internal/config"
	"github.com/saleemkhair/resume-export/internal/raster"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Snapshot the rendered resume to PNG",
	Long:  "Opens the resume page in headless Chrome, forces animated sections visible, screenshots the resume element and restores the page. Useful for checking what the raster strategy will page.",
	RunE:  runCapture,
}

var (
	captureURL      string
	captureSelector string
	captureOutput   string
	captureSettle   time.Duration
	captureChrome   string
	captureScale    float64
	captureVerbose  bool
)

func init() {
	captureCmd.Flags().StringVarP(&captureURL, "url", "u", "", "URL of the rendered resume page (required)")
	captureCmd.Flags().StringVar(&captureSelector, "selector", raster.DefaultSelector, "CSS selector of the resume root")
	captureCmd.Flags().StringVarP(&captureOutput, "out", "o", "", "Path to output PNG file (required)")
	captureCmd.Flags().DurationVar(&captureSettle, "settle", config.DefaultSettleDelay, "Delay between forcing animations visible and capturing")
	captureCmd.Flags().StringVar(&captureChrome, "chrome", "", "Path to the Chrome/Chromium binary")
	captureCmd.Flags().Float64Var(&captureScale, "scale", 2, "Device pixel ratio of the snapshot")
	captureCmd.Flags().BoolVarP(&captureVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := captureCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}
	if err := captureCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(captureCmd)
}

func runCapture(_ *cobra.Command, _ []string) error {
	surface := raster.NewBrowserSurface(captureURL, captureSelector)
	surface.ExecPath = captureChrome
	surface.Scale = captureScale
	surface.Verbose = captureVerbose
	defer func() { _ = surface.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &raster.Capturer{Settle: captureSettle, Verbose: captureVerbose}
	img, err := c.Capture(ctx, surface)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := os.WriteFile(captureOutput, img, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Saved snapshot to %s (%d bytes)\n", captureOutput, len(img))
	return nil
}
