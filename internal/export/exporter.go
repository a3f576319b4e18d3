// Package export turns a resume content model into a downloadable document
// using either synthesized text or a snapshot of the rendered page.
package export

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/saleemkhair/resume-export/internal/compose"
	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
	"github.com/saleemkhair/resume-export/internal/raster"
)

// Strategy selects how the document is produced.
type Strategy string

const (
	// StrategyText writes vector text from the content model.
	StrategyText Strategy = "text"
	// StrategyRaster snapshots the rendered surface and pages the bitmap.
	StrategyRaster Strategy = "raster"
	// StrategyAuto uses the surface when there is one and falls back to
	// text when the capture fails.
	StrategyAuto Strategy = "auto"
)

// ParseStrategy parses a strategy name; "" means StrategyText.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyText:
		return StrategyText, nil
	case StrategyRaster:
		return StrategyRaster, nil
	case StrategyAuto:
		return StrategyAuto, nil
	}
	return "", fmt.Errorf("unknown strategy %q (want text, raster or auto)", s)
}

// Document is a finished export.
type Document struct {
	Bytes    []byte
	Filename string
	Pages    int
	Strategy Strategy
	// Outline is where each section starts. Empty for raster documents.
	Outline []compose.Mark
}

// ProgressEvent reports a step of an export.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when export progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures an Exporter.
type Options struct {
	Strategy Strategy
	// Surface is the rendered page used by the raster strategy.
	Surface raster.Surface
	// Settle is the delay between forcing animations visible and capturing.
	Settle time.Duration
	// CreatedAt is stamped into text documents. Zero means a fixed date so
	// equal input yields equal bytes.
	CreatedAt  time.Time
	Verbose    bool
	OnProgress ProgressCallback
}

// Exporter produces documents. It holds no per-export state, so one
// Exporter may serve concurrent exports.
type Exporter struct {
	opts     Options
	capturer *raster.Capturer
}

// New returns an Exporter.
func New(opts Options) *Exporter {
	if opts.Strategy == "" {
		opts.Strategy = StrategyText
	}
	return &Exporter{
		opts:     opts,
		capturer: &raster.Capturer{Settle: opts.Settle, Verbose: opts.Verbose},
	}
}

// Strategy returns the configured strategy.
func (e *Exporter) Strategy() Strategy { return e.opts.Strategy }

// ExportDocument renders m with the configured strategy. overrides may be
// nil; zero fields keep the default geometry. Every failure is an *Error
// and no partial document is returned.
func (e *Exporter) ExportDocument(ctx context.Context, m *content.Model, overrides *layout.Geometry) (*Document, error) {
	g, err := layout.Resolve(overrides)
	if err != nil {
		return nil, classify(err, "page geometry", KindWriteFailed)
	}
	e.emit("validate", "checking content")
	if err := content.Validate(m); err != nil {
		return nil, classify(err, "content", KindContentIncomplete)
	}

	var doc *Document
	switch e.opts.Strategy {
	case StrategyText:
		doc, err = e.exportText(ctx, m, g)
	case StrategyRaster:
		doc, err = e.exportRaster(ctx, g)
	case StrategyAuto:
		if e.opts.Surface == nil {
			doc, err = e.exportText(ctx, m, g)
			break
		}
		doc, err = e.exportRaster(ctx, g)
		if KindOf(err) == KindCaptureFailed && ctx.Err() == nil {
			if e.opts.Verbose {
				log.Printf("[EXPORT] capture failed, falling back to text: %v", err)
			}
			e.emit("fallback", err.Error())
			doc, err = e.exportText(ctx, m, g)
		}
	default:
		err = &Error{Kind: KindWriteFailed, Message: fmt.Sprintf("unknown strategy %q", e.opts.Strategy)}
	}
	if err != nil {
		return nil, err
	}

	doc.Filename = Filename(m.Header.Name)
	e.emit("done", fmt.Sprintf("%s: %d pages, %d bytes", doc.Filename, doc.Pages, len(doc.Bytes)))
	return doc, nil
}

func (e *Exporter) exportText(ctx context.Context, m *content.Model, g layout.Geometry) (*Document, error) {
	e.emit("compose", "writing text document")
	name := strings.TrimSpace(m.Header.Name)
	w := document.NewPDFWriter(g, document.PDFOptions{
		Title:     name + " Resume",
		Author:    name,
		CreatedAt: e.opts.CreatedAt,
	})
	c := compose.New(g)
	c.Verbose = e.opts.Verbose

	res, err := c.Compose(ctx, m, w)
	if err != nil {
		return nil, classify(err, "compose", KindWriteFailed)
	}
	return &Document{
		Bytes:    res.Bytes,
		Pages:    res.Pages,
		Strategy: StrategyText,
		Outline:  res.Outline,
	}, nil
}

func (e *Exporter) exportRaster(ctx context.Context, g layout.Geometry) (*Document, error) {
	if e.opts.Surface == nil {
		return nil, &Error{Kind: KindCaptureFailed, Message: "no render surface configured"}
	}
	e.emit("capture", "snapshotting "+e.opts.Surface.ID())
	img, err := e.capturer.Capture(ctx, e.opts.Surface)
	if err != nil {
		return nil, classify(err, "capture", KindCaptureFailed)
	}

	e.emit("paginate", fmt.Sprintf("paging %d byte snapshot", len(img)))
	res, err := raster.Paginate(img, g)
	if err != nil {
		return nil, classify(err, "paginate", KindWriteFailed)
	}
	if e.opts.Verbose {
		log.Printf("[EXPORT] raster document: %d pages", res.Pages)
	}
	return &Document{
		Bytes:    res.Bytes,
		Pages:    res.Pages,
		Strategy: StrategyRaster,
	}, nil
}

func (e *Exporter) emit(step, message string) {
	if e.opts.OnProgress != nil {
		e.opts.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}
