package raster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// DefaultSelector is the root element of the rendered resume.
	DefaultSelector = ".resume-container"
	defaultScale    = 2.0
	defaultTimeout  = 30 * time.Second
	defaultViewport = 1280
)

// forceVisibleJS forces every element under the selector whose animation
// has not finished into its final state, saving the original style
// attributes under the token. It returns -1 when the selector matches
// nothing.
const forceVisibleJS = `(function(sel, token) {
  const root = document.querySelector(sel);
  if (!root) return -1;
  const saved = [];
  for (const el of [root, ...root.querySelectorAll('*')]) {
    const cs = getComputedStyle(el);
    if (cs.opacity === '1' && cs.transform === 'none' && cs.visibility !== 'hidden') continue;
    saved.push([el, el.getAttribute('style')]);
    el.style.setProperty('transition', 'none', 'important');
    el.style.setProperty('animation', 'none', 'important');
    el.style.setProperty('opacity', '1', 'important');
    el.style.setProperty('transform', 'none', 'important');
    el.style.setProperty('visibility', 'visible', 'important');
  }
  window.__resumeExport = window.__resumeExport || {};
  window.__resumeExport[token] = saved;
  return saved.length;
})(%s, %s)`

// restoreJS puts back the style attributes saved under the token.
const restoreJS = `(function(token) {
  const store = window.__resumeExport || {};
  const saved = store[token];
  if (!saved) return 0;
  for (const [el, style] of saved) {
    if (style === null) el.removeAttribute('style');
    else el.setAttribute('style', style);
  }
  delete store[token];
  return saved.length;
})(%s)`

// BrowserSurface is a page rendered in headless Chromium. The tab is opened
// on first use and kept until Close, so Prepare, Capture and Restore all
// act on the same live document.
// Requires Chrome/Chromium to be installed on the system.
type BrowserSurface struct {
	URL      string
	Selector string
	// Scale is the device pixel ratio of the snapshot.
	Scale    float64
	Timeout  time.Duration
	ExecPath string
	Viewport int64
	Verbose  bool

	mu          sync.Mutex
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

// NewBrowserSurface returns a surface for the element matching selector on
// the page at url.
func NewBrowserSurface(url, selector string) *BrowserSurface {
	if selector == "" {
		selector = DefaultSelector
	}
	return &BrowserSurface{URL: url, Selector: selector}
}

// ID implements Surface.
func (b *BrowserSurface) ID() string {
	return b.URL + "#" + b.selector()
}

// Prepare implements Surface.
func (b *BrowserSurface) Prepare(ctx context.Context) (Token, error) {
	token := NewToken()
	var forced int
	expr := fmt.Sprintf(forceVisibleJS, jsString(b.selector()), jsString(string(token)))
	if err := b.run(ctx, chromedp.Evaluate(expr, &forced)); err != nil {
		return "", err
	}
	if forced < 0 {
		return "", &CaptureError{Surface: b.ID(), Message: "element not found"}
	}
	if b.Verbose {
		log.Printf("[CAPTURE] forced %d animated elements visible", forced)
	}
	return token, nil
}

// Capture implements Surface.
func (b *BrowserSurface) Capture(ctx context.Context, _ Token) ([]byte, error) {
	var buf []byte
	if err := b.run(ctx, chromedp.ScreenshotScale(b.selector(), &buf, b.scale(), chromedp.ByQuery)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Restore implements Surface.
func (b *BrowserSurface) Restore(ctx context.Context, token Token) error {
	var restored int
	return b.run(ctx, chromedp.Evaluate(fmt.Sprintf(restoreJS, jsString(string(token))), &restored))
}

// HTML returns the rendered markup of the surface element, after scripts
// have run.
func (b *BrowserSurface) HTML(ctx context.Context) (string, error) {
	var html string
	if err := b.run(ctx, chromedp.OuterHTML(b.selector(), &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	if b.Verbose {
		log.Printf("[CAPTURE] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// Close shuts the browser down.
func (b *BrowserSurface) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tabCancel != nil {
		b.tabCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	b.tabCtx, b.tabCancel, b.allocCancel = nil, nil, nil
	return nil
}

// run executes actions on the tab, bounded by the surface timeout and
// cancelled together with ctx.
func (b *BrowserSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	tab, err := b.tab()
	if err != nil {
		return err
	}

	execCtx, cancel := context.WithTimeout(tab, b.timeout())
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-execCtx.Done():
		}
	}()

	if err := chromedp.Run(execCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}

func (b *BrowserSurface) tab() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tabCtx != nil {
		return b.tabCtx, nil
	}
	if b.URL == "" {
		return nil, errors.New("browser surface has no URL")
	}
	if b.Verbose {
		log.Printf("[CAPTURE] Starting headless browser for: %s", b.URL)
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	// The first Run owns the browser process, so it must not carry a timeout.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("browser start: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(tabCtx, b.timeout())
	defer cancel()
	viewport := b.Viewport
	if viewport <= 0 {
		viewport = defaultViewport
	}
	err := chromedp.Run(loadCtx,
		chromedp.EmulateViewport(viewport, 900),
		chromedp.Navigate(b.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("browser load %s: %w", b.URL, err)
	}

	b.allocCancel, b.tabCtx, b.tabCancel = allocCancel, tabCtx, tabCancel
	return tabCtx, nil
}

func (b *BrowserSurface) selector() string {
	if b.Selector == "" {
		return DefaultSelector
	}
	return b.Selector
}

func (b *BrowserSurface) scale() float64 {
	if b.Scale <= 0 {
		return defaultScale
	}
	return b.Scale
}

func (b *BrowserSurface) timeout() time.Duration {
	if b.Timeout <= 0 {
		return defaultTimeout
	}
	return b.Timeout
}

func jsString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
