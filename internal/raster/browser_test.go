package raster

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animatedPage = `<!doctype html><html><body>
<div class="resume-container" style="width: 600px">
  <h1 id="name" style="opacity: 0; transform: translateY(20px)">Jane Doe</h1>
  <p id="title">Engineer</p>
  <div id="faded" style="opacity: 0.2">Experience</div>
</div></body></html>`

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("Chrome/Chromium not installed, skipping browser surface test")
	return ""
}

func styleOf(t *testing.T, b *BrowserSurface, id string) string {
	t.Helper()
	var style string
	require.NoError(t, b.run(context.Background(),
		chromedp.Evaluate(`document.getElementById(`+jsString(id)+`).getAttribute('style') || ''`, &style)))
	return style
}

func TestBrowserSurface_CaptureRestoresStyles(t *testing.T) {
	chrome := findChrome(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(animatedPage))
	}))
	defer srv.Close()

	b := NewBrowserSurface(srv.URL, "")
	b.ExecPath = chrome
	b.Timeout = 20 * time.Second
	defer b.Close()

	before := map[string]string{}
	for _, id := range []string{"name", "title", "faded"} {
		before[id] = styleOf(t, b, id)
	}

	img, err := (&Capturer{Settle: 50 * time.Millisecond}).Capture(context.Background(), b)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(img))
	require.NoError(t, err)

	for id, style := range before {
		assert.Equal(t, style, styleOf(t, b, id), id)
	}
}

func TestBrowserSurface_MissingElement(t *testing.T) {
	chrome := findChrome(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	b := NewBrowserSurface(srv.URL, ".resume-container")
	b.ExecPath = chrome
	defer b.Close()

	_, err := (&Capturer{}).Capture(context.Background(), b)
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "element not found", ce.Message)
}

func TestBrowserSurface_NoURL(t *testing.T) {
	b := NewBrowserSurface("", "")
	_, err := b.Prepare(context.Background())
	assert.ErrorContains(t, err, "no URL")
	assert.Equal(t, "#"+DefaultSelector, b.ID())
}
