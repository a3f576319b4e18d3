package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/saleemkhair/resume-export/internal/compose"
	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
	"github.com/saleemkhair/resume-export/internal/raster"
)

func loadResume(t *testing.T) *content.Model {
	t.Helper()
	m, err := content.Load("../content/testdata/resume.json")
	require.NoError(t, err)
	return m
}

type stubSurface struct {
	id         string
	img        []byte
	captureErr error
	prepared   int
	restored   int
}

func (s *stubSurface) ID() string { return s.id }

func (s *stubSurface) Prepare(context.Context) (raster.Token, error) {
	s.prepared++
	return raster.NewToken(), nil
}

func (s *stubSurface) Capture(context.Context, raster.Token) ([]byte, error) {
	return s.img, s.captureErr
}

func (s *stubSurface) Restore(context.Context, raster.Token) error {
	s.restored++
	return nil
}

func snapshot(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		img.SetGray(0, y, color.Gray{Y: uint8(y)})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExportDocument_Text(t *testing.T) {
	var steps []string
	e := New(Options{OnProgress: func(ev ProgressEvent) { steps = append(steps, ev.Step) }})

	doc, err := e.ExportDocument(context.Background(), loadResume(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "Saleem_Khair_Resume.pdf", doc.Filename)
	assert.Equal(t, StrategyText, doc.Strategy)
	assert.GreaterOrEqual(t, doc.Pages, 1)
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF-")))
	require.NotEmpty(t, doc.Outline)
	assert.Equal(t, compose.SectionHeader, doc.Outline[0].Section)
	assert.Equal(t, []string{"validate", "compose", "done"}, steps)
}

func TestExportDocument_Idempotent(t *testing.T) {
	m := loadResume(t)
	first, err := New(Options{}).ExportDocument(context.Background(), m, nil)
	require.NoError(t, err)

	var g errgroup.Group
	for range 4 {
		g.Go(func() error {
			doc, err := New(Options{}).ExportDocument(context.Background(), m, nil)
			if err != nil {
				return err
			}
			if !bytes.Equal(first.Bytes, doc.Bytes) {
				return errors.New("export output differs")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestExportDocument_CreatedAtChangesBytes(t *testing.T) {
	m := loadResume(t)
	a, err := New(Options{}).ExportDocument(context.Background(), m, nil)
	require.NoError(t, err)
	b, err := New(Options{CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}).ExportDocument(context.Background(), m, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Bytes, b.Bytes)
}

func TestExportDocument_GeometryOverrides(t *testing.T) {
	m := loadResume(t)
	dense, err := New(Options{}).ExportDocument(context.Background(), m, &layout.Geometry{MaxLinesPerPage: 10})
	require.NoError(t, err)
	loose, err := New(Options{}).ExportDocument(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Greater(t, dense.Pages, loose.Pages)
}

func TestExportDocument_ContentIncomplete(t *testing.T) {
	m := loadResume(t)
	m.Header.Name = ""

	doc, err := New(Options{}).ExportDocument(context.Background(), m, nil)
	assert.Nil(t, doc)
	assert.Equal(t, KindContentIncomplete, KindOf(err))
	var incomplete *content.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"header.name"}, incomplete.Fields)
}

func TestExportDocument_InvalidGeometry(t *testing.T) {
	doc, err := New(Options{}).ExportDocument(context.Background(), loadResume(t), &layout.Geometry{PageSize: "B12"})
	assert.Nil(t, doc)
	assert.Equal(t, KindWriteFailed, KindOf(err))
	var gErr *layout.GeometryError
	assert.ErrorAs(t, err, &gErr)
}

func TestExportDocument_UndrawableTextFails(t *testing.T) {
	m := loadResume(t)
	m.References = "Available in 日本語"

	doc, err := New(Options{}).ExportDocument(context.Background(), m, nil)
	assert.Nil(t, doc)
	assert.Equal(t, KindWriteFailed, KindOf(err))
	var wErr *document.WriteError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, "encode", wErr.Op)
}

func TestExportDocument_Raster(t *testing.T) {
	s := &stubSurface{id: t.Name(), img: snapshot(t, 420, 1500)}
	doc, err := New(Options{Strategy: StrategyRaster, Surface: s}).ExportDocument(context.Background(), loadResume(t), nil)
	require.NoError(t, err)

	assert.Equal(t, StrategyRaster, doc.Strategy)
	assert.Equal(t, 3, doc.Pages)
	assert.Empty(t, doc.Outline)
	assert.Equal(t, "Saleem_Khair_Resume.pdf", doc.Filename)
	assert.Equal(t, 1, s.restored)
}

func TestExportDocument_RasterFailures(t *testing.T) {
	tests := []struct {
		name    string
		surface raster.Surface
	}{
		{"no surface", nil},
		{"capture error", &stubSurface{id: "capture-error", captureErr: errors.New("boom")}},
		{"not an image", &stubSurface{id: "not-an-image", img: []byte("junk")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(Options{Strategy: StrategyRaster, Surface: tt.surface}).ExportDocument(context.Background(), loadResume(t), nil)
			assert.Nil(t, doc)
			assert.Equal(t, KindCaptureFailed, KindOf(err))
		})
	}
}

func TestExportDocument_AutoFallsBackToText(t *testing.T) {
	s := &stubSurface{id: t.Name(), captureErr: errors.New("element not found")}
	var steps []string
	e := New(Options{
		Strategy:   StrategyAuto,
		Surface:    s,
		OnProgress: func(ev ProgressEvent) { steps = append(steps, ev.Step) },
	})

	doc, err := e.ExportDocument(context.Background(), loadResume(t), nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyText, doc.Strategy)
	assert.Equal(t, 1, s.prepared)
	assert.Equal(t, 1, s.restored)
	assert.Contains(t, steps, "fallback")
}

func TestExportDocument_AutoWithoutSurface(t *testing.T) {
	doc, err := New(Options{Strategy: StrategyAuto}).ExportDocument(context.Background(), loadResume(t), nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyText, doc.Strategy)
}

func TestExportDocument_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := New(Options{}).ExportDocument(ctx, loadResume(t), nil)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindWriteFailed, KindOf(err))
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyText, false},
		{"text", StrategyText, false},
		{"RASTER", StrategyRaster, false},
		{" auto ", StrategyAuto, false},
		{"vector", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	wrapped := errors.Join(errors.New("context"), &Error{Kind: KindCaptureFailed, Message: "x"})
	assert.Equal(t, KindCaptureFailed, KindOf(wrapped))
}
