package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // snapshots are PNG
	"math"

	"github.com/signintech/gopdf"
	xdraw "golang.org/x/image/draw"

	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
)

const (
	jpegQuality = 90
	mmToPT      = 72 / 25.4
)

// Result is a document assembled from a snapshot.
type Result struct {
	Bytes []byte
	Pages int
}

// Bands returns the pixel rectangles a bitmap of the given size is cut
// into when its width is scaled to the page width. The last band may be
// shorter than the others; no band is empty.
func Bands(width, height int, g layout.Geometry) []image.Rectangle {
	if width <= 0 || height <= 0 {
		return nil
	}
	band := int(math.Round(float64(width) * g.Height / g.Width))
	if band < 1 {
		band = 1
	}
	out := make([]image.Rectangle, 0, (height+band-1)/band)
	for top := 0; top < height; top += band {
		out = append(out, image.Rect(0, top, width, min(top+band, height)))
	}
	return out
}

// Paginate scales the snapshot to the page width and places one
// page-height band of it on each page, full bleed.
func Paginate(snapshot []byte, g layout.Geometry) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(snapshot))
	if err != nil {
		return nil, &CaptureError{Surface: "snapshot", Message: "decode", Cause: err}
	}
	b := img.Bounds()
	bands := Bands(b.Dx(), b.Dy(), g)
	if len(bands) == 0 {
		return nil, &CaptureError{Surface: "snapshot", Message: fmt.Sprintf("empty bitmap %dx%d", b.Dx(), b.Dy())}
	}

	pageW, pageH := g.Width*mmToPT, g.Height*mmToPT
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitPT,
		PageSize: gopdf.Rect{W: pageW, H: pageH},
	})
	pdf.SetInfo(gopdf.PdfInfo{Creator: "resume-export"})

	bandPx := bands[0].Dy()
	for i, r := range bands {
		// Every page gets a full band; a short last band is padded white.
		page := image.NewRGBA(image.Rect(0, 0, r.Dx(), bandPx))
		xdraw.Draw(page, page.Bounds(), image.White, image.Point{}, xdraw.Src)
		xdraw.Draw(page, image.Rect(0, 0, r.Dx(), r.Dy()), img, b.Min.Add(r.Min), xdraw.Over)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, &document.WriteError{Op: fmt.Sprintf("encode page %d", i+1), Cause: err}
		}
		holder, err := gopdf.ImageHolderByBytes(buf.Bytes())
		if err != nil {
			return nil, &document.WriteError{Op: fmt.Sprintf("image page %d", i+1), Cause: err}
		}
		pdf.AddPage()
		if err := pdf.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: pageW, H: pageH}); err != nil {
			return nil, &document.WriteError{Op: fmt.Sprintf("place page %d", i+1), Cause: err}
		}
	}

	out, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, &document.WriteError{Op: "finish", Cause: err}
	}
	return &Result{Bytes: out, Pages: len(bands)}, nil
}
