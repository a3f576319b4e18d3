package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/sfnt"

	"github.com/saleemkhair/resume-export/internal/layout"
)

// DefaultCreationDate is stamped into documents that do not set one, so the
// same content always serializes to the same bytes.
var DefaultCreationDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFOptions carries document metadata.
type PDFOptions struct {
	Title     string
	Author    string
	CreatedAt time.Time
}

// PDFWriter draws onto a gofpdf document with embedded DejaVu Sans
// Condensed faces. Text is written as UTF-8; a rune the active face has no
// glyph for fails the document instead of being substituted.
type PDFWriter struct {
	pdf   *gofpdf.Fpdf
	faces map[Weight]*face
	face  *face
	buf   sfnt.Buffer
	err   error
}

// NewPDFWriter creates an empty document sized to g. No page is open until
// AddPage is called.
func NewPDFWriter(g layout.Geometry, opts PDFOptions) *PDFWriter {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetMargins(g.Margins.Left, g.Margins.Top, g.Margins.Right)
	pdf.SetAutoPageBreak(false, g.Margins.Bottom)
	pdf.SetCatalogSort(true)

	created := opts.CreatedAt
	if created.IsZero() {
		created = DefaultCreationDate
	}
	pdf.SetCreationDate(created)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	pdf.SetCreator("resume-export", true)
	pdf.SetTextColor(26, 32, 44)
	pdf.SetDrawColor(74, 85, 104)
	pdf.SetLineWidth(0.3)

	w := &PDFWriter{pdf: pdf}
	faces, err := loadFaces()
	if err != nil {
		w.err = &WriteError{Op: "load fonts", Cause: err}
		return w
	}
	for _, weight := range []Weight{Regular, Bold, Italic} {
		pdf.AddUTF8FontFromBytes(fontFamily, faces[weight].style, faces[weight].ttf)
	}
	w.faces = faces
	w.SetFont(g.Fonts.Body, Regular)
	return w
}

// AddPage implements layout.PageEmitter.
func (w *PDFWriter) AddPage() {
	if w.failed() {
		return
	}
	w.pdf.AddPage()
}

// SetFont implements Writer.
func (w *PDFWriter) SetFont(sizePt float64, weight Weight) {
	if w.failed() {
		return
	}
	if sizePt <= 0 {
		w.err = &WriteError{Op: "set font", Cause: fmt.Errorf("font size must be positive, got %g", sizePt)}
		return
	}
	f, ok := w.faces[weight]
	if !ok {
		f = w.faces[Regular]
	}
	w.face = f
	w.pdf.SetFont(fontFamily, f.style, sizePt)
}

// Width implements layout.Measurer for the current font.
func (w *PDFWriter) Width(s string) float64 {
	if w.failed() {
		return 0
	}
	return w.pdf.GetStringWidth(s)
}

// Text implements Writer.
func (w *PDFWriter) Text(x, y float64, s string) {
	if w.failed() {
		return
	}
	if w.pdf.PageNo() == 0 {
		w.err = &WriteError{Op: "text", Cause: fmt.Errorf("no page open")}
		return
	}
	if r, missing := w.face.missingGlyph(&w.buf, s); missing {
		w.err = &WriteError{Op: "encode", Cause: fmt.Errorf("no glyph for %q (U+%04X) in %q", r, r, s)}
		return
	}
	w.pdf.Text(x, y, s)
}

// Rule implements Writer.
func (w *PDFWriter) Rule(x1, y1, x2, y2 float64) {
	if w.failed() {
		return
	}
	w.pdf.Line(x1, y1, x2, y2)
}

// Pages reports how many pages have been started.
func (w *PDFWriter) Pages() int {
	return w.pdf.PageCount()
}

// Err implements Writer.
func (w *PDFWriter) Err() error {
	if w.err != nil {
		return w.err
	}
	if err := w.pdf.Error(); err != nil {
		return &WriteError{Op: "pdf", Cause: err}
	}
	return nil
}

// Finish implements Writer.
func (w *PDFWriter) Finish() ([]byte, error) {
	if err := w.Err(); err != nil {
		return nil, err
	}
	if w.pdf.PageNo() == 0 {
		return nil, &WriteError{Op: "finish", Cause: fmt.Errorf("document has no pages")}
	}
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, &WriteError{Op: "output", Cause: err}
	}
	return buf.Bytes(), nil
}

func (w *PDFWriter) failed() bool {
	return w.Err() != nil
}
