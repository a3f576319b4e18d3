// Package document provides the drawing primitives the resume composer
// writes through, and a PDF implementation of them.
package document

import "github.com/saleemkhair/resume-export/internal/layout"

// Weight is a whole-line text attribute. The output has no inline runs.
type Weight int

const (
	Regular Weight = iota
	Bold
	Italic
)

func (w Weight) String() string {
	switch w {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	}
	return "regular"
}

// Writer is the output surface of a synthesized document. Coordinates are
// millimetres from the top-left corner of the current page; Text places the
// baseline at y. Errors are sticky: once an operation fails the rest are
// ignored and Err reports the first failure.
type Writer interface {
	layout.PageEmitter
	layout.Measurer

	// SetFont selects the font used by Width and Text.
	SetFont(sizePt float64, weight Weight)
	Text(x, y float64, s string)
	Rule(x1, y1, x2, y2 float64)
	Err() error
	// Finish serializes the document. It fails if any earlier operation did.
	Finish() ([]byte, error)
}
