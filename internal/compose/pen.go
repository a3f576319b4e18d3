package compose

import (
	"strings"

	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// Vertical spacing in millimetres.
const (
	sectionSpacing = 8.0
	titleSpacing   = 3.0
	itemSpacing    = 5.0
	subSpacing     = 1.5
	bulletSpacing  = 1.0
	headerSpacing  = 3.0
)

// ascent is the share of the font size above the baseline.
const ascent = 0.9

const bullet = "•"

// Pen is the only way composers reach the output. It owns the page
// arithmetic; composers only choose text, role and spacing.
type Pen struct {
	w   document.Writer
	pag *layout.Paginator
	geo layout.Geometry

	first *layout.Cursor
	lines int
}

func newPen(w document.Writer, g layout.Geometry) *Pen {
	return &Pen{w: w, pag: layout.NewPaginator(g, w), geo: g}
}

// Cursor returns the current document position.
func (p *Pen) Cursor() layout.Cursor { return p.pag.Cursor() }

// Space adds vertical spacing after the previous line.
func (p *Pen) Space(mm float64) { p.pag.Advance(mm) }

// Title writes an upper-cased section title underlined to its own width.
// It breaks the page first unless the title and one body line both fit, by
// height and by line count.
func (p *Pen) Title(title string) {
	text := strings.ToUpper(title)
	h := p.geo.LineHeight(layout.RoleHeading)
	p.pag.Reserve(2, h+titleSpacing+p.geo.LineHeight(layout.RoleBody))

	p.setFont(layout.RoleHeading, document.Bold)
	width := p.w.Width(text)
	y := p.place(h)
	x := p.geo.Margins.Left
	p.w.Text(x, p.baseline(y, layout.RoleHeading), text)
	p.w.Rule(x, y+h, x+width, y+h)
	p.Space(titleSpacing)
}

// Paragraph wraps text to the content width and writes each line.
func (p *Pen) Paragraph(text string, role layout.Role, weight document.Weight) {
	p.setFont(role, weight)
	x := p.geo.Margins.Left
	for line := range layout.Lines(text, p.geo.ContentWidth(), p.w) {
		y := p.place(p.geo.LineHeight(role))
		p.w.Text(x, p.baseline(y, role), line)
	}
}

// Bullet writes a bulleted paragraph with continuation lines hanging under
// the first word.
func (p *Pen) Bullet(text string, role layout.Role) {
	p.setFont(role, document.Regular)
	x := p.geo.Margins.Left
	indent := p.w.Width(bullet + " ")
	first := true
	for line := range layout.Lines(text, p.geo.ContentWidth()-indent, p.w) {
		y := p.place(p.geo.LineHeight(role))
		base := p.baseline(y, role)
		if first {
			p.w.Text(x, base, bullet)
			first = false
		}
		p.w.Text(x+indent, base, line)
	}
}

func (p *Pen) setFont(role layout.Role, weight document.Weight) {
	p.w.SetFont(p.geo.Fonts.Size(role), weight)
}

func (p *Pen) place(h float64) float64 {
	y := p.pag.Place(h)
	if p.first == nil {
		c := p.pag.Cursor()
		c.Y = y
		p.first = &c
	}
	p.lines++
	return y
}

func (p *Pen) baseline(top float64, role layout.Role) float64 {
	return top + p.geo.Fonts.Size(role)*layout.PointsToMM*ascent
}

// mark resets the first-line tracker and returns what it held.
func (p *Pen) mark() (first *layout.Cursor, lines int) {
	first, lines = p.first, p.lines
	p.first, p.lines = nil, 0
	return first, lines
}
