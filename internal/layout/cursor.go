package layout

// Cursor is the position of the next line within the document.
type Cursor struct {
	Page  int     // 1-based page index
	Y     float64 // top of the next line, mm from the page top
	Lines int     // lines placed on the current page
}

// PageEmitter starts a new physical page on the output surface.
type PageEmitter interface {
	AddPage()
}

// Paginator owns the cursor of one export and decides page breaks.
// It is not safe for concurrent use; every export creates its own.
type Paginator struct {
	geo    Geometry
	out    PageEmitter
	cur    Cursor
	breaks int
}

// NewPaginator opens the first page on out and places the cursor at the top
// margin.
func NewPaginator(g Geometry, out PageEmitter) *Paginator {
	out.AddPage()
	return &Paginator{
		geo: g,
		out: out,
		cur: Cursor{Page: 1, Y: g.Margins.Top},
	}
}

// Cursor returns a copy of the current position.
func (p *Paginator) Cursor() Cursor { return p.cur }

// Geometry returns the layout the paginator was created with.
func (p *Paginator) Geometry() Geometry { return p.geo }

// Breaks reports how many page breaks have been emitted.
func (p *Paginator) Breaks() int { return p.breaks }

// CheckPageBreak starts a new page when required more millimetres would
// cross the bottom margin or the page already holds MaxLinesPerPage lines.
// A page without lines is never broken, so no page is left empty.
func (p *Paginator) CheckPageBreak(required float64) bool {
	return p.Reserve(1, required)
}

// Reserve starts a new page unless the next lines, height millimetres in
// total, fit both below the cursor and within the page's line budget. It
// keeps a heading on the same page as the lines that follow it.
func (p *Paginator) Reserve(lines int, height float64) bool {
	if p.cur.Lines == 0 {
		return false
	}
	overflow := p.cur.Y+height > p.geo.Bottom()
	dense := p.cur.Lines+lines > p.geo.MaxLinesPerPage
	if !overflow && !dense {
		return false
	}
	p.out.AddPage()
	p.breaks++
	p.cur = Cursor{Page: p.cur.Page + 1, Y: p.geo.Margins.Top}
	return true
}

// Place reserves one line of the given height, breaking the page first if
// needed, and returns the y at which the line starts.
func (p *Paginator) Place(height float64) float64 {
	p.CheckPageBreak(height)
	y := p.cur.Y
	p.cur.Y += height
	p.cur.Lines++
	return y
}

// Advance moves the cursor down by dy without placing a line. Spacing is
// dropped at the top of a page that has no lines yet.
func (p *Paginator) Advance(dy float64) {
	if dy <= 0 || p.cur.Lines == 0 {
		return
	}
	p.cur.Y += dy
}
