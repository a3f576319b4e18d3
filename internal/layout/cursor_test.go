package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageCounter struct{ pages int }

func (c *pageCounter) AddPage() { c.pages++ }

func testGeometry(t *testing.T, o *Geometry) Geometry {
	t.Helper()
	g, err := Resolve(o)
	require.NoError(t, err)
	return g
}

func TestNewPaginator_InitialState(t *testing.T) {
	g := DefaultGeometry()
	out := &pageCounter{}
	p := NewPaginator(g, out)

	assert.Equal(t, 1, out.pages)
	assert.Equal(t, Cursor{Page: 1, Y: g.Margins.Top, Lines: 0}, p.Cursor())
}

func TestCheckPageBreak_Geometric(t *testing.T) {
	g := testGeometry(t, &Geometry{MaxLinesPerPage: 1000})
	out := &pageCounter{}
	p := NewPaginator(g, out)

	h := g.LineHeight(RoleBody)
	for p.Cursor().Page == 1 {
		p.Place(h)
	}

	assert.Equal(t, 2, out.pages)
	assert.Equal(t, 1, p.Breaks())
	assert.Equal(t, 1, p.Cursor().Lines)
	assert.InDelta(t, g.Margins.Top+h, p.Cursor().Y, 1e-9)
}

func TestCheckPageBreak_Density(t *testing.T) {
	g := testGeometry(t, &Geometry{MaxLinesPerPage: 3})
	out := &pageCounter{}
	p := NewPaginator(g, out)

	h := g.LineHeight(RoleBody)
	for range 3 {
		assert.False(t, p.CheckPageBreak(h))
		p.Place(h)
	}
	assert.True(t, p.CheckPageBreak(h))
	assert.Equal(t, Cursor{Page: 2, Y: g.Margins.Top}, p.Cursor())
}

func TestReserve(t *testing.T) {
	g := testGeometry(t, &Geometry{MaxLinesPerPage: 3})
	h := g.LineHeight(RoleBody)

	tests := []struct {
		name      string
		placed    int
		lines     int
		height    float64
		wantBreak bool
	}{
		{"empty page never breaks", 0, 5, g.Height * 10, false},
		{"two lines fit under the cap", 1, 2, 2 * h, false},
		{"two lines exceed the cap", 2, 2, 2 * h, true},
		{"one line fits at the cap", 2, 1, h, false},
		{"height overflows", 1, 1, g.Height, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &pageCounter{}
			p := NewPaginator(g, out)
			for range tt.placed {
				p.Place(h)
			}

			assert.Equal(t, tt.wantBreak, p.Reserve(tt.lines, tt.height))
			if tt.wantBreak {
				assert.Equal(t, Cursor{Page: 2, Y: g.Margins.Top}, p.Cursor())
				assert.Equal(t, 2, out.pages)
			} else {
				assert.Equal(t, tt.placed, p.Cursor().Lines)
				assert.Equal(t, 1, out.pages)
			}
		})
	}
}

func TestCheckPageBreak_NeverOnEmptyPage(t *testing.T) {
	g := DefaultGeometry()
	out := &pageCounter{}
	p := NewPaginator(g, out)

	assert.False(t, p.CheckPageBreak(g.Height*10))
	assert.Equal(t, 1, out.pages)
}

func TestPaginator_Invariants(t *testing.T) {
	g := testGeometry(t, &Geometry{MaxLinesPerPage: 7})
	out := &pageCounter{}
	p := NewPaginator(g, out)

	roles := []Role{RoleTitle, RoleBody, RoleSmall, RoleHeading, RoleBody, RoleSubheading}
	lastPage, lastY := 1, 0.0
	for i := range 200 {
		h := g.LineHeight(roles[i%len(roles)])
		y := p.Place(h)
		c := p.Cursor()

		assert.LessOrEqual(t, c.Lines, g.MaxLinesPerPage)
		assert.LessOrEqual(t, y+h, g.Bottom()+1e-9)
		assert.GreaterOrEqual(t, c.Page, lastPage)
		assert.LessOrEqual(t, c.Page-lastPage, 1, "pages are never skipped")
		if c.Page == lastPage {
			assert.Greater(t, y, lastY)
		} else {
			assert.InDelta(t, g.Margins.Top, y, 1e-9)
		}
		lastPage, lastY = c.Page, y

		if i%5 == 0 {
			p.Advance(3)
		}
	}
	assert.Equal(t, p.Cursor().Page, out.pages)
}

func TestAdvance_DroppedAtPageTop(t *testing.T) {
	g := DefaultGeometry()
	p := NewPaginator(g, &pageCounter{})

	p.Advance(15)
	assert.Equal(t, g.Margins.Top, p.Cursor().Y)

	p.Place(5)
	p.Advance(15)
	assert.InDelta(t, g.Margins.Top+20, p.Cursor().Y, 1e-9)
}
