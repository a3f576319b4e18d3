package compose

import (
	"context"
	"fmt"
	"log"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// Mark records where a section starts in the document.
type Mark struct {
	Section SectionID
	Page    int
	Y       float64
	Lines   int
}

// Result is a finished document.
type Result struct {
	Bytes   []byte
	Pages   int
	Outline []Mark
}

// Composer sequences the section composers over one writer.
type Composer struct {
	Geometry layout.Geometry
	Verbose  bool
}

// New returns a Composer for an already resolved geometry.
func New(g layout.Geometry) *Composer {
	return &Composer{Geometry: g}
}

// Compose writes m to w in the fixed section order and finalizes it. The
// writer must be fresh; it is consumed by the call. On any error no bytes
// are returned.
func (c *Composer) Compose(ctx context.Context, m *content.Model, w document.Writer) (*Result, error) {
	if err := c.Geometry.Validate(); err != nil {
		return nil, err
	}
	if err := content.Validate(m); err != nil {
		return nil, err
	}

	pen := newPen(w, c.Geometry)
	outline := make([]Mark, 0, len(Sections))

	for _, s := range Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		switch s.Kind {
		case KindHeader:
			err = composeHeader(pen, m.Header)
		case KindItems:
			err = composeItems(pen, s.Title, itemsFor(s.ID, m))
		case KindPlain:
			err = composePlain(pen, s.Title, plainFor(s.ID, m))
		default:
			err = fmt.Errorf("section %s: unknown kind %d", s.ID, s.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", s.ID, err)
		}
		if err := w.Err(); err != nil {
			return nil, fmt.Errorf("compose %s: %w", s.ID, err)
		}

		first, lines := pen.mark()
		if first == nil {
			if c.Verbose {
				log.Printf("[EXPORT] section %s empty, skipped", s.ID)
			}
			continue
		}
		outline = append(outline, Mark{Section: s.ID, Page: first.Page, Y: first.Y, Lines: lines})
		if c.Verbose {
			log.Printf("[EXPORT] section %s: page %d, y=%.1fmm, %d lines", s.ID, first.Page, first.Y, lines)
		}
	}

	out, err := w.Finish()
	if err != nil {
		return nil, err
	}
	return &Result{
		Bytes:   out,
		Pages:   pen.Cursor().Page,
		Outline: outline,
	}, nil
}
