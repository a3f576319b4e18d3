// Package layout provides page geometry, greedy text wrapping and the
// page/cursor state machine used when synthesizing a resume document.
package layout

import (
	"fmt"
	"strings"
)

// PointsToMM converts typographic points to millimetres.
const PointsToMM = 25.4 / 72.0

// Role names a semantic font size slot.
type Role int

const (
	RoleTitle Role = iota
	RoleSubtitle
	RoleHeading
	RoleSubheading
	RoleBody
	RoleSmall
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleSubtitle:
		return "subtitle"
	case RoleHeading:
		return "heading"
	case RoleSubheading:
		return "subheading"
	case RoleBody:
		return "body"
	case RoleSmall:
		return "small"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// FontSizes holds point sizes per role.
type FontSizes struct {
	Title      float64 `json:"title,omitempty"`
	Subtitle   float64 `json:"subtitle,omitempty"`
	Heading    float64 `json:"heading,omitempty"`
	Subheading float64 `json:"subheading,omitempty"`
	Body       float64 `json:"body,omitempty"`
	Small      float64 `json:"small,omitempty"`
}

// Size returns the point size configured for role.
func (f FontSizes) Size(role Role) float64 {
	switch role {
	case RoleTitle:
		return f.Title
	case RoleSubtitle:
		return f.Subtitle
	case RoleHeading:
		return f.Heading
	case RoleSubheading:
		return f.Subheading
	case RoleSmall:
		return f.Small
	}
	return f.Body
}

func (f FontSizes) largest() float64 {
	return max(f.Title, f.Subtitle, f.Heading, f.Subheading, f.Body, f.Small)
}

// Margins in millimetres.
type Margins struct {
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
}

// Geometry is the immutable layout configuration of one export.
// Lengths are millimetres, font sizes are points.
type Geometry struct {
	PageSize        string    `json:"page_size,omitempty"`   // A3, A4, A5, Letter, Legal
	Orientation     string    `json:"orientation,omitempty"` // portrait or landscape
	Width           float64   `json:"width,omitempty"`
	Height          float64   `json:"height,omitempty"`
	Margins         Margins   `json:"margins,omitempty"`
	Fonts           FontSizes `json:"fonts,omitempty"`
	LineSpacing     float64   `json:"line_spacing,omitempty"`
	MaxLinesPerPage int       `json:"max_lines_per_page,omitempty"`
}

var pageSizesMM = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// DefaultGeometry returns a portrait A4 business document layout.
func DefaultGeometry() Geometry {
	return Geometry{
		PageSize:    "A4",
		Orientation: "portrait",
		Width:       210,
		Height:      297,
		Margins:     Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		Fonts: FontSizes{
			Title:      16,
			Subtitle:   12,
			Heading:    14,
			Subheading: 12,
			Body:       10,
			Small:      9,
		},
		LineSpacing:     1.15,
		MaxLinesPerPage: 56,
	}
}

// Resolve returns DefaultGeometry with every non-zero field of overrides
// applied. A named page size replaces the default dimensions unless explicit
// width/height are also given; landscape swaps the final dimensions.
func Resolve(overrides *Geometry) (Geometry, error) {
	g := DefaultGeometry()
	if overrides == nil {
		return g, g.Validate()
	}
	o := *overrides

	if o.PageSize != "" {
		dims, ok := pageSizesMM[strings.ToUpper(o.PageSize)]
		if !ok {
			return Geometry{}, &GeometryError{Field: "page_size", Message: fmt.Sprintf("unknown page size %q", o.PageSize)}
		}
		g.PageSize = o.PageSize
		g.Width, g.Height = dims[0], dims[1]
	}
	if o.Width != 0 {
		g.Width = o.Width
	}
	if o.Height != 0 {
		g.Height = o.Height
	}

	g.Margins = mergeMargins(g.Margins, o.Margins)
	g.Fonts = mergeFonts(g.Fonts, o.Fonts)
	if o.LineSpacing != 0 {
		g.LineSpacing = o.LineSpacing
	}
	if o.MaxLinesPerPage != 0 {
		g.MaxLinesPerPage = o.MaxLinesPerPage
	}

	switch strings.ToLower(o.Orientation) {
	case "":
	case "portrait":
		g.Orientation = "portrait"
		if g.Width > g.Height {
			g.Width, g.Height = g.Height, g.Width
		}
	case "landscape":
		g.Orientation = "landscape"
		if g.Width < g.Height {
			g.Width, g.Height = g.Height, g.Width
		}
	default:
		return Geometry{}, &GeometryError{Field: "orientation", Message: fmt.Sprintf("unknown orientation %q", o.Orientation)}
	}

	return g, g.Validate()
}

func mergeMargins(base, o Margins) Margins {
	if o.Top != 0 {
		base.Top = o.Top
	}
	if o.Right != 0 {
		base.Right = o.Right
	}
	if o.Bottom != 0 {
		base.Bottom = o.Bottom
	}
	if o.Left != 0 {
		base.Left = o.Left
	}
	return base
}

func mergeFonts(base, o FontSizes) FontSizes {
	if o.Title != 0 {
		base.Title = o.Title
	}
	if o.Subtitle != 0 {
		base.Subtitle = o.Subtitle
	}
	if o.Heading != 0 {
		base.Heading = o.Heading
	}
	if o.Subheading != 0 {
		base.Subheading = o.Subheading
	}
	if o.Body != 0 {
		base.Body = o.Body
	}
	if o.Small != 0 {
		base.Small = o.Small
	}
	return base
}

// Validate rejects geometries the paginator cannot honour.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return &GeometryError{Field: "page", Message: fmt.Sprintf("page size must be positive, got %.1fx%.1f", g.Width, g.Height)}
	}
	m := g.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return &GeometryError{Field: "margins", Message: "margins must be non-negative"}
	}
	if g.ContentWidth() <= 0 {
		return &GeometryError{Field: "margins", Message: "left and right margins leave no content width"}
	}
	for _, role := range []Role{RoleTitle, RoleSubtitle, RoleHeading, RoleSubheading, RoleBody, RoleSmall} {
		if g.Fonts.Size(role) <= 0 {
			return &GeometryError{Field: "fonts." + role.String(), Message: "font size must be positive"}
		}
	}
	if g.LineSpacing <= 0 {
		return &GeometryError{Field: "line_spacing", Message: "line spacing must be positive"}
	}
	if g.MaxLinesPerPage < 1 {
		return &GeometryError{Field: "max_lines_per_page", Message: "at least one line per page is required"}
	}
	if g.ContentHeight() < g.LineHeightPt(g.Fonts.largest()) {
		return &GeometryError{Field: "margins", Message: "content area is shorter than a single line"}
	}
	return nil
}

// ContentWidth is the horizontal space between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - g.Margins.Left - g.Margins.Right
}

// ContentHeight is the vertical space between the top and bottom margins.
func (g Geometry) ContentHeight() float64 {
	return g.Height - g.Margins.Top - g.Margins.Bottom
}

// Bottom is the lowest y any content may reach.
func (g Geometry) Bottom() float64 {
	return g.Height - g.Margins.Bottom
}

// LineHeight is the vertical advance of one line set in role.
func (g Geometry) LineHeight(role Role) float64 {
	return g.LineHeightPt(g.Fonts.Size(role))
}

// LineHeightPt is the vertical advance of one line at a point size.
func (g Geometry) LineHeightPt(size float64) float64 {
	return size * PointsToMM * g.LineSpacing
}
