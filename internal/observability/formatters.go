// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/layout"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to the inner box width, counting runes.
func pad(s string) string {
	inner := boxWidth - 4
	n := utf8.RuneCountInString(s)
	if n > inner {
		runes := []rune(s)
		return string(runes[:inner-3]) + "..."
	}
	return s + strings.Repeat(" ", inner-n)
}

// PrintContentSummary outputs a human-readable summary of a loaded content model.
func (p *Printer) PrintContentSummary(m *content.Model) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", m.Header.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", m.Header.Title))
	sb.WriteString("\n")

	if len(m.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(m.Experience)))
		count := min(len(m.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := m.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", e.Title))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", e.Company))
			}
			sb.WriteString(fmt.Sprintf(" (%d bullets)\n", len(e.Achievements)))
		}
		if len(m.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	skills := 0
	for _, c := range m.Skills {
		skills += len(c.Skills)
	}
	sb.WriteString(fmt.Sprintf("Skills:     %d in %d categories\n", skills, len(m.Skills)))
	sb.WriteString(fmt.Sprintf("Education:  %d\n", len(m.Education)))
	sb.WriteString(fmt.Sprintf("Languages:  %d\n", len(m.Languages)))
	if strings.TrimSpace(m.References) != "" {
		sb.WriteString("References: yes")
	} else {
		sb.WriteString("References: none")
	}

	p.printBox("CONTENT MODEL", sb.String())
}

// PrintGeometry outputs the resolved page layout.
func (p *Printer) PrintGeometry(g layout.Geometry) {
	var sb strings.Builder
	size := g.PageSize
	if size == "" {
		size = "custom"
	}
	sb.WriteString(fmt.Sprintf("Page:     %s %s (%.1f × %.1f mm)\n", size, g.Orientation, g.Width, g.Height))
	sb.WriteString(fmt.Sprintf("Margins:  %.1f / %.1f / %.1f / %.1f mm\n", g.Margins.Top, g.Margins.Right, g.Margins.Bottom, g.Margins.Left))
	sb.WriteString(fmt.Sprintf("Content:  %.1f × %.1f mm\n", g.ContentWidth(), g.ContentHeight()))
	sb.WriteString(fmt.Sprintf("Fonts:    %g/%g/%g/%g/%g/%g pt\n",
		g.Fonts.Title, g.Fonts.Subtitle, g.Fonts.Heading, g.Fonts.Subheading, g.Fonts.Body, g.Fonts.Small))
	sb.WriteString(fmt.Sprintf("Lines:    spacing %.2f, max %d per page", g.LineSpacing, g.MaxLinesPerPage))

	p.printBox("PAGE GEOMETRY", sb.String())
}

// PrintExportResult outputs where the document went and how its sections
// were laid out.
func (p *Printer) PrintExportResult(doc *export.Document, path string) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", doc.Filename))
	if path != "" {
		sb.WriteString(fmt.Sprintf("Saved to: %s\n", path))
	}
	sb.WriteString(fmt.Sprintf("Strategy: %s\n", doc.Strategy))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", doc.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes", len(doc.Bytes)))

	if len(doc.Outline) > 0 {
		sb.WriteString("\n\nSections:\n")
		for _, m := range doc.Outline {
			sb.WriteString(fmt.Sprintf("  • %-11s page %d at %5.1f mm, %d lines\n", m.Section, m.Page, m.Y, m.Lines))
		}
	}

	p.printBox("EXPORT RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
