package compose

import (
	"strings"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// item is one entry of a KindItems section.
type item struct {
	Heading string
	Sub     string
	Bullets []string
	Note    string
}

func (it item) empty() bool {
	return it.Heading == "" && it.Sub == "" && len(it.Bullets) == 0 && it.Note == ""
}

// paragraph is one entry of a KindPlain section.
type paragraph struct {
	Text   string
	Role   layout.Role
	Weight document.Weight
}

func composeHeader(p *Pen, h content.Header) error {
	var missing []string
	if strings.TrimSpace(h.Name) == "" {
		missing = append(missing, "header.name")
	}
	if strings.TrimSpace(h.Title) == "" {
		missing = append(missing, "header.title")
	}
	if len(missing) > 0 {
		return &content.IncompleteError{Fields: missing}
	}

	p.Paragraph(h.Name, layout.RoleTitle, document.Bold)
	p.Paragraph(h.Title, layout.RoleSubtitle, document.Regular)
	p.Space(headerSpacing)

	contacts := []struct{ label, value string }{
		{"Location", h.Location},
		{"Email", h.Email},
		{"Mobile", h.Phone},
		{"LinkedIn", h.LinkedInURL},
	}
	for _, c := range contacts {
		if v := strings.TrimSpace(c.value); v != "" {
			p.Paragraph(c.label+": "+v, layout.RoleSmall, document.Regular)
		}
	}
	p.Space(sectionSpacing)
	return nil
}

func composeItems(p *Pen, title string, items []item) error {
	if len(items) == 0 {
		return nil
	}
	p.Title(title)
	for i, it := range items {
		if i > 0 {
			p.Space(itemSpacing)
		}
		if it.Heading != "" {
			p.Paragraph(it.Heading, layout.RoleSubheading, document.Bold)
		}
		if it.Sub != "" {
			p.Paragraph(it.Sub, layout.RoleBody, document.Regular)
		}
		if len(it.Bullets) > 0 {
			p.Space(subSpacing)
		}
		for j, b := range it.Bullets {
			if j > 0 {
				p.Space(bulletSpacing)
			}
			p.Bullet(b, layout.RoleBody)
		}
		if it.Note != "" {
			p.Space(subSpacing)
			p.Paragraph(it.Note, layout.RoleSmall, document.Italic)
		}
	}
	p.Space(sectionSpacing)
	return nil
}

func composePlain(p *Pen, title string, paragraphs []paragraph) error {
	if len(paragraphs) == 0 {
		return nil
	}
	p.Title(title)
	for _, para := range paragraphs {
		p.Paragraph(para.Text, para.Role, para.Weight)
	}
	p.Space(sectionSpacing)
	return nil
}

func itemsFor(id SectionID, m *content.Model) []item {
	switch id {
	case SectionExperience:
		items := make([]item, 0, len(m.Experience))
		for _, e := range m.Experience {
			it := item{
				Heading: e.Title,
				Sub:     content.FormatCompanyInfo(e.Company, e.Location, e.Period),
			}
			for _, a := range e.Achievements {
				if a = content.PlainText(a); strings.TrimSpace(a) != "" {
					it.Bullets = append(it.Bullets, a)
				}
			}
			if e.TechStack != "" {
				it.Note = "Tech Stack: " + e.TechStack
			}
			if !it.empty() {
				items = append(items, it)
			}
		}
		return items
	case SectionEducation:
		items := make([]item, 0, len(m.Education))
		for _, e := range m.Education {
			sub := e.School
			if e.Year != "" {
				if sub != "" {
					sub += " — "
				}
				sub += e.Year
			}
			if it := (item{Heading: e.Degree, Sub: sub}); !it.empty() {
				items = append(items, it)
			}
		}
		return items
	}
	return nil
}

func plainFor(id SectionID, m *content.Model) []paragraph {
	var out []paragraph
	switch id {
	case SectionSkills:
		for _, c := range m.Skills {
			if len(c.Skills) == 0 {
				continue
			}
			text := strings.Join(c.Skills, ", ")
			if c.Name != "" {
				text = c.Name + ": " + text
			}
			out = append(out, paragraph{Text: text, Role: layout.RoleBody})
		}
	case SectionLanguages:
		for _, l := range m.Languages {
			text := l.Name
			if l.Proficiency != "" {
				if text != "" {
					text += " – "
				}
				text += l.Proficiency
			}
			if text != "" {
				out = append(out, paragraph{Text: text, Role: layout.RoleBody})
			}
		}
	case SectionReferences:
		if refs := content.PlainText(m.References); strings.TrimSpace(refs) != "" {
			out = append(out, paragraph{Text: refs, Role: layout.RoleBody})
		}
	}
	return out
}
