// Package content defines the resume content model shared by on-screen
// rendering and document export, and the providers that load it.
package content

import "strings"

// Model is the structured resume content consumed by the export pipeline.
// It is read-only for the duration of an export.
type Model struct {
	Header     Header            `json:"header" yaml:"header"`
	Experience []ExperienceEntry `json:"experience,omitempty" yaml:"experience,omitempty" validate:"dive"`
	Skills     Skills            `json:"skills,omitempty" yaml:"skills,omitempty" validate:"dive"`
	Education  []EducationEntry  `json:"education,omitempty" yaml:"education,omitempty" validate:"dive"`
	Languages  []Language        `json:"languages,omitempty" yaml:"languages,omitempty" validate:"dive"`
	References string            `json:"references,omitempty" yaml:"references,omitempty"`
}

// Header identifies the subject of the resume. Name and Title are required;
// empty contact fields are omitted from the document.
type Header struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty" yaml:"linkedin_url,omitempty"`
}

// ExperienceEntry is one role. Period is free text and never parsed. Every
// field is optional; an entry without a title is written without a heading.
type ExperienceEntry struct {
	Title        string   `json:"title" yaml:"title"`
	Company      string   `json:"company,omitempty" yaml:"company,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Period       string   `json:"period,omitempty" yaml:"period,omitempty"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	TechStack    string   `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
}

// EducationEntry is one degree.
type EducationEntry struct {
	Degree string `json:"degree" yaml:"degree"`
	School string `json:"school,omitempty" yaml:"school,omitempty"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
}

// Language is a spoken language and how well it is spoken.
type Language struct {
	Name        string `json:"name" yaml:"name"`
	Proficiency string `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
}

// Normalize trims surrounding whitespace from every field and drops blank
// achievements and skills.
func (m *Model) Normalize() {
	h := &m.Header
	for _, f := range []*string{&h.Name, &h.Title, &h.Location, &h.Email, &h.Phone, &h.LinkedInURL} {
		*f = strings.TrimSpace(*f)
	}
	for i := range m.Experience {
		e := &m.Experience[i]
		for _, f := range []*string{&e.Title, &e.Company, &e.Location, &e.Period, &e.TechStack} {
			*f = strings.TrimSpace(*f)
		}
		e.Achievements = compact(e.Achievements)
	}
	for i := range m.Skills {
		m.Skills[i].Name = strings.TrimSpace(m.Skills[i].Name)
		m.Skills[i].Skills = compact(m.Skills[i].Skills)
	}
	for i := range m.Education {
		e := &m.Education[i]
		e.Degree, e.School, e.Year = strings.TrimSpace(e.Degree), strings.TrimSpace(e.School), strings.TrimSpace(e.Year)
	}
	for i := range m.Languages {
		l := &m.Languages[i]
		l.Name, l.Proficiency = strings.TrimSpace(l.Name), strings.TrimSpace(l.Proficiency)
	}
	m.References = strings.TrimSpace(m.References)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
