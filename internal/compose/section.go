// Package compose lays the resume content model out as a paginated document.
package compose

// SectionID identifies one part of the resume.
type SectionID int

const (
	SectionHeader SectionID = iota
	SectionExperience
	SectionSkills
	SectionEducation
	SectionLanguages
	SectionReferences
)

func (id SectionID) String() string {
	switch id {
	case SectionHeader:
		return "header"
	case SectionExperience:
		return "experience"
	case SectionSkills:
		return "skills"
	case SectionEducation:
		return "education"
	case SectionLanguages:
		return "languages"
	case SectionReferences:
		return "references"
	}
	return "unknown"
}

// Kind selects how a section is laid out.
type Kind int

const (
	// KindHeader is the untitled identity block at the top of page one.
	KindHeader Kind = iota
	// KindItems is a titled list of entries with heading, sub-heading,
	// bullets and an optional note.
	KindItems
	// KindPlain is a titled run of single-style paragraphs.
	KindPlain
)

// Section describes one block of the document.
type Section struct {
	ID    SectionID
	Kind  Kind
	Title string
}

// Sections is the fixed order in which the document is composed.
var Sections = []Section{
	{ID: SectionHeader, Kind: KindHeader},
	{ID: SectionExperience, Kind: KindItems, Title: "Professional Experience"},
	{ID: SectionSkills, Kind: KindPlain, Title: "Technical Skills"},
	{ID: SectionEducation, Kind: KindItems, Title: "Education"},
	{ID: SectionLanguages, Kind: KindPlain, Title: "Languages"},
	{ID: SectionReferences, Kind: KindPlain, Title: "References"},
}
