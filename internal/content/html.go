package content

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]{5,}$`)
	// separators between a name and its qualifier, e.g. "Arabic – Native"
	pairSeparators = []string{" — ", " – ", " - ", ": "}
)

// FromHTML rebuilds a Model from a snapshot of the rendered resume page.
// It reads the class names the site renders (header-name, job-title,
// company-info, job-description, ...) and ignores everything else.
func FromHTML(r io.Reader) (*Model, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &LoadError{Source: "(html)", Message: "failed to parse HTML", Cause: err}
	}

	var m Model
	m.Header = headerFromHTML(doc)
	m.Experience = experienceFromHTML(doc)
	m.Skills = skillsFromHTML(doc)
	m.Education = educationFromHTML(doc)
	m.Languages = languagesFromHTML(doc)
	m.References = referencesFromHTML(doc)

	m.Normalize()
	return &m, nil
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func headerFromHTML(doc *goquery.Document) Header {
	h := Header{
		Name:  text(doc.Find(".header-name").First()),
		Title: text(doc.Find(".header-title").First()),
	}
	doc.Find(".header-contact").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Find("a").Attr("href"); ok && strings.Contains(href, "linkedin.com") {
			h.LinkedInURL = href
			return
		}
		if href, ok := s.Attr("href"); ok && strings.Contains(href, "linkedin.com") {
			h.LinkedInURL = href
			return
		}
		v := text(s)
		switch {
		case v == "":
		case emailPattern.MatchString(v):
			h.Email = v
		case phonePattern.MatchString(v):
			h.Phone = v
		case h.Location == "":
			h.Location = v
		}
	})
	if h.LinkedInURL == "" {
		if href, ok := doc.Find(".header-contact-link[href*='linkedin.com']").Attr("href"); ok {
			h.LinkedInURL = href
		}
	}
	return h
}

func experienceFromHTML(doc *goquery.Document) []ExperienceEntry {
	var (
		out     []ExperienceEntry
		current *ExperienceEntry
	)
	doc.Find(".job-title, .company-info, .job-description li, .tech-stack").Each(func(_ int, s *goquery.Selection) {
		switch {
		case s.HasClass("job-title"):
			out = append(out, ExperienceEntry{Title: text(s)})
			current = &out[len(out)-1]
		case current == nil:
		case s.HasClass("company-info"):
			v := text(s)
			if stack, ok := strings.CutPrefix(v, "Tech Stack:"); ok {
				current.TechStack = strings.TrimSpace(stack)
				return
			}
			current.Company, current.Location, current.Period = ParseCompanyInfo(v)
		case s.HasClass("tech-stack"):
			current.TechStack = strings.TrimSpace(strings.TrimPrefix(text(s), "Tech Stack:"))
		default:
			current.Achievements = append(current.Achievements, text(s))
		}
	})
	return out
}

func skillsFromHTML(doc *goquery.Document) Skills {
	var out Skills
	doc.Find(".skills-content tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		out = append(out, SkillCategory{
			Name:   text(cells.Eq(0)),
			Skills: SplitList(text(cells.Eq(1))),
		})
	})
	return out
}

func educationFromHTML(doc *goquery.Document) []EducationEntry {
	var out []EducationEntry
	schools := doc.Find(".education-school")
	doc.Find(".education-degree").Each(func(i int, s *goquery.Selection) {
		entry := EducationEntry{Degree: text(s)}
		if i < schools.Length() {
			entry.School, entry.Year = splitPair(text(schools.Eq(i)))
		}
		out = append(out, entry)
	})
	return out
}

func languagesFromHTML(doc *goquery.Document) []Language {
	var out []Language
	doc.Find(".languages-list li").Each(func(_ int, s *goquery.Selection) {
		name, level := splitPair(text(s))
		out = append(out, Language{Name: name, Proficiency: level})
	})
	return out
}

func referencesFromHTML(doc *goquery.Document) string {
	sel := doc.Find(".references-content").First().Clone()
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		a.ReplaceWithHtml("[" + htmlEscape(text(a)) + "](" + htmlEscape(href) + ")")
	})
	return text(sel)
}

func htmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// ParseCompanyInfo splits "Company — Location | Period" into its parts.
// Missing parts come back empty.
func ParseCompanyInfo(s string) (company, location, period string) {
	head := s
	if i := strings.LastIndex(s, "|"); i >= 0 {
		head, period = s[:i], strings.TrimSpace(s[i+1:])
	}
	company, location = splitPair(head)
	return company, location, period
}

// FormatCompanyInfo is the inverse of ParseCompanyInfo.
func FormatCompanyInfo(company, location, period string) string {
	head := company
	if location != "" {
		if head != "" {
			head += " — "
		}
		head += location
	}
	switch {
	case head == "":
		return period
	case period == "":
		return head
	}
	return head + " | " + period
}

func splitPair(s string) (string, string) {
	s = strings.TrimSpace(s)
	for _, sep := range pairSeparators {
		if a, b, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(a), strings.TrimSpace(b)
		}
	}
	return s, ""
}
