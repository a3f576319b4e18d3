package content

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate reports missing required fields as an *IncompleteError whose
// fields are dotted paths such as "header.name" or "experience[2].title".
// Whitespace-only values count as missing.
func Validate(m *Model) error {
	if m == nil {
		return &IncompleteError{Fields: []string{"header.name", "header.title"}}
	}
	normalized := m.clone()
	normalized.Normalize()

	err := validatorInstance().Struct(normalized)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields = append(fields, ns)
	}
	return &IncompleteError{Fields: fields}
}

func (m *Model) clone() *Model {
	c := *m
	c.Experience = make([]ExperienceEntry, len(m.Experience))
	for i, e := range m.Experience {
		e.Achievements = append([]string(nil), e.Achievements...)
		c.Experience[i] = e
	}
	c.Skills = make(Skills, len(m.Skills))
	for i, s := range m.Skills {
		s.Skills = append([]string(nil), s.Skills...)
		c.Skills[i] = s
	}
	c.Education = append([]EducationEntry(nil), m.Education...)
	c.Languages = append([]Language(nil), m.Languages...)
	return &c
}
