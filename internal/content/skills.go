package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillCategory groups skill names under a heading. An empty heading
// lists the skills alone.
type SkillCategory struct {
	Name   string   `json:"category" yaml:"category"`
	Skills []string `json:"skills" yaml:"skills"`
}

// Skills keeps categories in authored order. In content files it is written
// as an object whose key order is preserved, or as a list of categories.
// Each category's skills may be a list or a comma separated string.
type Skills []SkillCategory

// UnmarshalJSON decodes either form, keeping object key order.
func (s *Skills) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []SkillCategory
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object or array, got %v", tok)
	}

	var out Skills
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		names, err := decodeSkillNames(raw)
		if err != nil {
			return fmt.Errorf("skills: category %q: %w", name, err)
		}
		out = append(out, SkillCategory{Name: name, Skills: names})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalJSON writes the object form in category order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes either form, keeping mapping key order.
func (s *Skills) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []SkillCategory
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	case yaml.MappingNode:
		out := make(Skills, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			name := node.Content[i].Value
			names, err := decodeSkillNode(node.Content[i+1])
			if err != nil {
				return fmt.Errorf("skills: category %q: %w", name, err)
			}
			out = append(out, SkillCategory{Name: name, Skills: names})
		}
		*s = out
		return nil
	}
	return fmt.Errorf("skills: line %d: expected mapping or sequence", node.Line)
}

func decodeSkillNames(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil, fmt.Errorf("expected list of strings or comma separated string")
	}
	return SplitList(joined), nil
}

func decodeSkillNode(node *yaml.Node) ([]string, error) {
	if node.Kind == yaml.ScalarNode {
		return SplitList(node.Value), nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// SplitList splits a comma separated list, ignoring commas inside
// parentheses so "AWS (Lambda, S3)" stays one item.
func SplitList(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = appendTrimmed(out, s[start:i])
				start = i + 1
			}
		}
	}
	return appendTrimmed(out, s[start:])
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}
