package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saleemkhair/resume-export/internal/schemas"
	rootschemas "github.com/saleemkhair/resume-export/schemas"
)

// Format is the encoding of a content file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported content file extension %q", filepath.Ext(path))
}

// Load reads, schema-checks and decodes a content file. Required fields are
// not checked here; see Validate.
func Load(path string) (*Model, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "unknown format", Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	m, err := Parse(data, format)
	if err != nil {
		var lErr *LoadError
		if errors.As(err, &lErr) {
			lErr.Source = path
		}
		return nil, err
	}
	return m, nil
}

// JSONDocument returns content as a JSON document for schema validation.
// JSON input is returned unchanged.
func JSONDocument(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, &LoadError{Source: "(yaml)", Message: "failed to parse YAML", Cause: err}
	}
	converted, err := json.Marshal(generic)
	if err != nil {
		return nil, &LoadError{Source: "(yaml)", Message: "YAML is not representable as JSON", Cause: err}
	}
	return converted, nil
}

// Parse decodes content in the given format after validating its shape
// against the content model schema.
func Parse(data []byte, format Format) (*Model, error) {
	jsonDoc, err := JSONDocument(data, format)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateBytes(rootschemas.ContentModel, jsonDoc); err != nil {
		return nil, &LoadError{Source: "(" + string(format) + ")", Message: "content does not match schema", Cause: err}
	}

	var m Model
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, &LoadError{Source: "(json)", Message: "failed to decode content", Cause: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, &LoadError{Source: "(yaml)", Message: "failed to decode content", Cause: err}
		}
	default:
		return nil, &LoadError{Source: "(" + string(format) + ")", Message: "unsupported format"}
	}

	m.Normalize()
	return &m, nil
}
