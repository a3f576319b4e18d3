// Package schemas holds the JSON Schemas for content files.
package schemas

import _ "embed"

// ContentModel is the JSON Schema every resume content file must satisfy.
//
//go:embed content_model.schema.json
var ContentModel string
