package content

import (
	"fmt"
	"strings"
)

// IncompleteError reports required content that is missing.
type IncompleteError struct {
	Fields []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("content incomplete: missing %s", strings.Join(e.Fields, ", "))
}

// LoadError represents a failure reading or decoding a content source.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load content %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("load content %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
