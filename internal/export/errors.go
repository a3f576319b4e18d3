package export

import (
	"errors"
	"fmt"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/document"
	"github.com/saleemkhair/resume-export/internal/layout"
	"github.com/saleemkhair/resume-export/internal/raster"
)

// Kind classifies why an export failed.
type Kind string

const (
	// KindContentIncomplete means a required field of the content model is
	// missing.
	KindContentIncomplete Kind = "ContentIncomplete"
	// KindCaptureFailed means the render surface could not be snapshotted.
	KindCaptureFailed Kind = "CaptureFailed"
	// KindWriteFailed means the document could not be produced or saved.
	KindWriteFailed Kind = "WriteFailed"
)

// Error is the single error type surfaced by the exporter.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of an export error, or "" for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// classify maps a package error to an export Error. Errors of unknown
// origin get the fallback kind.
func classify(err error, message string, fallback Kind) *Error {
	var (
		exp        *Error
		incomplete *content.IncompleteError
		capture    *raster.CaptureError
		write      *document.WriteError
		geometry   *layout.GeometryError
	)
	switch {
	case errors.As(err, &exp):
		return exp
	case errors.As(err, &incomplete):
		return &Error{Kind: KindContentIncomplete, Message: message, Cause: err}
	case errors.As(err, &capture):
		return &Error{Kind: KindCaptureFailed, Message: message, Cause: err}
	case errors.As(err, &write), errors.As(err, &geometry):
		return &Error{Kind: KindWriteFailed, Message: message, Cause: err}
	}
	return &Error{Kind: fallback, Message: message, Cause: err}
}
