package raster

import "fmt"

// CaptureError is returned when a surface cannot be snapshotted.
type CaptureError struct {
	Surface string
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture %s: %s: %v", e.Surface, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture %s: %s", e.Surface, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}
