package document

import "fmt"

// WriteError represents an operation the document writer rejected.
type WriteError struct {
	Op    string
	Cause error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("write error: %s", e.Op)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
