package layout

import "fmt"

// GeometryError reports a page geometry that cannot be laid out.
type GeometryError struct {
	Field   string
	Message string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s: %s", e.Field, e.Message)
}
