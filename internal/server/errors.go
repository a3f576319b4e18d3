package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		load       *content.LoadError
		geometry   *layout.GeometryError
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation), errors.As(err, &load), errors.As(err, &geometry):
		return http.StatusBadRequest
	}
	switch export.KindOf(err) {
	case export.KindContentIncomplete:
		return http.StatusUnprocessableEntity
	case export.KindCaptureFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func missingFields(err error) []string {
	var incomplete *content.IncompleteError
	if errors.As(err, &incomplete) {
		return incomplete.Fields
	}
	return nil
}
