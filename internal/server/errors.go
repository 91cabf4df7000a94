package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/burnout-insights/internal/db"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored analysis does not exist
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// ErrStoreUnavailable indicates an endpoint needs a store that is not configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "analysis store is not configured"
}

// ErrForbidden indicates a caller asked for another user's data
type ErrForbidden struct {
	CallerID int
	UserID   int
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("caller %d may not access user %d", e.CallerID, e.UserID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrNotFound
		forbidden   *ErrForbidden
		unavailable *ErrStoreUnavailable
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation for the first
// failing field. Other errors pass through unchanged.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	// Embedded request fields are promoted in the JSON body
	field = strings.TrimPrefix(field, "AnalyzeRequest.")

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "gt":
		msg = "must be greater than " + fe.Param()
	case "max":
		msg = "must contain at most " + fe.Param() + " items"
	case "oneof":
		msg = "must be one of " + fe.Param()
	default:
		msg = "failed " + fe.Tag() + " check"
	}
	return &ErrValidation{Field: field, Message: msg}
}
