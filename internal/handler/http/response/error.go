package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Shift domain errors. Every illegal transition shares one base error;
	// the concrete message tells the employee what went wrong.
	case errors.Is(err, shift.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrSessionNotFound):
		NotFound(w, "Shift session not found")
	case errors.Is(err, shift.ErrUnknownAction):
		BadRequest(w, "Unknown shift action", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
