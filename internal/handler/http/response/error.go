package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Carries the current status, so report it verbatim.
	var transition *leave.StatusTransitionError
	if errors.As(err, &transition) {
		writeError(w, http.StatusConflict, string(apperror.KindInvalidState), transition.Error())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		NotFound(w, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Message)
	case apperror.KindInvalidInput:
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", appErr.Message)
	case apperror.KindInvalidState:
		writeError(w, http.StatusConflict, string(apperror.KindInvalidState), appErr.Message)
	case apperror.KindForbidden:
		Forbidden(w, appErr.Message)
	case apperror.KindUnauthorized:
		Unauthorized(w, appErr.Message)
	default:
		slog.Error("unexpected domain error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
