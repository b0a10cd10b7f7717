package response

import (
	"errors"
	"net/http"

	"github.com/danny20232023/hris-sub003/internal/domain/auth"
	"github.com/danny20232023/hris-sub003/internal/domain/overtime"
	"github.com/danny20232023/hris-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
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
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrPermissionNotFound):
		NotFound(w, "Overtime transaction not found")
	case errors.Is(err, overtime.ErrDateEntryNotFound):
		NotFound(w, "Overtime date not found")
	case errors.Is(err, overtime.ErrNoPendingWindow):
		BadRequest(w, "No computed result pending for this overtime date", nil)
	case errors.Is(err, overtime.ErrInvalidStatus):
		BadRequest(w, "Invalid status transition", nil)
	case errors.Is(err, overtime.ErrNotApproved):
		BadRequest(w, "Overtime transaction is not approved", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
