package response

import (
	"errors"
	"net/http"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/auth"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		Unauthorized(w, "Invalid or expired refresh token")
	case errors.Is(err, auth.ErrInvalidResetToken):
		Unauthorized(w, "Invalid or expired reset token")
	case errors.Is(err, auth.ErrPasswordLoginBlocked):
		Forbidden(w, "This account signs in with Google")
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotFound(w, "Google sign-in is not configured")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagementAccessRequired):
		Forbidden(w, "Management access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrNotAnEmployee):
		Forbidden(w, "Account has no employee profile")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this employee's data")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCompletedToday):
		Conflict(w, "Attendance already completed for today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrSelfieRequired):
		BadRequest(w, "Check-in selfie is required", nil)
	case errors.Is(err, attendance.ErrNotAnEmployee):
		Forbidden(w, "Account has no employee profile")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
