package attendance

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = apperror.New(apperror.KindConflict, "already checked in today")
	ErrNoCheckInFound        = apperror.New(apperror.KindNotFound, "no attendance record found for today")
	ErrMustCheckInFirst      = apperror.New(apperror.KindInvalidState, "must check in before checking out")
	ErrAlreadyCheckedOut     = apperror.New(apperror.KindConflict, "already checked out today")
	ErrCheckOutBeforeCheckIn = apperror.New(apperror.KindInvalidState, "check-out time cannot be before check-in time")

	// General errors
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrInvalidStatus      = apperror.New(apperror.KindInvalidInput, "status must be one of PRESENT, HALF_DAY, ABSENT, LEAVE")
	ErrInvalidDateRange   = apperror.New(apperror.KindInvalidInput, "start_date must be on or before end_date")
	ErrInvalidMonth       = apperror.New(apperror.KindInvalidInput, "month must be in YYYY-MM format")
)
