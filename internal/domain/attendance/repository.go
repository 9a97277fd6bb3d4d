package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are UTC calendar days; (employeeID, date) is unique.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the day has no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// UpsertCheckIn records a check-in, creating the day's row if needed.
	// Returns ErrAlreadyCheckedIn when the row already carries a check-in.
	UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time) (Attendance, error)

	// UpdateCheckOut closes an open day. Returns ErrAlreadyCheckedOut when
	// another writer closed it first.
	UpdateCheckOut(ctx context.Context, id string, at time.Time, status Status) (Attendance, error)

	// UpsertOverride pins status and override metadata on the day's row.
	UpsertOverride(ctx context.Context, employeeID string, date time.Time, status Status, overriddenBy string, reason string) (Attendance, error)

	// MarkLeave sets status LEAVE on the day's row, leaving check-in/out untouched.
	MarkLeave(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// ListByEmployee returns records in [from, to] (either bound optional), newest day first.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
}
