package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, check_in_time, check_out_time, status,
	overridden_by, override_reason, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.CheckInTime,
		&a.CheckOutTime,
		&a.Status,
		&a.OverriddenBy,
		&a.OverrideReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance by employee and date: %w", err)
	}

	return a, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
// The conditional DO UPDATE keeps two racing check-ins from both succeeding:
// the loser sees no returned row. A status pinned by an override is kept.
func (r *attendanceRepositoryImpl) UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in_time, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			status = CASE WHEN attendances.overridden_by IS NULL
				THEN EXCLUDED.status ELSE attendances.status END,
			updated_at = NOW()
		WHERE attendances.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, at, attendance.StatusPresent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err, "attendances_employee_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("upsert check-in: %w", err)
	}

	return a, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateCheckOut(ctx context.Context, id string, at time.Time, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, at, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("update check-out: %w", err)
	}

	return a, nil
}

// UpsertOverride implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpsertOverride(ctx context.Context, employeeID string, date time.Time, status attendance.Status, overriddenBy string, reason string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status, overridden_by, override_reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			overridden_by = EXCLUDED.overridden_by,
			override_reason = EXCLUDED.override_reason,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, status, overriddenBy, reason))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("upsert attendance override: %w", err)
	}

	return a, nil
}

// MarkLeave implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkLeave(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, attendance.StatusLeave))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("mark attendance as leave: %w", err)
	}

	return a, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
