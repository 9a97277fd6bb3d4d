package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	audit.AuditRepository
	now func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	auditRepository audit.AuditRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		AuditRepository:      auditRepository,
		now:                  time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	nowUTC := a.now().UTC()
	today := attendance.DateOf(nowUTC)

	var record attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(txCtx, employeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, employeeID, today)
		switch {
		case err == nil && existing.CheckInTime != nil:
			return attendance.ErrAlreadyCheckedIn
		case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		// The repository re-checks under the unique key, so a racing
		// check-in still ends in ErrAlreadyCheckedIn.
		record, err = a.AttendanceRepository.UpsertCheckIn(txCtx, employeeID, today, nowUTC)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.InfoContext(ctx, "employee checked in", "employee_id", employeeID, "date", today.Format(validator.DateLayout))
	return attendance.ToResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	nowUTC := a.now().UTC()
	today := attendance.DateOf(nowUTC)

	var record attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, employeeID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNoCheckInFound
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if existing.CheckInTime == nil {
			return attendance.ErrMustCheckInFirst
		}
		if existing.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if nowUTC.Before(*existing.CheckInTime) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		existing.CheckOutTime = &nowUTC
		record, err = a.AttendanceRepository.UpdateCheckOut(txCtx, existing.ID, nowUTC, attendance.StatusFor(existing))
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.InfoContext(ctx, "employee checked out",
		"employee_id", employeeID,
		"date", today.Format(validator.DateLayout),
		"status", record.Status,
	)
	return attendance.ToResponse(record), nil
}

// Override implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Override(ctx context.Context, adminUserID string, req attendance.OverrideAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status, err := attendance.ParseStatus(req.Status)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var record attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(txCtx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		var before map[string]any
		previous, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, req.EmployeeID, date)
		switch {
		case err == nil:
			before = snapshot(previous)
		case !errors.Is(err, attendance.ErrAttendanceNotFound):
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		record, err = a.AttendanceRepository.UpsertOverride(txCtx, req.EmployeeID, date, status, adminUserID, req.Reason)
		if err != nil {
			return fmt.Errorf("failed to override attendance: %w", err)
		}

		reason := req.Reason
		if _, err := a.AuditRepository.Append(txCtx, audit.Entry{
			Action:      audit.ActionOverride,
			ActorUserID: adminUserID,
			EntityType:  audit.EntityAttendance,
			EntityID:    record.ID,
			Reason:      &reason,
			Changes: map[string]any{
				"before": before,
				"after":  snapshot(record),
			},
		}); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.InfoContext(ctx, "attendance overridden",
		"employee_id", req.EmployeeID,
		"date", req.Date,
		"status", status,
		"actor_user_id", adminUserID,
	)
	return attendance.ToResponse(record), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	from, to, err := filter.Bounds()
	if err != nil {
		return nil, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.ToResponses(records), nil
}

// MonthlyStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyStats(ctx context.Context, employeeID string, month string) (attendance.MonthlyStatsResponse, error) {
	records, err := a.monthRecords(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthlyStatsResponse{}, err
	}

	return attendance.MonthlyStatsResponse{
		EmployeeID:   employeeID,
		Month:        month,
		MonthlyStats: attendance.Tally(records),
	}, nil
}

func (a *AttendanceServiceImpl) monthRecords(ctx context.Context, employeeID string, month string) ([]attendance.Attendance, error) {
	start, ok := validator.IsValidMonth(month)
	if !ok {
		return nil, attendance.ErrInvalidMonth
	}
	from, to := attendance.MonthRange(start)

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func snapshot(a attendance.Attendance) map[string]any {
	return map[string]any{
		"date":            a.Date.Format(validator.DateLayout),
		"check_in_time":   a.CheckInTime,
		"check_out_time":  a.CheckOutTime,
		"status":          string(a.Status),
		"overridden_by":   a.OverriddenBy,
		"override_reason": a.OverrideReason,
	}
}
