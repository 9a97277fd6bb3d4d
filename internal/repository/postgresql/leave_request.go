package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		   lr.status, lr.created_at, lr.updated_at, e.full_name, e.department
	FROM leave_requests lr
	INNER JOIN employees e ON lr.employee_id = e.id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.EmployeeDepartment,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) queryMany(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) queryOne(ctx context.Context, query string, args ...any) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("get leave request: %w", err)
	}
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	query := `
		WITH lr AS (
			INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, employee_id, leave_type, start_date, end_date, reason, status, created_at, updated_at
		)
		SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
			   lr.status, lr.created_at, lr.updated_at, e.full_name, e.department
		FROM lr
		INNER JOIN employees e ON lr.employee_id = e.id
	`

	return r.queryOne(ctx, query,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Reason,
		leave.StatusPending,
	)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.queryOne(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id)
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
// A concurrent approver blocks here until the first transaction ends and
// then reads the committed status.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.queryOne(ctx, leaveRequestSelect+` WHERE lr.id = $1 FOR UPDATE OF lr`, id)
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.queryMany(ctx, leaveRequestSelect+` WHERE lr.employee_id = $1 ORDER BY lr.created_at DESC`, employeeID)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return r.queryMany(ctx, leaveRequestSelect+` WHERE lr.status = $1 ORDER BY lr.created_at DESC`, status)
}

// HasOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $5
			  AND end_date >= $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leave.StatusPending, leave.StatusApproved, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlapping leave: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.LeaveRequest, error) {
	query := `
		WITH lr AS (
			UPDATE leave_requests
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, employee_id, leave_type, start_date, end_date, reason, status, created_at, updated_at
		)
		SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
			   lr.status, lr.created_at, lr.updated_at, e.full_name, e.department
		FROM lr
		INNER JOIN employees e ON lr.employee_id = e.id
	`

	return r.queryOne(ctx, query, id, status)
}
