package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	// ListByEmployee returns the employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// ListByStatus returns requests system-wide with employee identity joined, newest first.
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	// HasOverlapping reports whether a PENDING or APPROVED request of the
	// employee intersects [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) (LeaveRequest, error)
}

// LeaveApprovalRepository - interface for leave_approvals table
type LeaveApprovalRepository interface {
	Create(ctx context.Context, approval Approval) (Approval, error)
	// ListByLeaveIDs groups approvals by leave id, oldest first within a group.
	ListByLeaveIDs(ctx context.Context, leaveIDs []string) (map[string][]Approval, error)
}
