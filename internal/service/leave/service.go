package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveApprovalRepository
	employee.EmployeeRepository
	requestService *RequestService
	synchronizer   *Synchronizer
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	leaveApprovalRepository leave.LeaveApprovalRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	auditRepository audit.AuditRepository,
	outboxRepository outbox.OutboxRepository,
) leave.LeaveService {
	requestService := NewRequestService(leaveRequestRepository, employeeRepository, auditRepository, outboxRepository)
	return &LeaveServiceImpl{
		tx:                      tx,
		LeaveRequestRepository:  leaveRequestRepository,
		LeaveApprovalRepository: leaveApprovalRepository,
		EmployeeRepository:      employeeRepository,
		requestService:          requestService,
		synchronizer:            NewSynchronizer(tx, requestService, leaveApprovalRepository, attendanceRepository),
	}
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var created leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = l.requestService.CreateRequest(txCtx, req)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(created), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	requests, err := l.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	if err := l.attachApprovals(ctx, requests); err != nil {
		return nil, err
	}

	return leave.ToResponses(requests), nil
}

// ListPendingLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPendingLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListByStatus(ctx, leave.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	return leave.ToResponses(requests), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	requests := []leave.LeaveRequest{request}
	if err := l.attachApprovals(ctx, requests); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(requests[0]), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, approverUserID string, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approved, err := l.synchronizer.Approve(ctx, req.ID, approverUserID, req.Comment)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(approved), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, approverUserID string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var rejected leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		rejected, err = l.requestService.Reject(txCtx, approverUserID, req)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.InfoContext(ctx, "leave request rejected",
		"leave_id", rejected.ID,
		"employee_id", rejected.EmployeeID,
		"actor_user_id", approverUserID,
	)

	return leave.ToResponse(rejected), nil
}

func (l *LeaveServiceImpl) attachApprovals(ctx context.Context, requests []leave.LeaveRequest) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	approvals, err := l.LeaveApprovalRepository.ListByLeaveIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list leave approvals: %w", err)
	}

	for i := range requests {
		requests[i].Approvals = approvals[requests[i].ID]
	}
	return nil
}
