package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// RequestService holds the single-aggregate steps of the workflow. Its
// methods expect to run inside a transaction opened by the caller.
type RequestService struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	audit.AuditRepository
	outbox.OutboxRepository
	now func() time.Time
}

func NewRequestService(
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	auditRepository audit.AuditRepository,
	outboxRepository outbox.OutboxRepository,
) *RequestService {
	return &RequestService{
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		AuditRepository:        auditRepository,
		OutboxRepository:       outboxRepository,
		now:                    time.Now,
	}
}

// CreateRequest inserts a PENDING request after the overlap check. The
// employee row is locked first so concurrent applications by the same
// employee are checked one after another.
func (r *RequestService) CreateRequest(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequest, error) {
	emp, err := r.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	startDate, endDate := req.Range()
	if startDate.After(endDate) {
		return leave.LeaveRequest{}, leave.ErrInvalidDateRange
	}

	hasOverlap, err := r.LeaveRequestRepository.HasOverlapping(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeaveRequest
	}

	created, err := r.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// Reject moves a PENDING request to REJECTED and records why.
func (r *RequestService) Reject(ctx context.Context, approverUserID string, req leave.RejectLeaveRequest) (leave.LeaveRequest, error) {
	request, err := r.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, &leave.StatusTransitionError{Current: request.Status}
	}

	updated, err := r.LeaveRequestRepository.UpdateStatus(ctx, request.ID, leave.StatusRejected)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	reason := req.Reason
	if _, err := r.AuditRepository.Append(ctx, audit.Entry{
		Action:      audit.ActionReject,
		ActorUserID: approverUserID,
		EntityType:  audit.EntityLeave,
		EntityID:    request.ID,
		Reason:      &reason,
		Changes: map[string]any{
			"status": string(leave.StatusRejected),
			"reason": reason,
		},
	}); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to write audit log: %w", err)
	}

	if err := r.publish(ctx, outbox.EventLeaveRejected, updated, approverUserID, &reason); err != nil {
		return leave.LeaveRequest{}, err
	}

	return updated, nil
}

// publish stores a decision event in the outbox within the current transaction.
func (r *RequestService) publish(ctx context.Context, eventType string, request leave.LeaveRequest, actorUserID string, comment *string) error {
	event, err := outbox.NewEvent(outbox.AggregateLeave, request.ID, eventType, outbox.TopicLeaveDecisions, outbox.LeaveDecision{
		LeaveID:     request.ID,
		EmployeeID:  request.EmployeeID,
		LeaveType:   string(request.LeaveType),
		StartDate:   request.StartDate.Format(validator.DateLayout),
		EndDate:     request.EndDate.Format(validator.DateLayout),
		Status:      string(request.Status),
		ActorUserID: actorUserID,
		Comment:     comment,
		OccurredAt:  r.now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := r.OutboxRepository.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", eventType, err)
	}
	return nil
}
