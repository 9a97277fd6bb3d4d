package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

// Synchronizer approves a leave request and marks every day it covers as
// LEAVE in the attendance ledger, as one unit of work.
type Synchronizer struct {
	tx          database.Transactor
	requests    *RequestService
	approvals   leave.LeaveApprovalRepository
	attendances attendance.AttendanceRepository
}

func NewSynchronizer(
	tx database.Transactor,
	requests *RequestService,
	approvalRepository leave.LeaveApprovalRepository,
	attendanceRepository attendance.AttendanceRepository,
) *Synchronizer {
	return &Synchronizer{
		tx:          tx,
		requests:    requests,
		approvals:   approvalRepository,
		attendances: attendanceRepository,
	}
}

// Approve locks the request, checks it is still PENDING, resolves the
// approver's employee record, then writes the status change, the approval
// receipt, one LEAVE attendance row per day, the audit entry and the
// outbox event. Any failure discards all of them.
func (s *Synchronizer) Approve(ctx context.Context, leaveID, approverUserID string, comment *string) (leave.LeaveRequest, error) {
	var (
		approved           leave.LeaveRequest
		approverEmployeeID string
		dayCount           int
	)

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.requests.LeaveRequestRepository.GetByIDForUpdate(txCtx, leaveID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}

		if request.Status != leave.StatusPending {
			return &leave.StatusTransitionError{Current: request.Status}
		}

		approver, err := s.requests.EmployeeRepository.GetByUserID(txCtx, approverUserID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return leave.ErrApproverNotAnEmployee
			}
			return fmt.Errorf("failed to resolve approver: %w", err)
		}

		// 1. status
		updated, err := s.requests.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, leave.StatusApproved)
		if err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}

		// 2. receipt
		receipt, err := s.approvals.Create(txCtx, leave.Approval{
			LeaveID:    request.ID,
			ApprovedBy: approver.ID,
			Comments:   comment,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave approval: %w", err)
		}
		name := approver.FullName
		receipt.ApproverName = &name

		// 3. attendance, overwriting whatever status each day had
		days := request.Days()
		for _, day := range days {
			if _, err := s.attendances.MarkLeave(txCtx, request.EmployeeID, day); err != nil {
				return fmt.Errorf("failed to mark attendance on %s as leave: %w", day.Format("2006-01-02"), err)
			}
		}

		// 4. audit
		if _, err := s.requests.AuditRepository.Append(txCtx, audit.Entry{
			Action:      audit.ActionApprove,
			ActorUserID: approverUserID,
			EntityType:  audit.EntityLeave,
			EntityID:    request.ID,
			Reason:      comment,
			Changes: map[string]any{
				"status":   string(leave.StatusApproved),
				"comments": comment,
			},
		}); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		if err := s.requests.publish(txCtx, outbox.EventLeaveApproved, updated, approverUserID, comment); err != nil {
			return err
		}

		updated.Approvals = []leave.Approval{receipt}
		approved = updated
		approverEmployeeID = approver.ID
		dayCount = len(days)
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.InfoContext(ctx, "leave request approved",
		"leave_id", approved.ID,
		"employee_id", approved.EmployeeID,
		"approver_employee_id", approverEmployeeID,
		"days", dayCount,
	)

	return approved, nil
}
