package leave

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock
type LeaveService interface {
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequests(ctx context.Context) ([]LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, approverUserID string, req ApproveLeaveRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, approverUserID string, req RejectLeaveRequest) (LeaveRequestResponse, error)
}
