package leave

import (
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"
)

var (
	ErrLeaveRequestNotFound    = apperror.New(apperror.KindNotFound, "leave request not found")
	ErrInvalidDateRange        = apperror.New(apperror.KindInvalidInput, "start_date must be on or before end_date")
	ErrOverlappingLeaveRequest = apperror.New(apperror.KindConflict, "leave request overlaps an existing pending or approved request")
	ErrInvalidStateTransition  = apperror.New(apperror.KindInvalidState, "leave request is no longer pending")
	ErrApproverNotAnEmployee   = apperror.New(apperror.KindForbidden, "approver must be a registered employee")
)

// StatusTransitionError reports an approve/reject attempt on a request that
// already left PENDING. It matches ErrInvalidStateTransition.
type StatusTransitionError struct {
	Current Status
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("leave request is already %s", e.Current)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
