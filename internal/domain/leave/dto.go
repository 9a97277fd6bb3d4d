package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID string  `json:"-"`
	LeaveType  Type    `json:"leave_type" validate:"required,oneof=PAID SICK UNPAID"`
	StartDate  string  `json:"start_date" validate:"required,date"`
	EndDate    string  `json:"end_date" validate:"required,date"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=1000"`

	start time.Time
	end   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if err := validator.Struct(r); err != nil {
		tagErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, tagErrs...)
	}

	if len(errs) > 0 {
		return errs
	}

	r.start, _ = validator.IsValidDate(r.StartDate)
	r.end, _ = validator.IsValidDate(r.EndDate)
	if r.start.After(r.end) {
		return ErrInvalidDateRange
	}

	if r.Reason != nil {
		trimmed := strings.TrimSpace(*r.Reason)
		if trimmed == "" {
			r.Reason = nil
		} else {
			r.Reason = &trimmed
		}
	}

	return nil
}

// Range returns the parsed dates; only meaningful after Validate succeeds.
func (r *ApplyLeaveRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

type ApproveLeaveRequest struct {
	ID      string  `json:"-" validate:"required,uuid"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

func (r *ApproveLeaveRequest) Validate() error {
	return validator.Struct(r)
}

type RejectLeaveRequest struct {
	ID     string `json:"-" validate:"required,uuid"`
	Reason string `json:"reason" validate:"required,max=1000"`
}

func (r *RejectLeaveRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return validator.Struct(r)
}

type ApprovalResponse struct {
	ID           string    `json:"id"`
	ApprovedBy   string    `json:"approved_by"`
	ApproverName *string   `json:"approver_name,omitempty"`
	Comments     *string   `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeaveRequestResponse struct {
	ID                 string             `json:"id"`
	EmployeeID         string             `json:"employee_id"`
	EmployeeName       *string            `json:"employee_name,omitempty"`
	EmployeeDepartment *string            `json:"employee_department,omitempty"`
	LeaveType          Type               `json:"leave_type"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	TotalDays          int                `json:"total_days"`
	Reason             *string            `json:"reason,omitempty"`
	Status             Status             `json:"status"`
	Approvals          []ApprovalResponse `json:"approvals"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	approvals := make([]ApprovalResponse, 0, len(l.Approvals))
	for _, a := range l.Approvals {
		approvals = append(approvals, ApprovalResponse{
			ID:           a.ID,
			ApprovedBy:   a.ApprovedBy,
			ApproverName: a.ApproverName,
			Comments:     a.Comments,
			CreatedAt:    a.CreatedAt,
		})
	}
	return LeaveRequestResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		EmployeeName:       l.EmployeeName,
		EmployeeDepartment: l.EmployeeDepartment,
		LeaveType:          l.LeaveType,
		StartDate:          l.StartDate.Format(validator.DateLayout),
		EndDate:            l.EndDate.Format(validator.DateLayout),
		TotalDays:          l.TotalDays(),
		Reason:             l.Reason,
		Status:             l.Status,
		Approvals:          approvals,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func ToResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	return out
}
