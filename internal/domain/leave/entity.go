package leave

import (
	"time"
)

type Type string

const (
	TypePaid   Type = "PAID"
	TypeSick   Type = "SICK"
	TypeUnpaid Type = "UNPAID"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// BlocksOverlap reports whether a request in this status reserves its dates.
func (s Status) BlocksOverlap() bool {
	return s == StatusPending || s == StatusApproved
}

// LeaveRequest is a contiguous, inclusive date range of requested absence.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName       *string
	EmployeeDepartment *string
	Approvals          []Approval
}

// Approval is the receipt written when a request is approved.
type Approval struct {
	ID         string
	LeaveID    string
	ApprovedBy string
	Comments   *string
	CreatedAt  time.Time

	// Join
	ApproverName *string
}

// Overlaps tests inclusive interval intersection of [aStart, aEnd] and [bStart, bEnd].
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Days returns every calendar day in [StartDate, EndDate].
func (l LeaveRequest) Days() []time.Time {
	var days []time.Time
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// TotalDays is the inclusive length of the request in calendar days.
func (l LeaveRequest) TotalDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
