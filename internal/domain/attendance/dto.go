package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type OverrideAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,date"`
	Status     string `json:"status" validate:"required,oneof=PRESENT HALF_DAY ABSENT LEAVE"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

func (r *OverrideAttendanceRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return validator.Struct(r)
}

// HistoryFilter bounds a history query; empty strings mean unbounded.
type HistoryFilter struct {
	StartDate string `json:"start_date" validate:"omitempty,date"`
	EndDate   string `json:"end_date" validate:"omitempty,date"`
}

// Bounds validates the filter and returns its parsed dates.
func (f HistoryFilter) Bounds() (from, to *time.Time, err error) {
	if err := validator.Struct(f); err != nil {
		return nil, nil, err
	}
	if f.StartDate != "" {
		d, _ := validator.IsValidDate(f.StartDate)
		from = &d
	}
	if f.EndDate != "" {
		d, _ := validator.IsValidDate(f.EndDate)
		to = &d
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

type AttendanceResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	Date           string     `json:"date"`
	CheckInTime    *time.Time `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	DurationHours  *float64   `json:"duration_hours,omitempty"`
	Status         Status     `json:"status"`
	OverriddenBy   *string    `json:"overridden_by,omitempty"`
	OverrideReason *string    `json:"override_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToResponse maps a record to its API shape, reporting the effective status.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date.Format(validator.DateLayout),
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		Status:         StatusFor(a),
		OverriddenBy:   a.OverriddenBy,
		OverrideReason: a.OverrideReason,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if hours, ok := a.DurationHours(); ok {
		resp.DurationHours = &hours
	}
	return resp
}

func ToResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r))
	}
	return out
}

type MonthlyStatsResponse struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	MonthlyStats
}
