package attendance

import (
	"time"
)

// Status is the per-day attendance outcome.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
)

// FullDayHours is the inclusive lower bound of a PRESENT day.
const FullDayHours = 4.0

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPresent, StatusHalfDay, StatusAbsent, StatusLeave:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Attendance is the record of one employee on one calendar day.
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	CheckInTime    *time.Time
	CheckOutTime   *time.Time
	Status         Status
	OverriddenBy   *string
	OverrideReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOverridden reports whether an administrator pinned the status.
func (a Attendance) IsOverridden() bool {
	return a.OverriddenBy != nil
}

// DurationHours returns the worked hours, or false when the day is not closed.
func (a Attendance) DurationHours() (float64, bool) {
	if a.CheckInTime == nil || a.CheckOutTime == nil {
		return 0, false
	}
	return a.CheckOutTime.Sub(*a.CheckInTime).Hours(), true
}

// StatusFor derives the effective status of a record. Overridden and LEAVE
// records keep their stored status. An open day (check-in without check-out)
// reports HALF_DAY, the same value as a closed short day.
func StatusFor(a Attendance) Status {
	if a.IsOverridden() || a.Status == StatusLeave {
		return a.Status
	}
	if a.CheckInTime == nil {
		return StatusAbsent
	}
	hours, closed := a.DurationHours()
	if !closed || hours < FullDayHours {
		return StatusHalfDay
	}
	return StatusPresent
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last calendar day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

type MonthlyStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"half_day"`
	Leave   int `json:"leave"`
	Total   int `json:"total"`
}

// Tally counts records by their effective status.
func Tally(records []Attendance) MonthlyStats {
	var stats MonthlyStats
	for _, r := range records {
		switch StatusFor(r) {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		case StatusHalfDay:
			stats.HalfDay++
		case StatusLeave:
			stats.Leave++
		}
		stats.Total++
	}
	return stats
}
