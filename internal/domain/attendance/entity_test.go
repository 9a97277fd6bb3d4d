package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute, second int) *time.Time {
	t := time.Date(2025, 3, 10, hour, minute, second, 0, time.UTC)
	return &t
}

func TestStatusFor(t *testing.T) {
	admin := "admin-user"

	cases := []struct {
		name   string
		record Attendance
		want   Status
	}{
		{"no check-in", Attendance{Status: StatusPresent}, StatusAbsent},
		{"open day", Attendance{CheckInTime: at(9, 0, 0), Status: StatusPresent}, StatusHalfDay},
		{"full day", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(17, 0, 0)}, StatusPresent},
		{"short day", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(12, 30, 0)}, StatusHalfDay},
		{"exactly four hours", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(13, 0, 0)}, StatusPresent},
		{"3.99 hours", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(12, 59, 24)}, StatusHalfDay},
		{"leave keeps stored status", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(17, 0, 0), Status: StatusLeave}, StatusLeave},
		{"override wins over timestamps", Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(17, 0, 0), Status: StatusAbsent, OverriddenBy: &admin}, StatusAbsent},
		{"override without timestamps", Attendance{Status: StatusPresent, OverriddenBy: &admin}, StatusPresent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, StatusFor(c.record))
		})
	}
}

func TestDurationHours(t *testing.T) {
	hours, ok := Attendance{CheckInTime: at(9, 0, 0), CheckOutTime: at(12, 59, 24)}.DurationHours()
	assert.True(t, ok)
	assert.InDelta(t, 3.99, hours, 1e-9)

	_, ok = Attendance{CheckInTime: at(9, 0, 0)}.DurationHours()
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PRESENT", "HALF_DAY", "ABSENT", "LEAVE"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}
	_, err := ParseStatus("present")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDateOfAndMonthRange(t *testing.T) {
	local := time.FixedZone("UTC+7", 7*3600)
	// 01:30 local on the 11th is still the 10th in UTC.
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(time.Date(2025, 3, 11, 1, 30, 0, 0, local)))

	first, last := MonthRange(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)
}

func TestTally(t *testing.T) {
	stats := Tally([]Attendance{
		{CheckInTime: at(9, 0, 0), CheckOutTime: at(17, 0, 0)},
		{CheckInTime: at(9, 0, 0), CheckOutTime: at(10, 0, 0)},
		{Status: StatusLeave},
		{Status: StatusLeave},
		{},
	})
	assert.Equal(t, MonthlyStats{Present: 1, HalfDay: 1, Leave: 2, Absent: 1, Total: 5}, stats)
}
