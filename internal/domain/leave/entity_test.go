package leave

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"contained", "2025-04-01", "2025-04-05", "2025-04-03", "2025-04-04", true},
		{"same single day", "2025-04-01", "2025-04-01", "2025-04-01", "2025-04-01", true},
		{"touching end", "2025-04-01", "2025-04-05", "2025-04-05", "2025-04-07", true},
		{"touching start", "2025-04-05", "2025-04-07", "2025-04-01", "2025-04-05", true},
		{"adjacent", "2025-04-01", "2025-04-05", "2025-04-06", "2025-04-07", false},
		{"before", "2025-04-10", "2025-04-12", "2025-04-01", "2025-04-09", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Overlaps(day(c.aStart), day(c.aEnd), day(c.bStart), day(c.bEnd)))
		})
	}
}

func TestDays(t *testing.T) {
	lr := LeaveRequest{StartDate: day("2025-02-27"), EndDate: day("2025-03-02")}
	days := lr.Days()
	assert.Equal(t, []time.Time{day("2025-02-27"), day("2025-02-28"), day("2025-03-01"), day("2025-03-02")}, days)
	assert.Equal(t, 4, lr.TotalDays())

	single := LeaveRequest{StartDate: day("2025-03-10"), EndDate: day("2025-03-10")}
	assert.Len(t, single.Days(), 1)
	assert.Equal(t, 1, single.TotalDays())
}

func TestStatusTransitionError(t *testing.T) {
	err := fmt.Errorf("approve: %w", &StatusTransitionError{Current: StatusApproved})

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	var transition *StatusTransitionError
	assert.True(t, errors.As(err, &transition))
	assert.Equal(t, StatusApproved, transition.Current)
	assert.Equal(t, "leave request is already APPROVED", transition.Error())
}

func TestApplyLeaveRequestValidate(t *testing.T) {
	t.Run("start after end", func(t *testing.T) {
		req := ApplyLeaveRequest{EmployeeID: "e", LeaveType: TypePaid, StartDate: "2025-03-12", EndDate: "2025-03-10"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidDateRange)
	})

	t.Run("blank reason becomes nil", func(t *testing.T) {
		blank := "   "
		req := ApplyLeaveRequest{EmployeeID: "e", LeaveType: TypeSick, StartDate: "2025-03-10", EndDate: "2025-03-10", Reason: &blank}
		assert.NoError(t, req.Validate())
		assert.Nil(t, req.Reason)
		start, end := req.Range()
		assert.Equal(t, day("2025-03-10"), start)
		assert.Equal(t, day("2025-03-10"), end)
	})
}
