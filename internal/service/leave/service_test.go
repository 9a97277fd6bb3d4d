package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *memory.Store
	svc   leave.LeaveService

	employeeID string

	// adminUserID belongs to an admin who is also an employee.
	adminUserID     string
	adminEmployeeID string
	// bareAdminUserID has no employee record.
	bareAdminUserID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	mkUser := func(email string, role user.Role) user.User {
		u, err := store.Users().Create(ctx, user.User{Email: email, PasswordHash: "x", Role: role})
		require.NoError(t, err)
		return u
	}
	dept := "Engineering"

	staff := mkUser("staff@example.com", user.RoleEmployee)
	emp, err := store.Employees().Create(ctx, employee.Employee{UserID: staff.ID, FullName: "Sam Staff", Department: &dept})
	require.NoError(t, err)

	admin := mkUser("admin@example.com", user.RoleAdmin)
	adminEmp, err := store.Employees().Create(ctx, employee.Employee{UserID: admin.ID, FullName: "Ada Admin"})
	require.NoError(t, err)

	bare := mkUser("root@example.com", user.RoleAdmin)

	return &fixture{
		store:           store,
		svc:             NewLeaveService(store, store.LeaveRequests(), store.LeaveApprovals(), store.Employees(), store.Attendance(), store.Audit(), store.Outbox()),
		employeeID:      emp.ID,
		adminUserID:     admin.ID,
		adminEmployeeID: adminEmp.ID,
		bareAdminUserID: bare.ID,
	}
}

func (f *fixture) apply(t *testing.T, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.svc.ApplyLeave(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: f.employeeID,
		LeaveType:  leave.TypePaid,
		StartDate:  start,
		EndDate:    end,
	})
	require.NoError(t, err)
	return resp
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func TestApplyLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		f := newFixture(t)
		resp := f.apply(t, "2025-03-10", "2025-03-12")

		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, "2025-03-10", resp.StartDate)
		assert.Empty(t, resp.Approvals)
	})

	t.Run("overlapping request is refused", func(t *testing.T) {
		f := newFixture(t)
		f.apply(t, "2025-03-10", "2025-03-12")

		_, err := f.svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{
			EmployeeID: f.employeeID, LeaveType: leave.TypeSick, StartDate: "2025-03-12", EndDate: "2025-03-14",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingLeaveRequest)

		mine, err := f.svc.ListMyLeaveRequests(ctx, f.employeeID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("approved request also blocks", func(t *testing.T) {
		f := newFixture(t)
		first := f.apply(t, "2025-03-10", "2025-03-12")
		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: first.ID})
		require.NoError(t, err)

		_, err = f.svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{
			EmployeeID: f.employeeID, LeaveType: leave.TypePaid, StartDate: "2025-03-09", EndDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingLeaveRequest)
	})

	t.Run("rejected request does not block", func(t *testing.T) {
		f := newFixture(t)
		first := f.apply(t, "2025-03-10", "2025-03-12")
		_, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: first.ID, Reason: "busy"})
		require.NoError(t, err)

		f.apply(t, "2025-03-10", "2025-03-12")
	})

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		f := newFixture(t)
		f.apply(t, "2025-03-10", "2025-03-12")
		f.apply(t, "2025-03-13", "2025-03-14")
	})

	t.Run("start after end", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{
			EmployeeID: f.employeeID, LeaveType: leave.TypePaid, StartDate: "2025-03-12", EndDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "missing", LeaveType: leave.TypePaid, StartDate: "2025-03-10", EndDate: "2025-03-10",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestApproveLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("marks every day as leave", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-12")

		resp, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID, Comment: ptr("enjoy")})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		require.Len(t, resp.Approvals, 1)
		assert.Equal(t, f.adminEmployeeID, resp.Approvals[0].ApprovedBy)
		assert.Equal(t, "Ada Admin", *resp.Approvals[0].ApproverName)

		for _, d := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
			rec, err := f.store.Attendance().GetByEmployeeAndDate(ctx, f.employeeID, day(d))
			require.NoError(t, err, d)
			assert.Equal(t, attendance.StatusLeave, rec.Status, d)
			assert.Nil(t, rec.CheckInTime, d)
		}
		assert.Equal(t, 3, f.store.AttendanceCount())

		approvals := f.store.Approvals()
		require.Len(t, approvals, 1)
		assert.Equal(t, "enjoy", *approvals[0].Comments)

		entries := f.store.AuditEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionApprove, entries[0].Action)
		assert.Equal(t, audit.EntityLeave, entries[0].EntityType)
		assert.Equal(t, req.ID, entries[0].EntityID)
		assert.Equal(t, f.adminUserID, entries[0].ActorUserID)
		assert.Equal(t, "APPROVED", entries[0].Changes["status"])

		events := f.store.OutboxEvents()
		require.Len(t, events, 1)
		assert.Equal(t, outbox.EventLeaveApproved, events[0].EventType)
		assert.Equal(t, req.ID, events[0].AggregateID)
		assert.Equal(t, outbox.StatusPending, events[0].Status)

		var payload outbox.LeaveDecision
		require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
		assert.Equal(t, "APPROVED", payload.Status)
		assert.Equal(t, f.employeeID, payload.EmployeeID)
		assert.Equal(t, "2025-03-12", payload.EndDate)
	})

	t.Run("keeps check-in times of days already worked", func(t *testing.T) {
		f := newFixture(t)
		at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		_, err := f.store.Attendance().UpsertCheckIn(ctx, f.employeeID, day("2025-03-10"), at)
		require.NoError(t, err)
		req := f.apply(t, "2025-03-10", "2025-03-10")

		_, err = f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.NoError(t, err)

		rec, err := f.store.Attendance().GetByEmployeeAndDate(ctx, f.employeeID, day("2025-03-10"))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLeave, rec.Status)
		require.NotNil(t, rec.CheckInTime)
		assert.True(t, rec.CheckInTime.Equal(at))
	})

	t.Run("overwrites an administrator override", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Attendance().UpsertOverride(ctx, f.employeeID, day("2025-03-11"), attendance.StatusAbsent, f.adminUserID, "no show")
		require.NoError(t, err)
		req := f.apply(t, "2025-03-11", "2025-03-11")

		_, err = f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.NoError(t, err)

		rec, err := f.store.Attendance().GetByEmployeeAndDate(ctx, f.employeeID, day("2025-03-11"))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLeave, attendance.StatusFor(rec))
	})

	t.Run("second approval reports current status", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.NoError(t, err)

		_, err = f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.ErrorIs(t, err, leave.ErrInvalidStateTransition)
		var transition *leave.StatusTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, leave.StatusApproved, transition.Current)

		assert.Len(t, f.store.Approvals(), 1)
		assert.Len(t, f.store.AuditEntries(), 1)
	})

	t.Run("approving a rejected request", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		_, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "no cover"})
		require.NoError(t, err)

		_, err = f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		var transition *leave.StatusTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, leave.StatusRejected, transition.Current)
		assert.Equal(t, 0, f.store.AttendanceCount())
	})

	t.Run("approver without employee record", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")

		_, err := f.svc.ApproveLeaveRequest(ctx, f.bareAdminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		assert.ErrorIs(t, err, leave.ErrApproverNotAnEmployee)

		got, err := f.svc.GetLeaveRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: "7c0e7a4e-1111-4b4b-9a9a-0123456789ab"})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})

	failures := []struct {
		name string
		op   string
		nth  int
	}{
		{name: "attendance write fails midway", op: "attendance.MarkLeave", nth: 2},
		{name: "audit write fails", op: "audit.Append", nth: 0},
		{name: "outbox write fails", op: "outbox.Create", nth: 0},
		{name: "approval receipt fails", op: "leaveApproval.Create", nth: 0},
		{name: "commit fails", op: "tx.Commit", nth: 0},
	}
	for _, tc := range failures {
		t.Run(tc.name+" rolls back", func(t *testing.T) {
			f := newFixture(t)
			req := f.apply(t, "2025-03-10", "2025-03-12")
			f.store.FailOn(tc.op, tc.nth, errors.New("boom"))

			_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
			require.Error(t, err)
			f.store.ClearFaults()

			got, err := f.svc.GetLeaveRequest(ctx, req.ID)
			require.NoError(t, err)
			assert.Equal(t, leave.StatusPending, got.Status)
			assert.Empty(t, got.Approvals)
			assert.Equal(t, 0, f.store.AttendanceCount())
			assert.Empty(t, f.store.AuditEntries())
			assert.Empty(t, f.store.OutboxEvents())
		})
	}
}

// captureLogs routes the default slog logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestDecisionLogsFollowCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("approval is logged once committed", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-11")
		logs := captureLogs(t)

		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.NoError(t, err)
		assert.Contains(t, logs.String(), `"msg":"leave request approved"`)
		assert.Contains(t, logs.String(), `"days":2`)
	})

	t.Run("failed approval commit is not logged", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-11")
		logs := captureLogs(t)
		f.store.FailOn("tx.Commit", 0, errors.New("connection reset"))

		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.Error(t, err)
		assert.NotContains(t, logs.String(), "leave request approved")
	})

	t.Run("failed rejection commit is not logged", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		logs := captureLogs(t)
		f.store.FailOn("tx.Commit", 0, errors.New("connection reset"))

		_, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "x"})
		require.Error(t, err)
		assert.NotContains(t, logs.String(), "leave request rejected")
		f.store.ClearFaults()

		got, err := f.svc.GetLeaveRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, got.Status)
	})
}

func TestApproveLeaveRequest_Concurrent(t *testing.T) {
	f := newFixture(t)
	req := f.apply(t, "2025-03-10", "2025-03-11")

	const approvers = 2
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < approvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ApproveLeaveRequest(context.Background(), f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, leave.ErrInvalidStateTransition):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.store.Approvals(), 1)
	assert.Len(t, f.store.AuditEntries(), 1)
	assert.Len(t, f.store.OutboxEvents(), 1)
	assert.Equal(t, 2, f.store.AttendanceCount())
}

func TestRejectLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects with audit and event", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-12")

		resp, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "  quarter close  "})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Equal(t, 0, f.store.AttendanceCount())
		assert.Empty(t, f.store.Approvals())

		entries := f.store.AuditEntries()
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionReject, entries[0].Action)
		require.NotNil(t, entries[0].Reason)
		assert.Equal(t, "quarter close", *entries[0].Reason)

		events := f.store.OutboxEvents()
		require.Len(t, events, 1)
		assert.Equal(t, outbox.EventLeaveRejected, events[0].EventType)
	})

	t.Run("reason is required", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		_, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "   "})
		require.Error(t, err)
		assert.NotErrorIs(t, err, leave.ErrInvalidStateTransition)
	})

	t.Run("already approved", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: req.ID})
		require.NoError(t, err)

		_, err = f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "changed mind"})
		var transition *leave.StatusTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, leave.StatusApproved, transition.Current)

		rec, err := f.store.Attendance().GetByEmployeeAndDate(ctx, f.employeeID, day("2025-03-10"))
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLeave, rec.Status)
	})

	t.Run("audit failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2025-03-10", "2025-03-10")
		f.store.FailOn("audit.Append", 0, errors.New("boom"))

		_, err := f.svc.RejectLeaveRequest(ctx, f.adminUserID, leave.RejectLeaveRequest{ID: req.ID, Reason: "x"})
		require.Error(t, err)
		f.store.ClearFaults()

		got, err := f.svc.GetLeaveRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Empty(t, f.store.OutboxEvents())
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.apply(t, "2025-03-10", "2025-03-10")
	second := f.apply(t, "2025-04-01", "2025-04-02")
	_, err := f.svc.ApproveLeaveRequest(ctx, f.adminUserID, leave.ApproveLeaveRequest{ID: first.ID, Comment: ptr("ok")})
	require.NoError(t, err)

	mine, err := f.svc.ListMyLeaveRequests(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Empty(t, mine[0].Approvals)
	require.Len(t, mine[1].Approvals, 1)
	assert.Equal(t, "ok", *mine[1].Approvals[0].Comments)

	pending, err := f.svc.ListPendingLeaveRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	require.NotNil(t, pending[0].EmployeeName)
	assert.Equal(t, "Sam Staff", *pending[0].EmployeeName)
	assert.Equal(t, "Engineering", *pending[0].EmployeeDepartment)

	_, err = f.svc.ListMyLeaveRequests(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.GetLeaveRequest(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
