// Package memory is an in-process implementation of the repository and
// unit-of-work interfaces. Transactions are serialized and roll back by
// restoring a snapshot, which makes it suitable for service tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type txKey struct{}

type fault struct {
	err   error
	nth   int // 0 fails every call
	calls int
}

type state struct {
	users      map[string]user.User
	employees  map[string]employee.Employee
	attendance map[string]attendance.Attendance
	leaves     map[string]leave.LeaveRequest
	approvals  []leave.Approval
	audits     []audit.Entry
	outbox     []outbox.Event
}

func newState() state {
	return state{
		users:      make(map[string]user.User),
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Attendance),
		leaves:     make(map[string]leave.LeaveRequest),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.attendance {
		c.attendance[k] = v
	}
	for k, v := range s.leaves {
		c.leaves[k] = v
	}
	c.approvals = append([]leave.Approval(nil), s.approvals...)
	c.audits = append([]audit.Entry(nil), s.audits...)
	c.outbox = append([]outbox.Event(nil), s.outbox...)
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	data   state
	seq    int64
	now    func() time.Time
	faults map[string]*fault
}

func NewStore() *Store {
	return &Store{
		data:   newState(),
		now:    time.Now,
		faults: make(map[string]*fault),
	}
}

// SetClock replaces the source of created_at/updated_at timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes the named operation (for example "audit.Append") return err.
// "tx.Commit" fails the commit of an outermost transaction after fn succeeded.
// With nth > 0 only the nth call fails; with nth == 0 every call does.
func (s *Store) FailOn(op string, nth int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = &fault{err: err, nth: nth}
}

func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]*fault)
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		return err
	}

	s.mu.Lock()
	err = s.fault("tx.Commit")
	s.mu.Unlock()
	return err
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
}

// fault evaluates any failure registered for op. The caller holds s.mu.
func (s *Store) fault(op string) error {
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	f.calls++
	if f.nth == 0 || f.calls == f.nth {
		return fmt.Errorf("%s: %w", op, f.err)
	}
	return nil
}

func (s *Store) stamp() time.Time {
	s.seq++
	return s.now().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

// Users returns the user repository view of the store.
func (s *Store) Users() user.UserRepository { return userRepo{s} }

func (s *Store) Employees() employee.EmployeeRepository { return employeeRepo{s} }

func (s *Store) Attendance() attendance.AttendanceRepository { return attendanceRepo{s} }

func (s *Store) LeaveRequests() leave.LeaveRequestRepository { return leaveRequestRepo{s} }

func (s *Store) LeaveApprovals() leave.LeaveApprovalRepository { return leaveApprovalRepo{s} }

func (s *Store) Audit() audit.AuditRepository { return auditRepo{s} }

func (s *Store) Outbox() outbox.OutboxRepository { return outboxRepo{s} }

// Approvals returns a copy of every stored approval.
func (s *Store) Approvals() []leave.Approval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]leave.Approval(nil), s.data.approvals...)
}

// AuditEntries returns a copy of the audit trail in append order.
func (s *Store) AuditEntries() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Entry(nil), s.data.audits...)
}

// OutboxEvents returns a copy of every stored event.
func (s *Store) OutboxEvents() []outbox.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outbox.Event(nil), s.data.outbox...)
}

// AttendanceCount returns the number of attendance rows across all employees.
func (s *Store) AttendanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.attendance)
}
