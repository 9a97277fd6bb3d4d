package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("user.Create"); err != nil {
		return user.User{}, err
	}

	for _, u := range r.s.data.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	now := r.s.stamp()
	newUser.ID = uuid.NewString()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.s.data.users[newUser.ID] = newUser
	return newUser, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("user.GetByEmail"); err != nil {
		return user.User{}, err
	}

	for _, u := range r.s.data.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("user.GetByID"); err != nil {
		return user.User{}, err
	}

	u, ok := r.s.data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) withEmail(e employee.Employee) employee.Employee {
	if u, ok := r.s.data.users[e.UserID]; ok {
		e.Email = u.Email
	}
	return e
}

func (r employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("employee.GetByID"); err != nil {
		return employee.Employee{}, err
	}

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.withEmail(e), nil
}

// GetByIDForUpdate needs no row lock; transactions are already serialized.
func (r employeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r employeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("employee.GetByUserID"); err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.s.data.employees {
		if e.UserID == userID {
			return r.withEmail(e), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("employee.Create"); err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.s.data.employees {
		if e.UserID == newEmployee.UserID {
			return employee.Employee{}, employee.ErrUserAlreadyEmployee
		}
	}
	now := r.s.stamp()
	newEmployee.ID = uuid.NewString()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.s.data.employees[newEmployee.ID] = newEmployee
	return r.withEmail(newEmployee), nil
}

func (r employeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("employee.List"); err != nil {
		return nil, err
	}

	out := make([]employee.Employee, 0, len(r.s.data.employees))
	for _, e := range r.s.data.employees {
		out = append(out, r.withEmail(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type attendanceRepo struct{ s *Store }

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.GetByEmployeeAndDate"); err != nil {
		return attendance.Attendance{}, err
	}

	a, ok := r.s.data.attendance[attendanceKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

// upsert must be called with s.mu held.
func (r attendanceRepo) upsert(employeeID string, date time.Time, mutate func(*attendance.Attendance)) attendance.Attendance {
	key := attendanceKey(employeeID, date)
	now := r.s.stamp()
	a, ok := r.s.data.attendance[key]
	if !ok {
		a = attendance.Attendance{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       attendance.DateOf(date),
			CreatedAt:  now,
		}
	}
	mutate(&a)
	a.UpdatedAt = now
	r.s.data.attendance[key] = a
	return a
}

func (r attendanceRepo) UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.UpsertCheckIn"); err != nil {
		return attendance.Attendance{}, err
	}

	if a, ok := r.s.data.attendance[attendanceKey(employeeID, date)]; ok && a.CheckInTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	return r.upsert(employeeID, date, func(a *attendance.Attendance) {
		a.CheckInTime = &at
		if !a.IsOverridden() {
			a.Status = attendance.StatusPresent
		}
	}), nil
}

func (r attendanceRepo) UpdateCheckOut(ctx context.Context, id string, at time.Time, status attendance.Status) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.UpdateCheckOut"); err != nil {
		return attendance.Attendance{}, err
	}

	for key, a := range r.s.data.attendance {
		if a.ID != id {
			continue
		}
		if a.CheckOutTime != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		a.CheckOutTime = &at
		a.Status = status
		a.UpdatedAt = r.s.stamp()
		r.s.data.attendance[key] = a
		return a, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r attendanceRepo) UpsertOverride(ctx context.Context, employeeID string, date time.Time, status attendance.Status, overriddenBy string, reason string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.UpsertOverride"); err != nil {
		return attendance.Attendance{}, err
	}

	return r.upsert(employeeID, date, func(a *attendance.Attendance) {
		a.Status = status
		a.OverriddenBy = &overriddenBy
		a.OverrideReason = &reason
	}), nil
}

func (r attendanceRepo) MarkLeave(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.MarkLeave"); err != nil {
		return attendance.Attendance{}, err
	}

	return r.upsert(employeeID, date, func(a *attendance.Attendance) {
		a.Status = attendance.StatusLeave
	}), nil
}

func (r attendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("attendance.ListByEmployee"); err != nil {
		return nil, err
	}

	out := make([]attendance.Attendance, 0)
	for _, a := range r.s.data.attendance {
		if a.EmployeeID != employeeID {
			continue
		}
		if from != nil && a.Date.Before(*from) {
			continue
		}
		if to != nil && a.Date.After(*to) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type leaveRequestRepo struct{ s *Store }

func (r leaveRequestRepo) withEmployee(lr leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := r.s.data.employees[lr.EmployeeID]; ok {
		name := e.FullName
		lr.EmployeeName = &name
		lr.EmployeeDepartment = e.Department
	}
	return lr
}

func (r leaveRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.Create"); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, ok := r.s.data.employees[request.EmployeeID]; !ok {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
	}
	now := r.s.stamp()
	request.ID = uuid.NewString()
	request.Status = leave.StatusPending
	request.CreatedAt, request.UpdatedAt = now, now
	request.Approvals = nil
	r.s.data.leaves[request.ID] = request
	return r.withEmployee(request), nil
}

func (r leaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.GetByID"); err != nil {
		return leave.LeaveRequest{}, err
	}

	lr, ok := r.s.data.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withEmployee(lr), nil
}

func (r leaveRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r leaveRequestRepo) list(match func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	out := make([]leave.LeaveRequest, 0)
	for _, lr := range r.s.data.leaves {
		if match(lr) {
			out = append(out, r.withEmployee(lr))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r leaveRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.ListByEmployee"); err != nil {
		return nil, err
	}

	return r.list(func(lr leave.LeaveRequest) bool { return lr.EmployeeID == employeeID }), nil
}

func (r leaveRequestRepo) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.ListByStatus"); err != nil {
		return nil, err
	}

	return r.list(func(lr leave.LeaveRequest) bool { return lr.Status == status }), nil
}

func (r leaveRequestRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.HasOverlapping"); err != nil {
		return false, err
	}

	for _, lr := range r.s.data.leaves {
		if lr.EmployeeID == employeeID && lr.Status.BlocksOverlap() &&
			leave.Overlaps(lr.StartDate, lr.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r leaveRequestRepo) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leave.UpdateStatus"); err != nil {
		return leave.LeaveRequest{}, err
	}

	lr, ok := r.s.data.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	lr.Status = status
	lr.UpdatedAt = r.s.stamp()
	r.s.data.leaves[id] = lr
	return r.withEmployee(lr), nil
}

type leaveApprovalRepo struct{ s *Store }

func (r leaveApprovalRepo) Create(ctx context.Context, approval leave.Approval) (leave.Approval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leaveApproval.Create"); err != nil {
		return leave.Approval{}, err
	}

	approval.ID = uuid.NewString()
	approval.CreatedAt = r.s.stamp()
	r.s.data.approvals = append(r.s.data.approvals, approval)
	return approval, nil
}

func (r leaveApprovalRepo) ListByLeaveIDs(ctx context.Context, leaveIDs []string) (map[string][]leave.Approval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("leaveApproval.ListByLeaveIDs"); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(leaveIDs))
	for _, id := range leaveIDs {
		wanted[id] = true
	}
	out := make(map[string][]leave.Approval)
	for _, a := range r.s.data.approvals {
		if !wanted[a.LeaveID] {
			continue
		}
		if e, ok := r.s.data.employees[a.ApprovedBy]; ok {
			name := e.FullName
			a.ApproverName = &name
		}
		out[a.LeaveID] = append(out[a.LeaveID], a)
	}
	return out, nil
}

type auditRepo struct{ s *Store }

func (r auditRepo) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("audit.Append"); err != nil {
		return audit.Entry{}, err
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = r.s.stamp()
	r.s.data.audits = append(r.s.data.audits, entry)
	return entry, nil
}

func (r auditRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("audit.ListByEntity"); err != nil {
		return nil, err
	}

	out := make([]audit.Entry, 0)
	for _, e := range r.s.data.audits {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type outboxRepo struct{ s *Store }

func (r outboxRepo) Create(ctx context.Context, event outbox.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("outbox.Create"); err != nil {
		return err
	}

	now := r.s.stamp()
	event.Status = outbox.StatusPending
	event.CreatedAt, event.UpdatedAt = now, now
	r.s.data.outbox = append(r.s.data.outbox, event)
	return nil
}

func (r outboxRepo) ListPending(ctx context.Context, limit int) ([]outbox.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("outbox.ListPending"); err != nil {
		return nil, err
	}

	now := r.s.now().UTC()
	out := make([]outbox.Event, 0)
	for _, e := range r.s.data.outbox {
		if len(out) == limit {
			break
		}
		if e.Status == outbox.StatusSent {
			continue
		}
		if e.NextRetryAt != nil && e.NextRetryAt.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r outboxRepo) update(id string, mutate func(*outbox.Event)) error {
	for i := range r.s.data.outbox {
		if r.s.data.outbox[i].ID == id {
			mutate(&r.s.data.outbox[i])
			r.s.data.outbox[i].UpdatedAt = r.s.stamp()
			return nil
		}
	}
	return nil
}

func (r outboxRepo) MarkSent(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("outbox.MarkSent"); err != nil {
		return err
	}

	return r.update(id, func(e *outbox.Event) {
		e.Status = outbox.StatusSent
		e.LastError = nil
	})
}

func (r outboxRepo) MarkFailed(ctx context.Context, id string, cause string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("outbox.MarkFailed"); err != nil {
		return err
	}

	now := r.s.now().UTC()
	return r.update(id, func(e *outbox.Event) {
		e.RetryCount++
		e.Status = outbox.StatusFailed
		e.LastError = &cause
		delay := time.Duration(min(e.RetryCount, 10)) * 15 * time.Second
		next := now.Add(delay)
		e.NextRetryAt = &next
	})
}
