package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type leaveApprovalRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApprovalRepository(db *database.DB) leave.LeaveApprovalRepository {
	return &leaveApprovalRepositoryImpl{db: db}
}

// Create implements leave.LeaveApprovalRepository.
func (r *leaveApprovalRepositoryImpl) Create(ctx context.Context, approval leave.Approval) (leave.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_approvals (leave_id, approved_by, comments)
		VALUES ($1, $2, $3)
		RETURNING id, leave_id, approved_by, comments, created_at
	`

	var created leave.Approval
	err := q.QueryRow(ctx, query, approval.LeaveID, approval.ApprovedBy, approval.Comments).Scan(
		&created.ID,
		&created.LeaveID,
		&created.ApprovedBy,
		&created.Comments,
		&created.CreatedAt,
	)
	if err != nil {
		return leave.Approval{}, fmt.Errorf("insert leave approval: %w", err)
	}

	return created, nil
}

// ListByLeaveIDs implements leave.LeaveApprovalRepository.
func (r *leaveApprovalRepositoryImpl) ListByLeaveIDs(ctx context.Context, leaveIDs []string) (map[string][]leave.Approval, error) {
	result := make(map[string][]leave.Approval, len(leaveIDs))
	if len(leaveIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.leave_id, la.approved_by, la.comments, la.created_at, e.full_name
		FROM leave_approvals la
		LEFT JOIN employees e ON e.id = la.approved_by
		WHERE la.leave_id = ANY($1::uuid[])
		ORDER BY la.created_at ASC
	`

	rows, err := q.Query(ctx, query, leaveIDs)
	if err != nil {
		return nil, fmt.Errorf("list leave approvals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a leave.Approval
		if err := rows.Scan(&a.ID, &a.LeaveID, &a.ApprovedBy, &a.Comments, &a.CreatedAt, &a.ApproverName); err != nil {
			return nil, fmt.Errorf("scan leave approval: %w", err)
		}
		result[a.LeaveID] = append(result[a.LeaveID], a)
	}

	return result, rows.Err()
}
