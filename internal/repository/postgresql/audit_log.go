package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.AuditRepository.
func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	var changes []byte
	if entry.Changes != nil {
		var err error
		changes, err = json.Marshal(entry.Changes)
		if err != nil {
			return audit.Entry{}, fmt.Errorf("marshal audit changes: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (action, actor_user_id, entity_type, entity_id, reason, changes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.Action,
		entry.ActorUserID,
		entry.EntityType,
		entry.EntityID,
		entry.Reason,
		changes,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("insert audit log: %w", err)
	}

	return entry, nil
}

// ListByEntity implements audit.AuditRepository.
func (r *auditRepositoryImpl) ListByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, action, actor_user_id, entity_type, entity_id, reason, changes, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e       audit.Entry
			changes []byte
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.ActorUserID, &e.EntityType, &e.EntityID, &e.Reason, &changes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal audit changes: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
