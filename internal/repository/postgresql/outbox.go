package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type outboxRepositoryImpl struct {
	db *database.DB
}

func NewOutboxRepository(db *database.DB) outbox.OutboxRepository {
	return &outboxRepositoryImpl{db: db}
}

// Create implements outbox.OutboxRepository.
func (r *outboxRepositoryImpl) Create(ctx context.Context, event outbox.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, topic, payload, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		event.ID,
		event.AggregateType,
		event.AggregateID,
		event.EventType,
		event.Topic,
		event.Payload,
		outbox.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// ListPending implements outbox.OutboxRepository.
// Rows claimed by another relay are skipped rather than waited on.
func (r *outboxRepositoryImpl) ListPending(ctx context.Context, limit int) ([]outbox.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, topic, payload, status,
			   retry_count, next_retry_at, last_error, created_at, updated_at
		FROM outbox_events
		WHERE status IN ('pending', 'failed')
		  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox events: %w", err)
	}
	defer rows.Close()

	events := make([]outbox.Event, 0)
	for rows.Next() {
		var e outbox.Event
		if err := rows.Scan(
			&e.ID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.RetryCount,
			&e.NextRetryAt,
			&e.LastError,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// MarkSent implements outbox.OutboxRepository.
func (r *outboxRepositoryImpl) MarkSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE outbox_events
		SET status = 'sent', last_error = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}

// MarkFailed implements outbox.OutboxRepository.
func (r *outboxRepositoryImpl) MarkFailed(ctx context.Context, id string, cause string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE outbox_events
		SET status = 'failed',
			retry_count = retry_count + 1,
			last_error = $2,
			next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
			updated_at = NOW()
		WHERE id = $1
	`, id, cause)
	if err != nil {
		return fmt.Errorf("mark outbox event failed: %w", err)
	}
	return nil
}
