package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

const defaultBatchSize = 100

// Relay moves pending outbox rows to the broker. Each pass claims its rows
// inside one transaction.
type Relay struct {
	tx        database.Transactor
	repo      outbox.OutboxRepository
	publisher outbox.Publisher
	batchSize int
}

func NewRelay(tx database.Transactor, repo outbox.OutboxRepository, publisher outbox.Publisher, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Relay{
		tx:        tx,
		repo:      repo,
		publisher: publisher,
		batchSize: batchSize,
	}
}

// RegisterJobs schedules the relay every interval.
func (r *Relay) RegisterJobs(scheduler *cron.Scheduler, interval time.Duration) {
	scheduler.AddJob("relay_outbox", interval, func(ctx context.Context) error {
		_, err := r.RelayPending(ctx)
		return err
	})
}

// RelayPending publishes one batch and reports how many events were sent.
// A failed publish is recorded on its row and does not stop the batch.
func (r *Relay) RelayPending(ctx context.Context) (int, error) {
	sent := 0
	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		events, err := r.repo.ListPending(txCtx, r.batchSize)
		if err != nil {
			return fmt.Errorf("failed to list pending outbox events: %w", err)
		}

		for _, event := range events {
			if err := r.publisher.Publish(txCtx, event); err != nil {
				slog.ErrorContext(ctx, "publish outbox event failed",
					"outbox_id", event.ID,
					"event_type", event.EventType,
					"retry_count", event.RetryCount,
					"error", err,
				)
				if err := r.repo.MarkFailed(txCtx, event.ID, err.Error()); err != nil {
					return fmt.Errorf("failed to mark outbox event %s failed: %w", event.ID, err)
				}
				continue
			}

			if err := r.repo.MarkSent(txCtx, event.ID); err != nil {
				return fmt.Errorf("failed to mark outbox event %s sent: %w", event.ID, err)
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if sent > 0 {
		slog.InfoContext(ctx, "outbox events relayed", "count", sent)
	}
	return sent, nil
}
