package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []outbox.Event
	failFor   map[string]error
}

func (f *fakePublisher) Publish(_ context.Context, event outbox.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[event.AggregateID]; ok {
		return err
	}
	f.published = append(f.published, event)
	return nil
}

func enqueue(t *testing.T, store *memory.Store, aggregateID string) outbox.Event {
	t.Helper()
	event, err := outbox.NewEvent(outbox.AggregateLeave, aggregateID, outbox.EventLeaveApproved, outbox.TopicLeaveDecisions, map[string]string{"leave_id": aggregateID})
	require.NoError(t, err)
	require.NoError(t, store.Outbox().Create(context.Background(), event))
	return event
}

func statusOf(store *memory.Store, id string) outbox.Event {
	for _, e := range store.OutboxEvents() {
		if e.ID == id {
			return e
		}
	}
	return outbox.Event{}
}

func TestRelayPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		store := memory.NewStore()
		pub := &fakePublisher{}
		relay := NewRelay(store, store.Outbox(), pub, 10)

		a := enqueue(t, store, "leave-a")
		b := enqueue(t, store, "leave-b")

		sent, err := relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, pub.published, 2)
		assert.Equal(t, a.ID, pub.published[0].ID, "oldest first")
		assert.Equal(t, outbox.StatusSent, statusOf(store, a.ID).Status)
		assert.Equal(t, outbox.StatusSent, statusOf(store, b.ID).Status)

		sent, err = relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent, "sent events are not relayed again")
	})

	t.Run("failed publish is retried later", func(t *testing.T) {
		store := memory.NewStore()
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		store.SetClock(func() time.Time { return now })

		pub := &fakePublisher{failFor: map[string]error{"leave-bad": errors.New("broker down")}}
		relay := NewRelay(store, store.Outbox(), pub, 10)

		bad := enqueue(t, store, "leave-bad")
		good := enqueue(t, store, "leave-good")

		sent, err := relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)

		failed := statusOf(store, bad.ID)
		assert.Equal(t, outbox.StatusFailed, failed.Status)
		assert.Equal(t, 1, failed.RetryCount)
		require.NotNil(t, failed.LastError)
		assert.Contains(t, *failed.LastError, "broker down")
		require.NotNil(t, failed.NextRetryAt)
		assert.Equal(t, now.Add(15*time.Second), *failed.NextRetryAt)
		assert.Equal(t, outbox.StatusSent, statusOf(store, good.ID).Status)

		// Not yet due.
		sent, err = relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)

		delete(pub.failFor, "leave-bad")
		now = now.Add(16 * time.Second)
		sent, err = relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, outbox.StatusSent, statusOf(store, bad.ID).Status)
	})

	t.Run("batch size bounds a pass", func(t *testing.T) {
		store := memory.NewStore()
		pub := &fakePublisher{}
		relay := NewRelay(store, store.Outbox(), pub, 2)
		for _, id := range []string{"a", "b", "c"} {
			enqueue(t, store, id)
		}

		sent, err := relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)

		sent, err = relay.RelayPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("listing error", func(t *testing.T) {
		store := memory.NewStore()
		store.FailOn("outbox.ListPending", 0, errors.New("db down"))
		relay := NewRelay(store, store.Outbox(), &fakePublisher{}, 0)

		_, err := relay.RelayPending(ctx)
		assert.Error(t, err)
	})
}
