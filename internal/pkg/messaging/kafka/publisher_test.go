package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	event, err := outbox.NewEvent(outbox.AggregateLeave, "leave-1", outbox.EventLeaveApproved, outbox.TopicLeaveDecisions, map[string]string{"status": "APPROVED"})
	require.NoError(t, err)

	t.Run("keys by aggregate and tags headers", func(t *testing.T) {
		w := &recordingWriter{}
		p := NewPublisher(w, "staging.")

		require.NoError(t, p.Publish(context.Background(), event))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, "staging.hrms.leave.decisions", msg.Topic)
		assert.Equal(t, []byte("leave-1"), msg.Key)
		assert.JSONEq(t, `{"status":"APPROVED"}`, string(msg.Value))

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, outbox.EventLeaveApproved, headers["event_type"])
		assert.Equal(t, outbox.AggregateLeave, headers["aggregate_type"])
		assert.Equal(t, event.ID, headers["event_id"])
	})

	t.Run("wraps writer errors", func(t *testing.T) {
		cause := errors.New("broker unavailable")
		p := NewPublisher(&recordingWriter{err: cause}, "")

		err := p.Publish(context.Background(), event)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("close", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, NewPublisher(w, "").Close())
		assert.True(t, w.closed)
	})
}
