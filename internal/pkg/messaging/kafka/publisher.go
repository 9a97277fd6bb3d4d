// Package kafka delivers outbox events to Kafka topics.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/outbox"
	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Publisher struct {
	writer      MessageWriter
	topicPrefix string
}

// NewWriter returns a writer that routes each message by its own Topic and
// keys partitions by aggregate id.
func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewPublisher(writer MessageWriter, topicPrefix string) *Publisher {
	return &Publisher{writer: writer, topicPrefix: topicPrefix}
}

// Message maps an outbox event to a Kafka message.
func (p *Publisher) Message(event outbox.Event) kafkago.Message {
	return kafkago.Message{
		Topic: p.topicPrefix + event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}
}

// Publish implements outbox.Publisher.
func (p *Publisher) Publish(ctx context.Context, event outbox.Event) error {
	if err := p.writer.WriteMessages(ctx, p.Message(event)); err != nil {
		return fmt.Errorf("write %s to %s: %w", event.EventType, p.topicPrefix+event.Topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
