// Package notify publishes processed-activity events to Kafka.
package notify

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"example.com/ingest/internal/domain"
)

// Publisher writes activity_processed events to a single topic. Delivery is
// fire-once: a failed publish surfaces to the caller and is never reissued.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// Publish delivers one event, keyed by user id so a user's sessions stay on
// one partition.
func (p *Publisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Detail.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "source", Value: []byte(event.Source)},
		},
	})
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
