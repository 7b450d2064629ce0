package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/wiky-avis/Yatube/internal/core/outbox"
)

// Publisher writes outbox events to a Kafka topic, keyed by aggregate id so
// events for one aggregate stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, e *outbox.Event) error {
	return p.writer.WriteMessages(ctx, toMessage(e))
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func toMessage(e *outbox.Event) kafka.Message {
	return kafka.Message{
		Key:   []byte(e.AggregateID.String()),
		Value: []byte(e.Payload),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.EventType)},
			{Key: "event_id", Value: []byte(e.ID.String())},
		},
		Time: e.CreatedAt,
	}
}
