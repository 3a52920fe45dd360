package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeSyncCompleted = "catalog.sync.completed"
	TypeSyncFailed    = "catalog.sync.failed"
)

// SyncEvent describes the outcome of one provider sync run.
type SyncEvent struct {
	Type         string    `json:"type"`
	ProviderID   string    `json:"provider_id"`
	RunID        string    `json:"run_id"`
	ProductCount int       `json:"product_count"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher emits sync events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event SyncEvent) error
	Close() error
}

// Kafka publishes sync events to a Kafka topic.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, event SyncEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProviderID),
		Value: value,
	})
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Noop discards events; used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, SyncEvent) error { return nil }
func (Noop) Close() error                             { return nil }
