// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event is the envelope written to the topic. Payload is marshalled under
// the PayloadField name, e.g. "order".
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Key        string

	PayloadField string
	Payload      any
}

// New stamps an event with a fresh id and the current UTC time.
func New(eventType, key, payloadField string, payload any) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		OccurredAt:   time.Now().UTC(),
		Key:          key,
		PayloadField: payloadField,
		Payload:      payload,
	}
}

func (e Event) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"id":          e.ID,
		"type":        e.Type,
		"occurred_at": e.OccurredAt,
	}
	if e.PayloadField != "" {
		body[e.PayloadField] = e.Payload
	}
	return json.Marshal(body)
}

// Publisher delivers events. Publish blocks until the broker acknowledges.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events synchronously to a single topic.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// WriterConfig tunes the underlying kafka.Writer.
type WriterConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

func NewKafkaPublisher(cfg WriterConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("events: at least one kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("events: kafka topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(writer, cfg.Topic), nil
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", evt.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.Key),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
			{Key: "event-id", Value: []byte(evt.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: write %s to %s: %w", evt.Type, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NopPublisher{}
)
