package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-shop/internal/events"
	jobmetrics "github.com/odyssey-erp/odyssey-shop/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskEventRedeliver retries an event the broker did not accept.
	TaskEventRedeliver = "events:redeliver"
)

// RedeliverPayload is the queued form of an events.Event.
type RedeliverPayload struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Key          string          `json:"key"`
	OccurredAt   time.Time       `json:"occurred_at"`
	PayloadField string          `json:"payload_field"`
	Payload      json.RawMessage `json:"payload"`
}

// Event rebuilds the event; the payload stays raw JSON.
func (p RedeliverPayload) Event() events.Event {
	return events.Event{
		ID:           p.ID,
		Type:         p.Type,
		OccurredAt:   p.OccurredAt,
		Key:          p.Key,
		PayloadField: p.PayloadField,
		Payload:      p.Payload,
	}
}

// NewRedeliverTask constructs an Asynq task. The event id doubles as task id
// so an event is queued at most once.
func NewRedeliverTask(evt events.Event) (*asynq.Task, error) {
	body, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal event payload: %w", err)
	}
	data, err := json.Marshal(RedeliverPayload{
		ID:           evt.ID,
		Type:         evt.Type,
		Key:          evt.Key,
		OccurredAt:   evt.OccurredAt,
		PayloadField: evt.PayloadField,
		Payload:      body,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEventRedeliver, data, asynq.TaskID(evt.ID)), nil
}

// RedeliverJob publishes queued events. A failed publish is returned so
// Asynq schedules another attempt.
type RedeliverJob struct {
	publisher events.Publisher
	logger    *slog.Logger
	metrics   *jobmetrics.Metrics
}

func NewRedeliverJob(publisher events.Publisher, logger *slog.Logger, metrics *jobmetrics.Metrics) *RedeliverJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedeliverJob{publisher: publisher, logger: logger, metrics: metrics}
}

// Handle processes TaskEventRedeliver tasks.
func (j *RedeliverJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track(TaskEventRedeliver)
	var payload RedeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		j.logger.Error("drop malformed redeliver task", slog.Any("error", err))
		return tracker.End(asynq.SkipRetry)
	}
	if err := j.publisher.Publish(ctx, payload.Event()); err != nil {
		j.logger.Warn("event redelivery failed",
			slog.String("event_id", payload.ID),
			slog.String("type", payload.Type),
			slog.Any("error", err))
		return tracker.End(err)
	}
	j.logger.Info("event redelivered", slog.String("event_id", payload.ID), slog.String("type", payload.Type))
	return tracker.End(nil)
}
