package jobs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-shop/internal/events"
	jobmetrics "github.com/odyssey-erp/odyssey-shop/internal/jobs"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/httpx"
)

// Worker runs the Asynq server for the shop queues.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// TaskHandler binds a task type to its handler.
type TaskHandler struct {
	Type    string
	Handler asynq.HandlerFunc
}

// WorkerConfig configures NewWorker. Concurrency defaults to 5.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Logger      *slog.Logger
	Concurrency int
	Handlers    []TaskHandler
}

// NewWorker builds the server and registers every handler with a type.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if len(cfg.Handlers) == 0 {
		return nil, errors.New("worker: no task handlers")
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		mux.HandleFunc(h.Type, h.Handler)
	}
	return &Worker{server: srv, mux: mux, logger: cfg.Logger}, nil
}

// Run processes tasks until ctx is cancelled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// RedeliveryQueue accepts events for a later publish attempt.
type RedeliveryQueue interface {
	EnqueueRedeliver(ctx context.Context, evt events.Event) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client enqueues redelivery tasks.
type Client struct {
	client   enqueuer
	maxRetry int
}

// NewClient connects to Redis; every task gets maxRetry attempts.
func NewClient(redisOpts asynq.RedisClientOpt, maxRetry int) *Client {
	return &Client{client: asynq.NewClient(redisOpts), maxRetry: maxRetry}
}

// EnqueueRedeliver queues evt. Queuing the same event twice is not an error.
func (c *Client) EnqueueRedeliver(ctx context.Context, evt events.Event) error {
	task, err := NewRedeliverTask(evt)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(c.maxRetry))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// FallbackPublisher queues events the primary publisher could not deliver.
type FallbackPublisher struct {
	primary events.Publisher
	queue   RedeliveryQueue
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

func NewFallbackPublisher(primary events.Publisher, queue RedeliveryQueue, logger *slog.Logger, metrics *jobmetrics.Metrics) *FallbackPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackPublisher{primary: primary, queue: queue, logger: logger, metrics: metrics}
}

func (p *FallbackPublisher) Publish(ctx context.Context, evt events.Event) error {
	err := p.primary.Publish(ctx, evt)
	if err == nil {
		return nil
	}
	if qerr := p.queue.EnqueueRedeliver(context.WithoutCancel(ctx), evt); qerr != nil {
		return errors.Join(err, qerr)
	}
	p.metrics.AddQueued(evt.Type)
	p.logger.Warn("event queued for redelivery",
		slog.String("event_id", evt.ID),
		slog.String("type", evt.Type),
		slog.Any("error", err))
	return nil
}

func (p *FallbackPublisher) Close() error {
	return p.primary.Close()
}

var _ events.Publisher = (*FallbackPublisher)(nil)

// queueInspector is the part of *asynq.Inspector the health endpoint reads.
type queueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
}

// Handler serves queue state under /jobs.
type Handler struct {
	inspector queueInspector
	logger    *slog.Logger
}

// NewHandler reads queue state through inspector, which may be nil.
func NewHandler(inspector *asynq.Inspector, logger *slog.Logger) *Handler {
	h := &Handler{logger: logger}
	if inspector != nil {
		h.inspector = inspector
	}
	return h
}

// MountRoutes registers GET /health.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/health", h.health)
}

type queueHealth struct {
	Queue     string `json:"queue"`
	Pending   int    `json:"pending"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Processed int    `json:"processed"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	out := queueHealth{Queue: QueueDefault}
	if h.inspector == nil {
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	// asynq registers a queue on first enqueue; until then it has no stats.
	queues, err := h.inspector.Queues()
	if err != nil {
		h.logger.Warn("jobs health", slog.Any("error", err))
		httpx.Fail(w, http.StatusServiceUnavailable)
		return
	}
	if !slices.Contains(queues, QueueDefault) {
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	info, err := h.inspector.GetQueueInfo(QueueDefault)
	if err != nil {
		h.logger.Warn("jobs health", slog.Any("error", err))
		httpx.Fail(w, http.StatusServiceUnavailable)
		return
	}
	if info != nil {
		out.Queue = info.Queue
		out.Pending = info.Pending
		out.Retry = info.Retry
		out.Archived = info.Archived
		out.Processed = info.Processed
	}
	httpx.JSON(w, http.StatusOK, out)
}
