package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/odyssey-shop/internal/events"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, page shared.Pagination) ([]View, int, error) {
	rows, err := s.repo.GetAll(ctx, page.Page, page.PerPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(rows))
	for _, o := range rows {
		views = append(views, o.Format())
	}
	return views, total, nil
}

func (s *Service) find(ctx context.Context, id int64) (*Order, error) {
	order, err := s.repo.GetOneOrNone(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, shared.ErrNotFound)
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := order.Format()
	return &view, nil
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*View, error) {
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	items, err := normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}
	order := &Order{
		CustomerID: req.CustomerID,
		ItemsJSON:  items,
		Cost:       req.Cost,
		OrderedAt:  storedTime(s.now()),
		Status:     StatusPending,
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	view := order.Format()
	s.publish(ctx, EventOrderCreated, view)
	return &view, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*View, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	if req.Items != nil {
		items, err := normalizeItems(req.Items)
		if err != nil {
			return nil, err
		}
		order.ItemsJSON = items
	}
	if req.CustomerID != nil {
		order.CustomerID = *req.CustomerID
	}
	if req.Cost != nil {
		order.Cost = *req.Cost
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	view := order.Format()
	s.publish(ctx, EventOrderUpdated, view)
	return &view, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	order, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, order); err != nil {
		return err
	}
	s.publish(ctx, EventOrderDeleted, order.Format())
	return nil
}

// storedTime matches what a TIMESTAMPTZ column hands back: UTC, microseconds.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// publish runs after the write has committed; a broker failure is logged only.
func (s *Service) publish(ctx context.Context, eventType string, view View) {
	evt := events.New(eventType, fmt.Sprintf("order-%d", view.ID), "order", view)
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("order event not published",
			slog.String("type", eventType),
			slog.Int64("order_id", view.ID),
			slog.Any("error", err))
	}
}
