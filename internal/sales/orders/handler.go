package orders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, total, err := h.service.List(r.Context(), shared.PageFromRequest(r))
	if err != nil {
		httpx.RespondLogged(w, h.logger, "list orders failed", err)
		return
	}
	httpx.OK(w, httpx.Envelope{"orders": orders, "total_orders": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get order failed", err)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get order failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"order": order})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "create order failed", err)
		return
	}
	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "create order failed", err, "customer_id", req.CustomerID)
		return
	}
	h.logger.Info("order created", slog.Int64("id", order.ID), slog.Int64("customer_id", order.Customer))
	httpx.OK(w, httpx.Envelope{"order": order})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update order failed", err)
		return
	}
	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "update order failed", err, "id", id)
		return
	}
	order, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update order failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"order": order})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "delete order failed", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondLogged(w, h.logger, "delete order failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"order_id": id})
}
