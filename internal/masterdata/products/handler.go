package products

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

// MountRoutes registers product routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, total, err := h.service.List(r.Context(), shared.PageFromRequest(r))
	if err != nil {
		httpx.RespondLogged(w, h.logger, "list products failed", err)
		return
	}
	httpx.OK(w, httpx.Envelope{"products": products, "total_products": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get product failed", err)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get product failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"product": product})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "create product failed", err)
		return
	}
	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "create product failed", err, "brand", req.Brand)
		return
	}
	httpx.OK(w, httpx.Envelope{"product": product})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update product failed", err)
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "update product failed", err, "id", id)
		return
	}
	product, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update product failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"product": product})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "delete product failed", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondLogged(w, h.logger, "delete product failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"product_id": id})
}
