package customers

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
	customers, total, err := h.service.List(r.Context(), shared.PageFromRequest(r))
	if err != nil {
		httpx.RespondLogged(w, h.logger, "list customers failed", err)
		return
	}
	httpx.OK(w, httpx.Envelope{"customers": customers, "total_customers": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get customer failed", err)
		return
	}
	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "get customer failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"customer": customer})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "create customer failed", err)
		return
	}
	customer, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "create customer failed", err)
		return
	}
	h.logger.Info("customer created", "id", customer.ID)
	httpx.OK(w, httpx.Envelope{"customer": customer})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update customer failed", err)
		return
	}
	var req UpdateCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "update customer failed", err, "id", id)
		return
	}
	customer, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "update customer failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"customer": customer})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "delete customer failed", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondLogged(w, h.logger, "delete customer failed", err, "id", id)
		return
	}
	httpx.OK(w, httpx.Envelope{"customer_id": id})
}
