package reviews

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

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

// MountRoutes registers the review routes on the products router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}/product-reviews", h.List)
	r.Post("/{id}/product-reviews", h.Create)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "list reviews failed", err)
		return
	}
	reviews, err := h.service.ListForProduct(r.Context(), productID)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "list reviews failed", err, "product_id", productID)
		return
	}
	httpx.OK(w, httpx.Envelope{"reviews": reviews})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondLogged(w, h.logger, "create review failed", err)
		return
	}
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondLogged(w, h.logger, "create review failed", err, "product_id", productID)
		return
	}
	if req.CustomerID == nil {
		id, err := customerFromQuery(r)
		if err != nil {
			httpx.RespondLogged(w, h.logger, "create review failed", err, "product_id", productID)
			return
		}
		req.CustomerID = id
	}
	review, err := h.service.Create(r.Context(), productID, req)
	if err != nil {
		httpx.RespondLogged(w, h.logger, "create review failed", err, "product_id", productID)
		return
	}
	httpx.OK(w, httpx.Envelope{"product_review": review})
}

func customerFromQuery(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("customer_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: customer_id %q", shared.ErrValidation, raw)
	}
	return &id, nil
}
