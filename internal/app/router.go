package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/brands"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/reviews"
	"github.com/odyssey-erp/odyssey-shop/internal/observability"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/customers"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/orders"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
	"github.com/odyssey-erp/odyssey-shop/jobs"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	Metrics     *observability.Metrics
	Idempotency *shared.IdempotencyStore
	DB          Pinger

	BrandsHandler     *brands.Handler
	CategoriesHandler *categories.Handler
	ProductsHandler   *products.Handler
	ReviewsHandler    *reviews.Handler
	CustomersHandler  *customers.Handler
	OrdersHandler     *orders.Handler
	JobsHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with shop defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:      params.Logger,
		Config:      params.Config,
		Metrics:     params.Metrics,
		Idempotency: params.Idempotency,
	}) {
		r.Use(mw)
	}
	r.NotFound(httpx.NotFoundHandler())
	r.MethodNotAllowed(httpx.MethodNotAllowedHandler())

	r.Get("/healthz", healthz(params.DB))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.BrandsHandler != nil {
		r.Route("/brands", params.BrandsHandler.MountRoutes)
	}
	if params.CategoriesHandler != nil {
		r.Route("/product-categories", params.CategoriesHandler.MountRoutes)
	}
	if params.ProductsHandler != nil {
		r.Route("/products", func(r chi.Router) {
			params.ProductsHandler.MountRoutes(r)
			if params.ReviewsHandler != nil {
				params.ReviewsHandler.MountRoutes(r)
			}
		})
	}
	if params.CustomersHandler != nil {
		r.Route("/customers", params.CustomersHandler.MountRoutes)
	}
	if params.OrdersHandler != nil {
		r.Route("/orders", params.OrdersHandler.MountRoutes)
	}
	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
