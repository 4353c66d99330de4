package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-shop/internal/events"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/brands"
	"github.com/odyssey-erp/odyssey-shop/internal/observability"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table/tabletest"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/customers"
	"github.com/odyssey-erp/odyssey-shop/internal/sales/orders"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	router http.Handler
	brands *tabletest.Memory[brands.Brand]
	mr     *miniredis.Miniredis
}

func newTestEnv(t *testing.T, cfg *Config, db Pinger) testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg == nil {
		cfg = &Config{AppRequestTimeout: time.Second}
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	brandRepo := tabletest.NewMemory(brands.Mapping.Key)
	customerRepo := tabletest.NewMemory(customers.Mapping.Key)
	orderRepo := tabletest.NewMemory(orders.Mapping.Key)

	router := NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          observability.NewMetrics(),
		Idempotency:      shared.NewIdempotencyStore(client, time.Hour),
		DB:               db,
		BrandsHandler:    brands.NewHandler(logger, brands.NewService(brandRepo)),
		CustomersHandler: customers.NewHandler(logger, customers.NewService(customerRepo)),
		OrdersHandler:    orders.NewHandler(logger, orders.NewService(orderRepo, events.NopPublisher{}, logger)),
	})
	return testEnv{router: router, brands: brandRepo, mr: mr}
}

func send(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func failureOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil, pingFunc(func(context.Context) error { return nil }))
	rr := send(t, env.router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	down := newTestEnv(t, nil, pingFunc(func(context.Context) error { return errors.New("down") }))
	rr = send(t, down.router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rr := send(t, env.router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, map[string]any{"success": false, "error": float64(404), "message": "Resource not found"}, failureOf(t, rr))
}

func TestUnsupportedVerbUsesEnvelope(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	for _, target := range []string{"/brands", "/brands/1"} {
		rr := send(t, env.router, http.MethodPut, target, `{}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, target)
		assert.Equal(t, "Method not allowed", failureOf(t, rr)["message"])
	}
}

func TestTrailingSlashIsAccepted(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rr := send(t, env.router, http.MethodPost, "/orders/", `{"customer_id":1,"items":"x","cost":3}`)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = send(t, env.router, http.MethodGet, "/brands/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	rr := send(t, env.router, http.MethodGet, "/brands", "")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestIdempotencyKeyRejectsReplay(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rr := send(t, env.router, http.MethodPost, "/brands", `{"name":"Acme"}`, IdempotencyHeader, "k-1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.mr.Exists("idempotency:POST:/brands:k-1"))

	rr = send(t, env.router, http.MethodPost, "/brands", `{"name":"Acme"}`, IdempotencyHeader, "k-1")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 1, env.brands.Len())

	rr = send(t, env.router, http.MethodPost, "/brands", `{"name":"Acme"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, env.brands.Len())
}

func TestIdempotencyKeyReleasedOnFailure(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rr := send(t, env.router, http.MethodPost, "/brands", `{}`, IdempotencyHeader, "k-2")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, env.mr.Exists("idempotency:POST:/brands:k-2"))

	rr = send(t, env.router, http.MethodPost, "/brands", `{"name":"Acme"}`, IdempotencyHeader, "k-2")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitUsesEnvelope(t *testing.T) {
	env := newTestEnv(t, &Config{AppRequestTimeout: time.Second, RateLimitPerMinute: 2}, nil)

	for i := 0; i < 2; i++ {
		rr := send(t, env.router, http.MethodGet, "/brands", "")
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := send(t, env.router, http.MethodGet, "/brands", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, float64(429), failureOf(t, rr)["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	send(t, env.router, http.MethodGet, "/brands", "")

	rr := send(t, env.router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `shop_http_requests_total{code="200",method="GET",route="/brands`)
}

func TestRecovererWritesEnvelope(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", failureOf(t, rr)["message"])
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestIdempotencyKeyReleasedOnPanic(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := shared.NewIdempotencyStore(client, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	calls := 0
	h := recoverer(logger)(idempotency(store, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		w.WriteHeader(http.StatusOK)
	})))

	rr := send(t, h, http.MethodPost, "/orders", `{}`, IdempotencyHeader, "k-3")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, mr.Exists(shared.IdempotencyKey("POST:/orders", "k-3")))

	rr = send(t, h, http.MethodPost, "/orders", `{}`, IdempotencyHeader, "k-3")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, calls)
}
