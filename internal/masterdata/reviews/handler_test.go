package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table/tabletest"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

type memoryRepository struct {
	*tabletest.Memory[ProductReview]
}

func (m memoryRepository) ListByProduct(_ context.Context, productID int64) ([]ProductReview, error) {
	var out []ProductReview
	for _, r := range m.All() {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

type productFinder map[int64]products.Product

func (f productFinder) Find(_ context.Context, id int64) (*products.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return &p, nil
}

func newTestRouter(t *testing.T) (http.Handler, memoryRepository) {
	t.Helper()
	repo := memoryRepository{tabletest.NewMemory(Mapping.Key)}
	finder := productFinder{1: {ID: 1, Name: "Widget", Price: 9.99, BrandID: 1}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(repo, finder))
	r := chi.NewRouter()
	r.Route("/products", h.MountRoutes)
	return r, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type reviewResponse struct {
	Success       bool          `json:"success"`
	ProductReview ProductReview `json:"product_review"`
}

func TestCreateReview(t *testing.T) {
	router, repo := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/products/1/product-reviews", `{"review":"Great","rating":4.5,"customer_id":3}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp reviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.ProductReview.ID)
	assert.Equal(t, int64(1), resp.ProductReview.ProductID)
	require.NotNil(t, resp.ProductReview.CustomerID)
	assert.Equal(t, int64(3), *resp.ProductReview.CustomerID)
	assert.Equal(t, 1, repo.Len())
}

func TestCreateReviewCustomerFromQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/products/1/product-reviews?customer_id=7", `{"review":"Fine","rating":3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp reviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.ProductReview.CustomerID)
	assert.Equal(t, int64(7), *resp.ProductReview.CustomerID)

	rr = do(t, router, http.MethodPost, "/products/1/product-reviews", `{"review":"Anon","rating":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.ProductReview.CustomerID)

	for _, value := range []string{"x", "0", "-4"} {
		rr = do(t, router, http.MethodPost, "/products/1/product-reviews?customer_id="+value, `{"review":"Bad","rating":2}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "customer_id=%s", value)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	router, repo := newTestRouter(t)

	for _, body := range []string{
		`{"rating":4}`,
		`{"review":"x"}`,
		`{"review":"x","rating":0}`,
		`{"review":"x","rating":5.5}`,
		``,
	} {
		rr := do(t, router, http.MethodPost, "/products/1/product-reviews", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}
	assert.Equal(t, 0, repo.Len())
}

func TestReviewsUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/products/999/product-reviews", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, router, http.MethodPost, "/products/999/product-reviews", `{"review":"x","rating":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListReviewsForProduct(t *testing.T) {
	router, repo := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/products/1/product-reviews", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"reviews":[]}`, rr.Body.String())

	repo.Seed(
		ProductReview{Review: "a", Rating: 5, ProductID: 1},
		ProductReview{Review: "b", Rating: 1, ProductID: 2},
		ProductReview{Review: "c", Rating: 3, ProductID: 1},
	)

	rr = do(t, router, http.MethodGet, "/products/1/product-reviews", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Reviews []ProductReview `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Reviews, 2)
	assert.Equal(t, "a", resp.Reviews[0].Review)
	assert.Equal(t, "c", resp.Reviews[1].Review)
}
