package customers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/table/tabletest"
)

// ============================================================================
// HELPERS
// ============================================================================

func newTestRouter() (http.Handler, *tabletest.Memory[Customer]) {
	mem := tabletest.NewMemory(Mapping.Key)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(mem))
	r := chi.NewRouter()
	r.Route("/customers", h.MountRoutes)
	return r, mem
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type customerResponse struct {
	Success  bool     `json:"success"`
	Customer Customer `json:"customer"`
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateCustomer(t *testing.T) {
	router, _ := newTestRouter()

	rr := serve(router, http.MethodPost, "/customers", `{"name":"Ada","email":"ada@example.com","address":"1 Loop Rd"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp customerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, Customer{ID: 1, Name: "Ada", Email: "ada@example.com", Address: "1 Loop Rd"}, resp.Customer)
}

func TestCreateCustomerValidation(t *testing.T) {
	router, mem := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ada@example.com"}`},
		{"missing email", `{"name":"Ada"}`},
		{"malformed email", `{"name":"Ada","email":"not-an-email"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodPost, "/customers", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
	assert.Equal(t, 0, mem.Len())
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	router, mem := newTestRouter()
	mem.Seed(Customer{Name: "Ada", Email: "ada@example.com"})

	rr := serve(router, http.MethodPatch, "/customers/1", `{"address":"2 Loop Rd"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp customerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.Customer.Name)
	assert.Equal(t, "2 Loop Rd", resp.Customer.Address)

	rr = serve(router, http.MethodPatch, "/customers/1", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, http.MethodDelete, "/customers/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"customer_id":1}`, rr.Body.String())

	rr = serve(router, http.MethodDelete, "/customers/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListCustomersCountsAll(t *testing.T) {
	router, mem := newTestRouter()
	mem.Seed(Customer{ID: 3, Name: "a", Email: "a@x.io"}, Customer{ID: 25, Name: "b", Email: "b@x.io"})

	rr := serve(router, http.MethodGet, "/customers?page=3", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Customers      []Customer `json:"customers"`
		TotalCustomers int        `json:"total_customers"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCustomers)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, int64(25), resp.Customers[0].ID)
}
