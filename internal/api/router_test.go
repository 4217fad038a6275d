package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/auth"
	"github.com/meharshop/storefront/internal/backend"
	"github.com/meharshop/storefront/internal/cart"
	"github.com/meharshop/storefront/internal/checkout"
	"github.com/meharshop/storefront/internal/config"
	"github.com/meharshop/storefront/internal/storage"
)

func newTestRouter(t *testing.T) (http.Handler, *storage.MemStore) {
	t.Helper()

	shop := http.NewServeMux()
	shop.HandleFunc("/api/bank-details", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"1","method":"cod","accountTitle":"x","accountNumber":"1"}]`))
	})
	shop.HandleFunc("/api/orders/guest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"ord-1"}`))
	})
	shop.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	srv := httptest.NewServer(shop)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	durable := storage.NewMemStore()
	session := storage.NewMemStore()

	bridge := cart.NewBridge(durable, logger)
	cartStore := cart.NewStore(durable, bridge, logger)
	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL}, logger)
	drafts := checkout.NewDrafts(session, logger)
	flow := checkout.NewFlow(drafts, cartStore, client, logger)

	cfg := &config.Config{Environment: "production"}
	router := NewRouter(cfg, Deps{
		Cart:    cartStore,
		Bridge:  bridge,
		Drafts:  drafts,
		Flow:    flow,
		Backend: client,
		Tokens:  auth.NewTokens(durable),
	}, logger)
	return router, durable
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Mug","price":500,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Same product aggregates
	w = doJSON(t, router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Mug","price":500,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/cart/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 3, count.Count)

	// Validation failures are 422
	w = doJSON(t, router, http.MethodPost, "/cart/items", `{"title":"no id"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Quantity zero removes the item
	w = doJSON(t, router, http.MethodPatch, "/cart/items/p1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/cart/count", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 0, count.Count)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	// No draft yet
	w := doJSON(t, router, http.MethodGet, "/checkout", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Empty cart cannot go to checkout
	w = doJSON(t, router, http.MethodPost, "/checkout",
		`{"shippingAddress":"12 Mall Road","name":"Ayesha"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/cart/items",
		`{"productId":"p1","title":"Mug","price":500,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/checkout",
		`{"shippingAddress":"12 Mall Road","name":"Ayesha"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/checkout/method", `{"method":"cod"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var totals struct {
		Total  float64 `json:"total"`
		CODFee float64 `json:"codFee"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, 100.0, totals.CODFee)
	assert.Equal(t, 1100.0, totals.Total)

	// COD confirm submits directly
	w = doJSON(t, router, http.MethodPost, "/checkout/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUCCEEDED")

	// Success cleared the cart
	w = doJSON(t, router, http.MethodGet, "/cart/count", "")
	var count struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 0, count.Count)
}

func TestCatalogDegradesToEmptyList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestAdminHiddenWithoutHint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/admin/overview", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
