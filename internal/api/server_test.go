package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"menusync/internal/cache"
	"menusync/internal/config"
	"menusync/internal/events"
	"menusync/internal/fetcher"
	"menusync/internal/logger"
	"menusync/internal/menu"
	"menusync/internal/normalizer"
	"menusync/internal/registry"
	"menusync/internal/signer"
	"menusync/internal/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	payzonePayload = `{"services": [
		{"serviceId": "pz-1", "serviceName": "DSTV Payment", "serviceCategory": "Bill Payments",
		 "amount": 0, "currency": "ZAR", "active": true, "tags": ["featured"]},
		{"serviceId": "pz-2", "serviceName": "Electricity", "serviceCategory": "Bill Payments",
		 "amount": 200, "currency": "ZAR", "active": true}
	]}`
	ezivendPayload = `{"data": {"vouchers": [
		{"id": "v-1", "title": "Netflix Voucher", "price": {"value": 199, "currency": "ZAR"}, "inStock": true},
		{"id": "v-2", "title": "Game Voucher", "price": {"value": 99, "currency": "ZAR"}, "inStock": true},
		{"id": "v-3", "title": "Expired Voucher", "price": {"value": 49, "currency": "ZAR"},
		 "inStock": true, "expiryDate": "2020-01-01T00:00:00Z"}
	]}}`
)

func jsonHandler(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}
}

// testStack wires the full pipeline against two fake provider servers and
// returns the gin router, after one forced sync of everything.
func testStack(t *testing.T) http.Handler {
	t.Helper()

	payzoneServer := httptest.NewServer(jsonHandler(payzonePayload))
	t.Cleanup(payzoneServer.Close)
	ezivendServer := httptest.NewServer(jsonHandler(ezivendPayload))
	t.Cleanup(ezivendServer.Close)

	providers := registry.New([]*registry.ProviderConnection{
		{
			ID: "payzone", Name: "PayZone", BaseURL: payzoneServer.URL,
			APIKey: "k", APISecret: "s", ProductsPath: "/v1/services",
			Categories:   []string{"Bill Payments", "Banking Services"},
			SyncInterval: time.Hour, Timeout: 2 * time.Second, MaxRetries: 1, RetryDelay: time.Millisecond,
		},
		{
			ID: "ezivend", Name: "EziVend", BaseURL: ezivendServer.URL,
			APIKey: "k", APISecret: "s", ProductsPath: "/api/vouchers",
			Categories:   []string{"Vouchers", "VAS Services"},
			SyncInterval: time.Hour, Timeout: 2 * time.Second, MaxRetries: 1, RetryDelay: time.Millisecond,
		},
	})

	log := logger.New("error")
	productCache := cache.New(providers)
	orchestrator := syncer.New(providers, fetcher.New(signer.New()), normalizer.NewRegistry(providers), productCache, events.Noop{}, log)
	menuService := menu.NewService(productCache, log, 20, 10)
	orchestrator.OnSync(func(string) { menuService.Generate() })

	require.NoError(t, orchestrator.ForceSyncAll(context.Background()))

	cfg := &config.Config{Env: "production", MaxPerCategory: 20, MaxFeatured: 10}
	return New(cfg, log, providers, productCache, menuService, orchestrator).Router()
}

func get(t *testing.T, router http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetAllProductsAcrossProviders(t *testing.T) {
	router := testStack(t)

	code, body := get(t, router, "/api/v1/products")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), body["count"])
}

func TestGetProductsByProvider(t *testing.T) {
	router := testStack(t)

	code, body := get(t, router, "/api/v1/products/provider/ezivend")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["count"])

	code, _ = get(t, router, "/api/v1/products/provider/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProviderStatus(t *testing.T) {
	router := testStack(t)

	code, body := get(t, router, "/api/v1/providers/status")
	require.Equal(t, http.StatusOK, code)

	statuses, ok := body["providers"].([]interface{})
	require.True(t, ok)
	require.Len(t, statuses, 2)
	first := statuses[0].(map[string]interface{})
	assert.Equal(t, true, first["active"])
}

func TestMenuEndpoints(t *testing.T) {
	router := testStack(t)

	// ForceSyncAll during setup regenerated the menu once per provider.
	code, body := get(t, router, "/api/v1/menu")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["version"])

	code, body = get(t, router, "/api/v1/menu/categories")
	require.Equal(t, http.StatusOK, code)
	categories, ok := body["categories"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bill Payments", categories[0])

	code, body = get(t, router, "/api/v1/menu/featured")
	require.Equal(t, http.StatusOK, code)
	featured := body["featured"].([]interface{})
	require.NotEmpty(t, featured)
	// The zero-priced featured product renders as Free.
	first := featured[0].(map[string]interface{})
	assert.Equal(t, "Free", first["formatted_price"])

	code, _ = get(t, router, "/api/v1/menu/category/Nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMenuRegenerateBumpsVersion(t *testing.T) {
	router := testStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/menu/regenerate", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// Two generations happened during setup, one per synced provider.
	assert.Equal(t, float64(3), body["version"])
}

func TestSearchAvailableOnly(t *testing.T) {
	router := testStack(t)

	code, body := get(t, router, "/api/v1/search?q=voucher&available=true")
	require.Equal(t, http.StatusOK, code)
	// The expired voucher is filtered out.
	assert.Equal(t, float64(2), body["count"])

	code, _ = get(t, router, "/api/v1/search?max_price=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestForceSyncEndpoints(t *testing.T) {
	router := testStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sync/provider/payzone", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sync/provider/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sync/all", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
