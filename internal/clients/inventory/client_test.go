package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-service/internal/clients"
	"catalog-sync-service/internal/models"
)

func TestClient_GetSafeStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/inventory/21/4", r.URL.Path)
		w.Write([]byte(`{"sku": "SOFA-1", "variant_id": 21, "product_id": 11, "safety_stock": 2, "available_to_sell": 8}`))
	}))
	defer server.Close()

	stock, err := NewClient(server.URL, nil).GetSafeStock(context.Background(), 21, 4)
	require.NoError(t, err)
	assert.Equal(t, "SOFA-1", stock.SKU)
	assert.Equal(t, 2, stock.SafetyStock)
	require.NotNil(t, stock.AvailableToSell)
	assert.Equal(t, 8, *stock.AvailableToSell)
}

func TestClient_GetSafeStock_MissingAvailableToSell(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sku": "SOFA-1", "safety_stock": 2}`))
	}))
	defer server.Close()

	stock, err := NewClient(server.URL, nil).GetSafeStock(context.Background(), 21, 4)
	require.NoError(t, err)
	assert.Nil(t, stock.AvailableToSell)
}

func TestClient_UpdateSafeStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/inventory/21/4", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"safety_stock": float64(5)}, body)

		w.Write([]byte(`{"sku": "SOFA-1", "variant_id": 21, "safety_stock": 5}`))
	}))
	defer server.Close()

	safety := 5
	stock, err := NewClient(server.URL, nil).UpdateSafeStock(context.Background(), 21, 4, models.SafeStockUpdate{SafetyStock: &safety})
	require.NoError(t, err)
	assert.Equal(t, 5, stock.SafetyStock)
}

func TestClient_UpdateSafeStock_RemoteRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "safety_stock must be positive"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).UpdateSafeStock(context.Background(), 21, 4, models.SafeStockUpdate{})
	var remote *clients.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.False(t, clients.IsTransient(err))
}
