package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-service/internal/clients"
)

func TestClient_GetPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price/21/3", r.URL.Path)
		w.Write([]byte(`{"price": 1000, "sale_price": 750, "cash_price": 720}`))
	}))
	defer server.Close()

	price, err := NewClient(server.URL+"/", nil).GetPrice(context.Background(), 21, 3)
	require.NoError(t, err)
	assert.Equal(t, &Price{Price: 1000, SalePrice: 750, CashPrice: 720}, price)
}

func TestClient_GetPrice_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).GetPrice(context.Background(), 21, 3)
	assert.ErrorIs(t, err, clients.ErrRemoteNotFound)
}

func TestClient_GetPrice_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, nil)
	client.transport = clients.NewTransport(serviceName, 20*time.Millisecond, 0)

	_, err := client.GetPrice(context.Background(), 21, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, clients.ErrRemoteUnavailable)
	assert.True(t, clients.IsTimeout(err))
}

func TestClient_GetPrice_OpensCircuit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	client.breaker = clients.NewCircuitBreaker(2, time.Hour)

	for i := 0; i < 2; i++ {
		_, err := client.GetPrice(context.Background(), 21, 3)
		require.Error(t, err)
	}
	_, err := client.GetPrice(context.Background(), 21, 3)
	assert.ErrorIs(t, err, clients.ErrCircuitOpen)
	assert.Equal(t, 2, calls)
}
