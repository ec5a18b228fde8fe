package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-sync-service/internal/clients"
	"catalog-sync-service/internal/logging"
)

const (
	serviceName = "price-service"

	// RequestTimeout bounds every price lookup
	RequestTimeout = 15 * time.Second

	// PriceCacheTTL is how long a looked up price is reused
	PriceCacheTTL = 2 * time.Minute
)

// Price is the price list entry of one variant
type Price struct {
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price"`
	CashPrice float64 `json:"cash_price"`
}

// Client looks up variant prices in the price service
type Client struct {
	transport *clients.Transport
	baseURL   string
	breaker   *clients.CircuitBreaker
	redis     *redis.Client
	cacheTTL  time.Duration
}

// NewClient creates a price client. redisClient may be nil.
func NewClient(baseURL string, redisClient *redis.Client) *Client {
	return &Client{
		transport: clients.NewTransport(serviceName, RequestTimeout, 0),
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		breaker:   clients.NewCircuitBreaker(5, 30*time.Second),
		redis:     redisClient,
		cacheTTL:  PriceCacheTTL,
	}
}

// GetPrice returns the price of variantID in the given price list
func (c *Client) GetPrice(ctx context.Context, variantID, priceListID int) (*Price, error) {
	cacheKey := fmt.Sprintf("catalog:price:%d:%d", priceListID, variantID)

	if c.redis != nil {
		val, err := c.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var price Price
			if err := json.Unmarshal([]byte(val), &price); err == nil {
				return &price, nil
			}
		}
	}

	var price Price
	url := fmt.Sprintf("%s/price/%d/%d", c.baseURL, variantID, priceListID)
	err := c.breaker.Call(func() error {
		return c.transport.DoJSON(ctx, http.MethodGet, url, nil, &price)
	})
	if err != nil {
		return nil, fmt.Errorf("get price of variant %d: %w", variantID, err)
	}

	if c.redis != nil {
		if data, err := json.Marshal(price); err == nil {
			if err := c.redis.Set(ctx, cacheKey, data, c.cacheTTL).Err(); err != nil {
				logging.FromContext(ctx).WithError(err).Debug("price cache write failed")
			}
		}
	}
	return &price, nil
}
