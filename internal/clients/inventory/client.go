package inventory

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
	"catalog-sync-service/internal/models"
)

const (
	serviceName = "inventory-service"

	// RequestTimeout bounds every inventory call
	RequestTimeout = 15 * time.Second

	// SafeStockCacheTTL is how long a looked up safe stock is reused
	SafeStockCacheTTL = time.Minute
)

// Client reads and updates safe stock in the inventory service
type Client struct {
	transport *clients.Transport
	baseURL   string
	redis     *redis.Client
	cacheTTL  time.Duration
}

// NewClient creates an inventory client. redisClient may be nil.
func NewClient(baseURL string, redisClient *redis.Client) *Client {
	return &Client{
		transport: clients.NewTransport(serviceName, RequestTimeout, 0),
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		redis:     redisClient,
		cacheTTL:  SafeStockCacheTTL,
	}
}

func cacheKey(id, locationID int) string {
	return fmt.Sprintf("catalog:safe-stock:%d:%d", locationID, id)
}

// GetSafeStock returns the safe stock of variant id at locationID
func (c *Client) GetSafeStock(ctx context.Context, id, locationID int) (*models.SafeStock, error) {
	key := cacheKey(id, locationID)
	if c.redis != nil {
		val, err := c.redis.Get(ctx, key).Result()
		if err == nil {
			var stock models.SafeStock
			if err := json.Unmarshal([]byte(val), &stock); err == nil {
				return &stock, nil
			}
		}
	}

	var stock models.SafeStock
	if err := c.transport.DoJSON(ctx, http.MethodGet, c.url(id, locationID), nil, &stock); err != nil {
		return nil, fmt.Errorf("get safe stock of %d: %w", id, err)
	}

	c.store(ctx, key, &stock)
	return &stock, nil
}

// UpdateSafeStock patches the safe stock of variant id at locationID and
// returns the updated record
func (c *Client) UpdateSafeStock(ctx context.Context, id, locationID int, update models.SafeStockUpdate) (*models.SafeStock, error) {
	var stock models.SafeStock
	if err := c.transport.DoJSON(ctx, http.MethodPatch, c.url(id, locationID), update, &stock); err != nil {
		return nil, fmt.Errorf("update safe stock of %d: %w", id, err)
	}

	key := cacheKey(id, locationID)
	if stock.SKU == "" && stock.VariantID == 0 {
		// empty answer, drop whatever is cached
		if c.redis != nil {
			c.redis.Del(ctx, key)
		}
		return &stock, nil
	}
	c.store(ctx, key, &stock)
	return &stock, nil
}

func (c *Client) store(ctx context.Context, key string, stock *models.SafeStock) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(stock)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		logging.FromContext(ctx).WithError(err).Debug("safe stock cache write failed")
	}
}

func (c *Client) url(id, locationID int) string {
	return fmt.Sprintf("%s/inventory/%d/%d", c.baseURL, id, locationID)
}
