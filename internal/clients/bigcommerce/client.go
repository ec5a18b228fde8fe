package bigcommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync-service/internal/clients"
)

const (
	serviceName = "bigcommerce"

	// MaxPageSize is the largest page BigCommerce v3 accepts
	MaxPageSize = 250
)

// Config holds the BigCommerce store connection settings
type Config struct {
	BaseURL     string
	StoreHash   string
	AccessToken string
	RateLimit   int
	Timeout     time.Duration
}

// Client is a typed wrapper over the BigCommerce v3 catalog API
type Client struct {
	transport *clients.Transport
	baseURL   string
}

// NewClient creates a BigCommerce catalog client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := clients.NewTransport(serviceName, cfg.Timeout, cfg.RateLimit)
	transport.Headers.Set("X-Auth-Token", cfg.AccessToken)

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{
		transport: transport,
		baseURL:   fmt.Sprintf("%s/stores/%s/v3", base, cfg.StoreHash),
	}
}

// ListBrandsPage fetches one page of brands
func (c *Client) ListBrandsPage(ctx context.Context, page, limit int) (*Page[Brand], error) {
	return listPage[Brand](ctx, c, "/catalog/brands", nil, page, limit)
}

// ListCategoriesPage fetches one page of category tree nodes
func (c *Client) ListCategoriesPage(ctx context.Context, page, limit int) (*Page[Category], error) {
	return listPage[Category](ctx, c, "/catalog/trees/categories", nil, page, limit)
}

// ListChannelProductPage fetches one page of product assignments of a channel
func (c *Client) ListChannelProductPage(ctx context.Context, channelID, page, limit int) (*Page[ChannelAssignment], error) {
	params := url.Values{}
	params.Set("channel_id:in", strconv.Itoa(channelID))
	return listPage[ChannelAssignment](ctx, c, "/catalog/products/channel-assignments", params, page, limit)
}

// GetProduct fetches a product with its variants, images and custom fields
func (c *Client) GetProduct(ctx context.Context, productID int) (*Product, error) {
	params := url.Values{}
	params.Set("include", "variants,images,custom_fields")

	var response envelope[Product]
	if err := c.transport.DoJSON(ctx, http.MethodGet, c.url(fmt.Sprintf("/catalog/products/%d", productID), params), nil, &response); err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return &response.Data, nil
}

// GetProductOptions fetches the options of a product
func (c *Client) GetProductOptions(ctx context.Context, productID int) ([]Option, error) {
	var response envelope[[]Option]
	if err := c.transport.DoJSON(ctx, http.MethodGet, c.url(fmt.Sprintf("/catalog/products/%d/options", productID), nil), nil, &response); err != nil {
		return nil, fmt.Errorf("get product %d options: %w", productID, err)
	}
	if response.Data == nil {
		return []Option{}, nil
	}
	return response.Data, nil
}

func listPage[T any](ctx context.Context, c *Client, path string, params url.Values, page, limit int) (*Page[T], error) {
	if params == nil {
		params = url.Values{}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var response envelope[[]T]
	if err := c.transport.DoJSON(ctx, http.MethodGet, c.url(path, params), nil, &response); err != nil {
		return nil, fmt.Errorf("list %s page %d: %w", path, page, err)
	}
	if err := response.Meta.Pagination.Check(); err != nil {
		return nil, fmt.Errorf("list %s page %d: %w", path, page, err)
	}

	items := response.Data
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Pagination: response.Meta.Pagination}, nil
}

func (c *Client) url(path string, params url.Values) string {
	full := c.baseURL + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	return full
}
