package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog-sync-service/internal/clients/bigcommerce"
	"catalog-sync-service/internal/database"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

// fakeBigCommerce serves a mutable in-memory catalog over the v3 API shape
type fakeBigCommerce struct {
	mu       sync.Mutex
	brands   []bigcommerce.Brand
	products map[int]bigcommerce.Product
	options  map[int][]bigcommerce.Option
	channels map[int][]int
	perPage  int
}

func (f *fakeBigCommerce) setBrands(brands ...bigcommerce.Brand) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brands = brands
}

func (f *fakeBigCommerce) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/stores/test/v3")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	switch {
	case path == "/catalog/brands":
		writePage(w, f.brands, page, f.perPage)
	case path == "/catalog/trees/categories":
		writePage(w, []bigcommerce.Category{}, page, f.perPage)
	case path == "/catalog/products/channel-assignments":
		channelID, _ := strconv.Atoi(r.URL.Query().Get("channel_id:in"))
		var assignments []bigcommerce.ChannelAssignment
		for _, id := range f.channels[channelID] {
			assignments = append(assignments, bigcommerce.ChannelAssignment{ProductID: id, ChannelID: channelID})
		}
		writePage(w, assignments, page, f.perPage)
	case strings.HasSuffix(path, "/options"):
		id, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(path, "/catalog/products/"), "/options"))
		json.NewEncoder(w).Encode(map[string]interface{}{"data": f.options[id]})
	case strings.HasPrefix(path, "/catalog/products/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/catalog/products/"))
		product, ok := f.products[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": product})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writePage[T any](w http.ResponseWriter, items []T, page, perPage int) {
	if page < 1 {
		page = 1
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	start := min((page-1)*perPage, len(items))
	end := min(start+perPage, len(items))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": items[start:end],
		"meta": map[string]interface{}{"pagination": map[string]int{
			"total": len(items), "count": end - start, "per_page": perPage,
			"current_page": page, "total_pages": totalPages,
		}},
	})
}

type syncFixture struct {
	db      *gorm.DB
	remote  *fakeBigCommerce
	service *SyncService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.ConnectSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	db := newTestDB(t)

	remote := &fakeBigCommerce{
		products: map[int]bigcommerce.Product{},
		options:  map[int][]bigcommerce.Option{},
		channels: map[int][]int{},
		perPage:  2,
	}
	server := httptest.NewServer(remote)
	t.Cleanup(server.Close)

	cfg := testConfig()
	cfg.BigCommercePageSize = 2
	client := bigcommerce.NewClient(bigcommerce.Config{BaseURL: server.URL, StoreHash: "test", AccessToken: "token"})

	service := NewSyncService(
		client,
		repository.NewBrandRepository(db),
		repository.NewCategoryRepository(db, nil, 0),
		repository.NewProductRepository(db),
		cfg,
	)
	return &syncFixture{db: db, remote: remote, service: service}
}

func TestSyncBrands_EndToEnd(t *testing.T) {
	f := newSyncFixture(t)
	brands := repository.NewBrandRepository(f.db)
	ctx := context.Background()

	f.remote.setBrands(bigcommerce.Brand{ID: 1, Name: "Acme"})
	result, err := f.service.SyncBrands(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)

	stored, err := brands.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].ID)
	assert.Equal(t, "Acme", stored[0].Name)

	f.remote.setBrands(bigcommerce.Brand{ID: 1, Name: "Acme Inc"})
	_, err = f.service.SyncBrands(ctx)
	require.NoError(t, err)

	stored, err = brands.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Acme Inc", stored[0].Name)
}

func TestSyncBrands_IdempotentAcrossPages(t *testing.T) {
	f := newSyncFixture(t)
	brands := repository.NewBrandRepository(f.db)
	ctx := context.Background()

	f.remote.setBrands(
		bigcommerce.Brand{ID: 1, Name: "Acme"},
		bigcommerce.Brand{ID: 2, Name: "Globex"},
		bigcommerce.Brand{ID: 3, Name: "Initech"},
		bigcommerce.Brand{ID: 4, Name: "Umbrella"},
		bigcommerce.Brand{ID: 5, Name: "Hooli"},
	)

	first, err := f.service.SyncBrands(ctx)
	require.NoError(t, err)
	require.Len(t, first.Data, 5)
	before, err := brands.List(ctx)
	require.NoError(t, err)

	_, err = f.service.SyncBrands(ctx)
	require.NoError(t, err)
	after, err := brands.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestSyncChannelProducts_EndToEnd(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	price := 1000.0
	sale := 800.0
	for id := 1; id <= 3; id++ {
		f.remote.products[id] = bigcommerce.Product{
			ID: id, Name: fmt.Sprintf("Sofa %d", id), Price: price, BrandID: 7, IsVisible: true,
			Categories: []int{10, 11},
			CustomURL: struct {
				URL string `json:"url"`
			}{URL: fmt.Sprintf("/sofa-%d/", id)},
			Images: []bigcommerce.Image{
				{ID: 2, URLStandard: "https://cdn/side.jpg", SortOrder: 1},
				{ID: 1, URLStandard: "https://cdn/front.jpg", IsThumbnail: true},
			},
			Variants: []bigcommerce.Variant{
				{ID: id*100 + 1, SKU: fmt.Sprintf("SOFA-%d-RED", id), Price: &price, SalePrice: &sale,
					OptionValues: []bigcommerce.OptionValue{{ID: 5, Label: "Red", OptionID: 2, OptionDisplayName: "Color"}}},
			},
			CustomFields: []bigcommerce.CustomField{{Name: "filters", Value: "40, 41"}, {Name: "sameday", Value: "si"}},
		}
		f.remote.options[id] = []bigcommerce.Option{{ID: 2, DisplayName: "Color"}}
	}
	f.remote.channels[1571013] = []int{1, 2, 3, 99}

	result, err := f.service.SyncChannelProducts(ctx, 1571013)
	require.NoError(t, err)
	require.Len(t, result.Data, 4)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 99, result.Failed[0].ID)

	_, err = f.service.SyncChannelProducts(ctx, 1571013)
	require.NoError(t, err)

	count := func(model interface{}) int64 {
		var n int64
		require.NoError(t, f.db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(3), count(&models.Product{}))
	assert.Equal(t, int64(3), count(&models.Variant{}))
	assert.Equal(t, int64(6), count(&models.CategoryProduct{}))
	assert.Equal(t, int64(6), count(&models.FiltersProduct{}))
	assert.Equal(t, int64(1), count(&models.Channel{}))
	assert.Equal(t, int64(3), count(&models.ChannelProduct{}))

	product, err := repository.NewProductRepository(f.db).GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/front.jpg", product.Image)
	require.NotNil(t, product.Hover)
	assert.Equal(t, "https://cdn/side.jpg", *product.Hover)
	assert.True(t, product.Sameday)
	require.Len(t, product.Variants, 1)

	variant := product.Variants[0]
	assert.Equal(t, "Sofa 2 - Red", variant.Title)
	assert.Equal(t, "20%", variant.DiscountRate)
	assert.Equal(t, 800.0, variant.DiscountPrice)
	assert.Equal(t, []int{10, 11}, []int(variant.Categories))
	require.Len(t, variant.Options, 1)
	assert.Equal(t, "Color", variant.Options[0].DisplayName)
}
