package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *repository.BrandRepository, *repository.ProductRepository) {
	t.Helper()
	db := newTestDB(t)
	brands := repository.NewBrandRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db, nil, 0)
	return NewCatalogService(products, categories, brands), brands, products
}

func TestCatalogService_EmptyListsAreNotNil(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)

	brands, err := svc.ListBrands(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, brands)
	assert.Empty(t, brands)
}

func TestCatalogService_CountBrandProducts(t *testing.T) {
	svc, brands, products := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, brands.Upsert(ctx, &models.Brand{ID: 7, Name: "Acme"}))
	for _, id := range []int{1, 2} {
		brandID := 7
		require.NoError(t, products.UpsertGraph(ctx, &repository.ProductGraph{
			Product: &models.Product{ID: id, Title: "P", URL: fmt.Sprintf("/p-%d/", id), BrandID: &brandID},
			Channel: models.Channel{ID: 1, Name: "web"},
		}))
	}

	count, err := svc.CountBrandProducts(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, &BrandProductCount{BrandID: 7, Name: "Acme", Products: 2}, count)

	_, err = svc.CountBrandProducts(ctx, 8)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogService_GetMissing(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	_, err := svc.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.GetCategory(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
