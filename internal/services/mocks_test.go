package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"catalog-sync-service/internal/clients/bigcommerce"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) ListBrandsPage(ctx context.Context, page, limit int) (*bigcommerce.Page[bigcommerce.Brand], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bigcommerce.Page[bigcommerce.Brand]), args.Error(1)
}

func (m *MockCatalogSource) ListCategoriesPage(ctx context.Context, page, limit int) (*bigcommerce.Page[bigcommerce.Category], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bigcommerce.Page[bigcommerce.Category]), args.Error(1)
}

func (m *MockCatalogSource) ListChannelProductPage(ctx context.Context, channelID, page, limit int) (*bigcommerce.Page[bigcommerce.ChannelAssignment], error) {
	args := m.Called(ctx, channelID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bigcommerce.Page[bigcommerce.ChannelAssignment]), args.Error(1)
}

func (m *MockCatalogSource) GetProduct(ctx context.Context, productID int) (*bigcommerce.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bigcommerce.Product), args.Error(1)
}

func (m *MockCatalogSource) GetProductOptions(ctx context.Context, productID int) ([]bigcommerce.Option, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bigcommerce.Option), args.Error(1)
}

type MockBrandStore struct {
	mock.Mock
}

func (m *MockBrandStore) Upsert(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) Upsert(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryStore) InvalidateCache(ctx context.Context) {
	m.Called(ctx)
}

type MockProductGraphStore struct {
	mock.Mock
}

func (m *MockProductGraphStore) UpsertGraph(ctx context.Context, graph *repository.ProductGraph) error {
	return m.Called(ctx, graph).Error(0)
}
