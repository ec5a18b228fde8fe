package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/services"
)

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) result(args mock.Arguments) (*models.SyncResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncResult), args.Error(1)
}

func (m *MockSyncer) SyncBrands(ctx context.Context) (*models.SyncResult, error) {
	return m.result(m.Called(ctx))
}

func (m *MockSyncer) SyncCategories(ctx context.Context) (*models.SyncResult, error) {
	return m.result(m.Called(ctx))
}

func (m *MockSyncer) SyncChannelProducts(ctx context.Context, channelID int) (*models.SyncResult, error) {
	return m.result(m.Called(ctx, channelID))
}

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogReader) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogReader) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogReader) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogReader) ListBrands(ctx context.Context) ([]models.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Brand), args.Error(1)
}

func (m *MockCatalogReader) CountBrandProducts(ctx context.Context, brandID int) (*services.BrandProductCount, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BrandProductCount), args.Error(1)
}

type MockVariantReader struct {
	mock.Mock
}

func (m *MockVariantReader) List(ctx context.Context, page, limit int, channelID *int) (*services.VariantPage, error) {
	args := m.Called(ctx, page, limit, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VariantPage), args.Error(1)
}

func (m *MockVariantReader) FormattedByIDs(ctx context.Context, ids []int) ([]models.FormattedVariant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormattedVariant), args.Error(1)
}

func (m *MockVariantReader) UpdateSafeStock(ctx context.Context, variantID int, update models.SafeStockUpdate) (*models.SafeStock, error) {
	args := m.Called(ctx, variantID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SafeStock), args.Error(1)
}
