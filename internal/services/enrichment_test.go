package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog-sync-service/internal/clients"
	"catalog-sync-service/internal/clients/pricing"
	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/models"
)

type MockPriceLookup struct {
	mock.Mock
}

func (m *MockPriceLookup) GetPrice(ctx context.Context, variantID, priceListID int) (*pricing.Price, error) {
	args := m.Called(ctx, variantID, priceListID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Price), args.Error(1)
}

type MockSafeStockLookup struct {
	mock.Mock
}

func (m *MockSafeStockLookup) GetSafeStock(ctx context.Context, id, locationID int) (*models.SafeStock, error) {
	args := m.Called(ctx, id, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SafeStock), args.Error(1)
}

var enrichCountry = config.CountryConfig{Code: "CL", PriceListID: 3, LocationID: 4}

func TestEnricher_AppliesPriceAndSafeStock(t *testing.T) {
	prices := new(MockPriceLookup)
	stock := new(MockSafeStockLookup)
	available := 6

	prices.On("GetPrice", mock.Anything, 21, 3).Return(&pricing.Price{Price: 2000, SalePrice: 1500, CashPrice: 1400}, nil)
	stock.On("GetSafeStock", mock.Anything, 21, 4).Return(&models.SafeStock{SKU: "SOFA-RED", SafetyStock: 2, AvailableToSell: &available}, nil)

	variants := []models.FormattedVariant{{ID: 21, SKU: "SOFA-RED", NormalPrice: 1000, DiscountPrice: 1000, Stock: 10, AvailableStock: 10}}
	NewEnricher(prices, stock, enrichCountry).Enrich(context.Background(), variants)

	v := variants[0]
	assert.Equal(t, 2000.0, v.NormalPrice)
	assert.Equal(t, 1500.0, v.DiscountPrice)
	assert.Equal(t, 1400.0, v.CashPrice)
	assert.Equal(t, "25%", v.DiscountRate)
	assert.Equal(t, 1470.0, v.TransferPrice)
	assert.Equal(t, 2, v.SafetyStock)
	assert.Equal(t, 6, v.AvailableStock)
}

func TestEnricher_SafeStockWithoutAvailableToSell(t *testing.T) {
	stock := new(MockSafeStockLookup)
	stock.On("GetSafeStock", mock.Anything, 21, 4).Return(&models.SafeStock{SafetyStock: 3}, nil)

	variants := []models.FormattedVariant{{ID: 21, SKU: "SOFA-RED", Stock: 10, AvailableStock: 10}}
	NewEnricher(nil, stock, enrichCountry).Enrich(context.Background(), variants)

	assert.Equal(t, 7, variants[0].AvailableStock)
	assert.Equal(t, 3, variants[0].SafetyStock)
}

func TestEnricher_FailuresKeepStoredValues(t *testing.T) {
	prices := new(MockPriceLookup)
	stock := new(MockSafeStockLookup)

	prices.On("GetPrice", mock.Anything, mock.Anything, 3).Return(nil, &clients.UnavailableError{Service: "price-service", Timeout: true, Err: errors.New("deadline")})
	stock.On("GetSafeStock", mock.Anything, 21, 4).Return(nil, clients.ErrRemoteNotFound)
	stock.On("GetSafeStock", mock.Anything, 22, 4).Return(&models.SafeStock{SKU: "OTHER", SafetyStock: 9}, nil)

	variants := []models.FormattedVariant{
		{ID: 21, SKU: "A", NormalPrice: 1000, DiscountPrice: 800, DiscountRate: "20%", Stock: 5, AvailableStock: 5},
		{ID: 22, SKU: "B", NormalPrice: 500, DiscountPrice: 500, DiscountRate: "0%", Stock: 5, AvailableStock: 5},
	}
	NewEnricher(prices, stock, enrichCountry).Enrich(context.Background(), variants)

	assert.Equal(t, 1000.0, variants[0].NormalPrice)
	assert.Equal(t, "20%", variants[0].DiscountRate)
	assert.Equal(t, 5, variants[0].AvailableStock)
	assert.Equal(t, 0, variants[1].SafetyStock)
	assert.Equal(t, 5, variants[1].AvailableStock)
}

func TestEnricher_NilIsNoop(t *testing.T) {
	var enricher *Enricher
	variants := []models.FormattedVariant{{ID: 1, NormalPrice: 10}}
	enricher.Enrich(context.Background(), variants)
	assert.Equal(t, 10.0, variants[0].NormalPrice)
}
