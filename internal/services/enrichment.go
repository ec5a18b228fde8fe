package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"catalog-sync-service/internal/clients/pricing"
	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/models"
)

// maxConcurrentEnrichments caps lookups in flight per read request
const maxConcurrentEnrichments = 10

// PriceLookup resolves a variant's price in a price list
type PriceLookup interface {
	GetPrice(ctx context.Context, variantID, priceListID int) (*pricing.Price, error)
}

// SafeStockLookup resolves a variant's safe stock at a location
type SafeStockLookup interface {
	GetSafeStock(ctx context.Context, id, locationID int) (*models.SafeStock, error)
}

// Enricher merges price list and safe stock data into formatted variants.
// A failed lookup keeps the stored values.
type Enricher struct {
	prices  PriceLookup
	stock   SafeStockLookup
	country config.CountryConfig
}

// NewEnricher creates an enricher. Either lookup may be nil to skip it.
func NewEnricher(prices PriceLookup, stock SafeStockLookup, country config.CountryConfig) *Enricher {
	return &Enricher{prices: prices, stock: stock, country: country}
}

// Enrich updates variants in place
func (e *Enricher) Enrich(ctx context.Context, variants []models.FormattedVariant) {
	if e == nil || len(variants) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentEnrichments)
	for i := range variants {
		g.Go(func() error {
			e.enrichOne(ctx, &variants[i])
			return nil
		})
	}
	g.Wait()
}

func (e *Enricher) enrichOne(ctx context.Context, v *models.FormattedVariant) {
	log := logging.FromContext(ctx).WithField("variant_id", v.ID)

	if e.prices != nil {
		price, err := e.prices.GetPrice(ctx, v.ID, e.country.PriceListID)
		if err != nil {
			log.WithError(err).Warn("price lookup failed, keeping stored price")
		} else {
			applyPrice(v, price)
		}
	}

	if e.stock != nil {
		stock, err := e.stock.GetSafeStock(ctx, v.ID, e.country.LocationID)
		switch {
		case err != nil:
			log.WithError(err).Warn("safe stock lookup failed, keeping stored stock")
		case stock == nil:
		case stock.SKU != "" && stock.SKU != v.SKU:
			log.WithField("safe_stock_sku", stock.SKU).Warn("safe stock belongs to another sku, ignoring")
		default:
			applySafeStock(v, stock)
		}
	}
}

func applyPrice(v *models.FormattedVariant, price *pricing.Price) {
	if price == nil || price.Price <= 0 {
		return
	}
	v.NormalPrice = price.Price
	v.DiscountPrice = price.Price
	if price.SalePrice > 0 && price.SalePrice < price.Price {
		v.DiscountPrice = price.SalePrice
	}
	v.CashPrice = v.DiscountPrice
	if price.CashPrice > 0 {
		v.CashPrice = price.CashPrice
	}
	v.DiscountRate = DiscountPercent(v.NormalPrice, v.DiscountPrice)
	v.TransferPrice = TransferPrice(v.NormalPrice, v.DiscountPrice, DefaultTransferPercent)
}

func applySafeStock(v *models.FormattedVariant, stock *models.SafeStock) {
	if stock == nil {
		return
	}
	v.SafetyStock = stock.SafetyStock
	v.AvailableStock = AvailableStock(v.Stock, stock.SafetyStock, stock.AvailableToSell)
}
