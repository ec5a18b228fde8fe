package services

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTransferPercent is the marketplace commission deducted by TransferPrice
const DefaultTransferPercent = 2

// volumetricDivisor converts cm³ to volumetric kilograms
const volumetricDivisor = 4000

// countryRealWeightOnly ships by real weight regardless of volume
const countryRealWeightOnly = "PE"

// DiscountPercent returns the discount of salePrice over price as "<n>%".
// Any non-discount (missing prices, sale price not lower) is "0%".
func DiscountPercent(price, salePrice float64) string {
	if price <= 0 || salePrice <= 0 || salePrice >= price {
		return "0%"
	}
	percent := math.Round((price - salePrice) / price * 100)
	if math.IsNaN(percent) || percent < 0 || percent >= 100 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(percent))
}

// TransferPrice is the amount left after deducting transferPercent from the
// effective selling price (sale price when present, list price otherwise)
func TransferPrice(price, salePrice, transferPercent float64) float64 {
	if price <= 0 && salePrice <= 0 {
		return 0
	}
	base := price
	if salePrice > 0 {
		base = salePrice
	}
	return math.Round(math.Max(0, base-base*transferPercent/100))
}

// VolumetricWeight returns the chargeable weight of a parcel
func VolumetricWeight(width, depth, height, weight float64, countryCode string) float64 {
	if strings.EqualFold(countryCode, countryRealWeightOnly) {
		return weight
	}
	return math.Max(width*depth*height/volumetricDivisor, weight)
}

// AvailableStock is the sellable stock. An explicit availableToSell from the
// inventory service wins over inventoryLevel minus safetyStock.
func AvailableStock(inventoryLevel, safetyStock int, availableToSell *int) int {
	if availableToSell != nil {
		return max(0, *availableToSell)
	}
	return max(0, inventoryLevel-safetyStock)
}
