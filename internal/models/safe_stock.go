package models

// SafeStock is the inventory safety margin kept by the inventory service.
// It is joined to a Variant by SKU and never stored locally.
type SafeStock struct {
	SKU              string `json:"sku"`
	VariantID        int    `json:"variant_id"`
	ProductID        int    `json:"product_id"`
	SafetyStock      int    `json:"safety_stock"`
	WarningLevel     int    `json:"warning_level"`
	AvailableToSell  *int   `json:"available_to_sell"`
	BinPickingNumber string `json:"bin_picking_number"`
}

// SafeStockUpdate is the writable subset of SafeStock
type SafeStockUpdate struct {
	SafetyStock      *int    `json:"safety_stock,omitempty"`
	WarningLevel     *int    `json:"warning_level,omitempty"`
	BinPickingNumber *string `json:"bin_picking_number,omitempty"`
}
