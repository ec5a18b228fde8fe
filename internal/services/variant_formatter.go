package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/models"
)

// VariantFormatter turns stored variants into the client facing shape.
// Formatting is total: a malformed record degrades field by field and never
// fails the batch.
type VariantFormatter struct {
	countryCode  string
	orphanPolicy string
}

// NewVariantFormatter creates a formatter for the given country and orphan
// variant policy (config.OrphanTolerate or config.OrphanSkip)
func NewVariantFormatter(countryCode, orphanPolicy string) *VariantFormatter {
	if orphanPolicy != config.OrphanSkip {
		orphanPolicy = config.OrphanTolerate
	}
	return &VariantFormatter{countryCode: countryCode, orphanPolicy: orphanPolicy}
}

// Format formats variants in order. Variants without a parent product are
// dropped under the skip policy.
func (f *VariantFormatter) Format(ctx context.Context, variants []models.Variant) []models.FormattedVariant {
	formatted := make([]models.FormattedVariant, 0, len(variants))
	for i := range variants {
		if fv, ok := f.FormatOne(ctx, &variants[i]); ok {
			formatted = append(formatted, fv)
		}
	}
	return formatted
}

// FormatOne formats a single variant. ok is false when the variant is an
// orphan and the policy says to skip it.
func (f *VariantFormatter) FormatOne(ctx context.Context, v *models.Variant) (models.FormattedVariant, bool) {
	product := v.Product
	if product == nil {
		logging.FromContext(ctx).WithFields(logrus.Fields{
			"orphan_variant": true,
			"variant_id":     v.ID,
			"product_id":     v.ProductID,
			"policy":         f.orphanPolicy,
		}).Warn("variant has no parent product")
		if f.orphanPolicy == config.OrphanSkip {
			return models.FormattedVariant{}, false
		}
	}

	fv := models.FormattedVariant{
		ID:            v.ID,
		ProductID:     v.ProductID,
		MainTitle:     v.Title,
		Title:         v.Title,
		SKU:           v.SKU,
		NormalPrice:   v.NormalPrice,
		DiscountPrice: v.DiscountPrice,
		CashPrice:     v.CashPrice,
		DiscountRate:  DiscountPercent(v.NormalPrice, v.DiscountPrice),
		TransferPrice: TransferPrice(v.NormalPrice, v.DiscountPrice, DefaultTransferPercent),

		Stock:          v.Stock,
		WarningStock:   v.WarningStock,
		AvailableStock: AvailableStock(v.Stock, 0, nil),

		Image: v.Image,

		Categories:       nonNil([]int(v.Categories)),
		Quantity:         v.Quantity,
		ArmedCost:        v.ArmedCost,
		ArmedQuantity:    v.ArmedQuantity,
		Weight:           v.Weight,
		Height:           v.Height,
		Depth:            v.Depth,
		Width:            v.Width,
		VolumetricWeight: VolumetricWeight(v.Width, v.Depth, v.Height, v.Weight, f.countryCode),
		Type:             v.Type,
		Options:          nonNil([]models.ProductOption(v.Options)),
		RelatedProducts:  nonNil([]int(v.RelatedProducts)),
		OptionLabel:      v.OptionLabel,
		Keywords:         v.Keywords,
		IsVisible:        v.IsVisible,
	}

	if product != nil {
		fv.MainTitle = product.Title
		fv.BrandID = product.BrandID
		fv.URL = product.URL
		fv.Hover = product.Hover
		if fv.Image == "" {
			fv.Image = product.Image
		}
	}

	fv.Images = nonNil([]string(v.Images))
	if len(fv.Images) == 0 && fv.Image != "" {
		fv.Images = []string{fv.Image}
	}

	return fv, true
}

// nonNil keeps empty lists rendering as [] rather than null
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
