package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalog-sync-service/internal/clients/bigcommerce"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
)

// Custom field names BigCommerce products carry for local-only attributes
const (
	fieldSameday         = "sameday"
	fieldDespacho24Horas = "despacho24horas"
	fieldPickupInStore   = "pickup_in_store"
	fieldTurbo           = "turbo"
	fieldReserve         = "reserve"
	fieldCashPrice       = "cash_price"
	fieldArmedCost       = "armed_cost"
	fieldArmedQuantity   = "armed_quantity"
	fieldFilters         = "filters"
)

// ErrInvalidRemoteItem marks remote data that cannot be stored as is
var ErrInvalidRemoteItem = errors.New("invalid remote item")

// SchemaMapper transforms BigCommerce catalog data into local records
type SchemaMapper struct{}

// NewSchemaMapper creates a new schema mapper instance
func NewSchemaMapper() *SchemaMapper {
	return &SchemaMapper{}
}

// =============================================================================
// BRAND AND CATEGORY
// =============================================================================

// MapBrand transforms a remote brand
func (m *SchemaMapper) MapBrand(remote bigcommerce.Brand) (*models.Brand, error) {
	if remote.ID <= 0 {
		return nil, fmt.Errorf("%w: brand id %d", ErrInvalidRemoteItem, remote.ID)
	}
	return &models.Brand{ID: remote.ID, Name: strings.TrimSpace(remote.Name)}, nil
}

// MapCategory transforms a remote category tree node
func (m *SchemaMapper) MapCategory(remote bigcommerce.Category) (*models.Category, error) {
	if remote.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category id %d", ErrInvalidRemoteItem, remote.CategoryID)
	}
	if strings.TrimSpace(remote.Name) == "" {
		return nil, fmt.Errorf("%w: category %d has no name", ErrInvalidRemoteItem, remote.CategoryID)
	}

	category := &models.Category{
		CategoryID: remote.CategoryID,
		Title:      strings.TrimSpace(remote.Name),
		URL:        remote.URL.Path,
		ParentID:   remote.ParentID,
		Order:      remote.SortOrder,
		Image:      optionalString(remote.ImageURL),
		IsVisible:  remote.IsVisible,
	}
	if remote.TreeID > 0 {
		treeID := remote.TreeID
		category.TreeID = &treeID
	}
	return category, nil
}

// =============================================================================
// PRODUCT
// =============================================================================

// MapProductGraph transforms a remote product, its variants and its options
// into everything a channel-product sync stores for it
func (m *SchemaMapper) MapProductGraph(remote *bigcommerce.Product, options []bigcommerce.Option, channel models.Channel) (*repository.ProductGraph, error) {
	if remote == nil || remote.ID <= 0 {
		return nil, fmt.Errorf("%w: missing product", ErrInvalidRemoteItem)
	}
	if strings.TrimSpace(remote.Name) == "" {
		return nil, fmt.Errorf("%w: product %d has no name", ErrInvalidRemoteItem, remote.ID)
	}

	fields := customFields(remote.CustomFields)
	product := m.mapProduct(remote, options, fields)

	graph := &repository.ProductGraph{
		Product:     product,
		CategoryIDs: positiveInts(remote.Categories),
		FilterIDs:   parseIDList(fields[fieldFilters]),
		Channel:     channel,
	}

	productOptions := mapOptions(options)
	for _, variant := range remote.Variants {
		graph.Variants = append(graph.Variants, m.mapVariant(remote, product, variant, productOptions, fields))
	}
	return graph, nil
}

func (m *SchemaMapper) mapProduct(remote *bigcommerce.Product, options []bigcommerce.Option, fields map[string]string) *models.Product {
	images := sortedImages(remote.Images)

	product := &models.Product{
		ID:              remote.ID,
		Title:           strings.TrimSpace(remote.Name),
		PageTitle:       remote.PageTitle,
		Description:     remote.Description,
		NormalPrice:     remote.Price,
		Stock:           remote.InventoryLevel,
		WarningStock:    remote.InventoryWarningLevel,
		Quantity:        remote.OrderQuantityMinimum,
		ArmedCost:       parseFloat(fields[fieldArmedCost]),
		Weight:          remote.Weight,
		Width:           remote.Width,
		Height:          remote.Height,
		Depth:           remote.Depth,
		SortOrder:       remote.SortOrder,
		Sameday:         parseFlag(fields[fieldSameday]),
		FreeShipping:    remote.IsFreeShipping,
		Despacho24Horas: parseFlag(fields[fieldDespacho24Horas]),
		Featured:        remote.IsFeatured,
		PickupInStore:   parseFlag(fields[fieldPickupInStore]),
		IsVisible:       remote.IsVisible,
		Turbo:           parseFlag(fields[fieldTurbo]),
		MetaDescription: remote.MetaDescription,
		MetaKeywords:    remote.MetaKeywords,
		Sizes:           sizeLabels(options),
		URL:             remote.CustomURL.URL,
		Type:            remote.Type,
		Reserve:         optionalString(fields[fieldReserve]),
	}

	if remote.BrandID > 0 {
		brandID := remote.BrandID
		product.BrandID = &brandID
	}
	if product.URL == "" {
		product.URL = fmt.Sprintf("/product-%d/", remote.ID)
	}
	if remote.ReviewsCount > 0 {
		reviews := remote.ReviewsCount
		product.Reviews = &reviews
	}
	if remote.SalePrice > 0 && remote.SalePrice < remote.Price {
		sale := remote.SalePrice
		product.DiscountPrice = &sale
	}
	product.CashPrice = parseFloat(fields[fieldCashPrice])
	if product.CashPrice <= 0 {
		product.CashPrice = effectivePrice(product.NormalPrice, product.DiscountPrice)
	}

	for _, image := range images {
		product.Images = append(product.Images, image.URL())
	}
	if len(images) > 0 {
		product.Image = images[0].URL()
	}
	if len(images) > 1 {
		hover := images[1].URL()
		product.Hover = &hover
	}
	return product
}

func (m *SchemaMapper) mapVariant(remote *bigcommerce.Product, product *models.Product, variant bigcommerce.Variant, options []models.ProductOption, fields map[string]string) models.Variant {
	normal := product.NormalPrice
	if variant.Price != nil && *variant.Price > 0 {
		normal = *variant.Price
	}
	discount := normal
	switch {
	case variant.SalePrice != nil && *variant.SalePrice > 0 && *variant.SalePrice < normal:
		discount = *variant.SalePrice
	case variant.SalePrice == nil && product.DiscountPrice != nil && *product.DiscountPrice < normal:
		discount = *product.DiscountPrice
	}
	cash := parseFloat(fields[fieldCashPrice])
	if cash <= 0 {
		cash = discount
	}

	image := variant.ImageURL
	if image == "" {
		image = product.Image
	}

	labels := make([]string, 0, len(variant.OptionValues))
	for _, value := range variant.OptionValues {
		labels = append(labels, value.Label)
	}
	title := product.Title
	var optionLabel *string
	if len(labels) > 0 {
		joined := strings.Join(labels, " / ")
		optionLabel = &joined
		title = product.Title + " - " + joined
	}

	return models.Variant{
		ID:              variant.ID,
		ProductID:       product.ID,
		Title:           title,
		SKU:             variant.SKU,
		NormalPrice:     normal,
		DiscountPrice:   discount,
		CashPrice:       cash,
		DiscountRate:    DiscountPercent(normal, discount),
		Stock:           variant.InventoryLevel,
		WarningStock:    variant.InventoryWarningLevel,
		Image:           image,
		Images:          models.JSONList[string](product.Images),
		Categories:      models.JSONList[int](positiveInts(remote.Categories)),
		Quantity:        product.Quantity,
		ArmedCost:       product.ArmedCost,
		ArmedQuantity:   int(parseFloat(fields[fieldArmedQuantity])),
		Weight:          floatOr(variant.Weight, product.Weight),
		Height:          floatOr(variant.Height, product.Height),
		Depth:           floatOr(variant.Depth, product.Depth),
		Width:           floatOr(variant.Width, product.Width),
		Type:            product.Type,
		Options:         models.JSONList[models.ProductOption](options),
		RelatedProducts: models.JSONList[int](positiveInts(remote.RelatedProducts)),
		OptionLabel:     optionLabel,
		Keywords:        optionalString(remote.SearchKeywords),
		IsVisible:       product.IsVisible && !variant.PurchasingDisabled,
	}
}

// =============================================================================
// HELPER METHODS
// =============================================================================

func mapOptions(options []bigcommerce.Option) []models.ProductOption {
	mapped := make([]models.ProductOption, 0, len(options))
	for _, option := range options {
		values := make([]models.OptionValue, 0, len(option.OptionValues))
		for _, value := range option.OptionValues {
			values = append(values, models.OptionValue{ID: value.ID, Label: value.Label})
		}
		mapped = append(mapped, models.ProductOption{ID: option.ID, DisplayName: option.DisplayName, Values: values})
	}
	return mapped
}

// sizeLabels returns the values of the product's size option, if any
func sizeLabels(options []bigcommerce.Option) []string {
	for _, option := range options {
		name := strings.ToLower(option.DisplayName)
		if name != "talla" && name != "size" && name != "tamaño" {
			continue
		}
		sizes := make([]string, 0, len(option.OptionValues))
		for _, value := range option.OptionValues {
			sizes = append(sizes, value.Label)
		}
		return sizes
	}
	return nil
}

func sortedImages(images []bigcommerce.Image) []bigcommerce.Image {
	sorted := make([]bigcommerce.Image, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsThumbnail != sorted[j].IsThumbnail {
			return sorted[i].IsThumbnail
		}
		return sorted[i].SortOrder < sorted[j].SortOrder
	})
	return sorted
}

func customFields(fields []bigcommerce.CustomField) map[string]string {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[strings.ToLower(strings.TrimSpace(field.Name))] = strings.TrimSpace(field.Value)
	}
	return out
}

func parseFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "si", "sí":
		return true
	}
	return false
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// parseIDList parses "1, 2,3" into positive ids, skipping junk
func parseIDList(value string) []int {
	var ids []int
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// positiveInts drops BigCommerce placeholders such as -1 in related_products
func positiveInts(values []int) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func floatOr(value *float64, fallback float64) float64 {
	if value != nil && *value > 0 {
		return *value
	}
	return fallback
}

func effectivePrice(normal float64, discount *float64) float64 {
	if discount != nil && *discount > 0 {
		return *discount
	}
	return normal
}
