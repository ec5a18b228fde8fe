package bigcommerce

import "fmt"

// Pagination is the meta.pagination block of BigCommerce v3 list responses
type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Page is one page of a paginated listing
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// TotalPages never reports fewer than one page
func (p Page[T]) TotalPages() int {
	if p.Pagination.TotalPages < 1 {
		return 1
	}
	return p.Pagination.TotalPages
}

// Check rejects a total_pages the reported total and per_page cannot support
func (p Pagination) Check() error {
	if p.TotalPages <= 1 || p.PerPage <= 0 {
		return nil
	}
	if limit := p.Total/p.PerPage + 1; p.TotalPages > limit {
		return fmt.Errorf("implausible pagination: total_pages=%d for total=%d per_page=%d", p.TotalPages, p.Total, p.PerPage)
	}
	return nil
}

type envelope[T any] struct {
	Data T `json:"data"`
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

// Brand is a BigCommerce brand
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is a node of a BigCommerce category tree
type Category struct {
	CategoryID int    `json:"category_id"`
	TreeID     int    `json:"tree_id"`
	ParentID   int    `json:"parent_id"`
	Name       string `json:"name"`
	URL        struct {
		Path string `json:"path"`
	} `json:"url"`
	SortOrder int    `json:"sort_order"`
	ImageURL  string `json:"image_url"`
	IsVisible bool   `json:"is_visible"`
}

// ChannelAssignment says a product is listed in a channel
type ChannelAssignment struct {
	ProductID int `json:"product_id"`
	ChannelID int `json:"channel_id"`
}

// Image is a product image
type Image struct {
	ID          int    `json:"id"`
	URLStandard string `json:"url_standard"`
	URLZoom     string `json:"url_zoom"`
	IsThumbnail bool   `json:"is_thumbnail"`
	SortOrder   int    `json:"sort_order"`
}

// URL returns the best available image url
func (i Image) URL() string {
	if i.URLZoom != "" {
		return i.URLZoom
	}
	return i.URLStandard
}

// CustomField is a free form name/value pair attached to a product
type CustomField struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OptionValue is a variant's selected value for one option
type OptionValue struct {
	ID                int    `json:"id"`
	Label             string `json:"label"`
	OptionID          int    `json:"option_id"`
	OptionDisplayName string `json:"option_display_name"`
}

// Variant is a product variant
type Variant struct {
	ID                    int           `json:"id"`
	ProductID             int           `json:"product_id"`
	SKU                   string        `json:"sku"`
	Price                 *float64      `json:"price"`
	SalePrice             *float64      `json:"sale_price"`
	CalculatedPrice       float64       `json:"calculated_price"`
	Weight                *float64      `json:"weight"`
	Width                 *float64      `json:"width"`
	Height                *float64      `json:"height"`
	Depth                 *float64      `json:"depth"`
	InventoryLevel        int           `json:"inventory_level"`
	InventoryWarningLevel int           `json:"inventory_warning_level"`
	ImageURL              string        `json:"image_url"`
	PurchasingDisabled    bool          `json:"purchasing_disabled"`
	OptionValues          []OptionValue `json:"option_values"`
}

// Product is a full BigCommerce product with variants, images and custom fields
type Product struct {
	ID                    int      `json:"id"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	SKU                   string   `json:"sku"`
	Description           string   `json:"description"`
	Weight                float64  `json:"weight"`
	Width                 float64  `json:"width"`
	Depth                 float64  `json:"depth"`
	Height                float64  `json:"height"`
	Price                 float64  `json:"price"`
	RetailPrice           float64  `json:"retail_price"`
	SalePrice             float64  `json:"sale_price"`
	CalculatedPrice       float64  `json:"calculated_price"`
	Categories            []int    `json:"categories"`
	BrandID               int      `json:"brand_id"`
	InventoryLevel        int      `json:"inventory_level"`
	InventoryWarningLevel int      `json:"inventory_warning_level"`
	IsFreeShipping        bool     `json:"is_free_shipping"`
	IsVisible             bool     `json:"is_visible"`
	IsFeatured            bool     `json:"is_featured"`
	RelatedProducts       []int    `json:"related_products"`
	SortOrder             int      `json:"sort_order"`
	PageTitle             string   `json:"page_title"`
	MetaKeywords          []string `json:"meta_keywords"`
	MetaDescription       string   `json:"meta_description"`
	SearchKeywords        string   `json:"search_keywords"`
	OrderQuantityMinimum  int      `json:"order_quantity_minimum"`
	PreorderMessage       string   `json:"preorder_message"`
	Availability          string   `json:"availability"`
	ReviewsCount          int      `json:"reviews_count"`
	CustomURL             struct {
		URL string `json:"url"`
	} `json:"custom_url"`
	Images       []Image       `json:"images"`
	Variants     []Variant     `json:"variants"`
	CustomFields []CustomField `json:"custom_fields"`
}

// Option is a product level option with all of its values
type Option struct {
	ID           int    `json:"id"`
	DisplayName  string `json:"display_name"`
	Type         string `json:"type"`
	OptionValues []struct {
		ID        int    `json:"id"`
		Label     string `json:"label"`
		SortOrder int    `json:"sort_order"`
		IsDefault bool   `json:"is_default"`
	} `json:"option_values"`
}
