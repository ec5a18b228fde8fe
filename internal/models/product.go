package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is the channel-independent product record mirrored from BigCommerce
type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	PageTitle   string  `gorm:"type:varchar(255)" json:"page_title"`
	Description string  `gorm:"type:text" json:"description"`
	BrandID     *int    `gorm:"index:idx_products_brand" json:"brand_id"`
	Image       string  `gorm:"type:text" json:"image"`
	Hover       *string `gorm:"type:text" json:"hover"`

	Images datatypes.JSONSlice[string] `json:"images"`

	// Pricing
	NormalPrice   float64  `gorm:"type:decimal(12,2);default:0" json:"normal_price"`
	DiscountPrice *float64 `gorm:"type:decimal(12,2)" json:"discount_price"`
	CashPrice     float64  `gorm:"type:decimal(12,2);default:0" json:"cash_price"`

	// Inventory
	Stock        int     `gorm:"default:0" json:"stock"`
	WarningStock int     `gorm:"default:0" json:"warning_stock"`
	Quantity     int     `gorm:"default:0" json:"quantity"`
	ArmedCost    float64 `gorm:"type:decimal(12,2);default:0" json:"armed_cost"`

	// Dimensions
	Weight float64 `gorm:"type:decimal(10,3);default:0" json:"weight"`
	Width  float64 `gorm:"type:decimal(10,2);default:0" json:"width"`
	Height float64 `gorm:"type:decimal(10,2);default:0" json:"height"`
	Depth  float64 `gorm:"type:decimal(10,2);default:0" json:"depth"`

	SortOrder int `gorm:"default:0" json:"sort_order"`

	// Flags
	Sameday         bool `gorm:"default:false" json:"sameday"`
	FreeShipping    bool `gorm:"default:false" json:"free_shipping"`
	Despacho24Horas bool `gorm:"column:despacho24horas;default:false" json:"despacho24horas"`
	Featured        bool `gorm:"default:false" json:"featured"`
	PickupInStore   bool `gorm:"default:false" json:"pickup_in_store"`
	IsVisible       bool `gorm:"not null;default:false" json:"is_visible"`
	Turbo           bool `gorm:"default:false" json:"turbo"`

	// SEO
	MetaDescription string                      `gorm:"type:text" json:"meta_description"`
	MetaKeywords    datatypes.JSONSlice[string] `json:"meta_keywords"`

	Sizes   datatypes.JSONSlice[string] `json:"sizes"`
	URL     string                      `gorm:"type:varchar(500);uniqueIndex:idx_products_url" json:"url"`
	Type    string                      `gorm:"type:varchar(50)" json:"type"`
	Reserve *string                     `gorm:"type:varchar(255)" json:"reserve"`
	Reviews *int                        `json:"reviews"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`

	// Relationships
	Brand      *Brand            `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Variants   []Variant         `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Categories []CategoryProduct `gorm:"foreignKey:ProductID" json:"categories,omitempty"`
	Channels   []ChannelProduct  `gorm:"foreignKey:ProductID" json:"channels,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// CategoryProduct assigns a product to a category
type CategoryProduct struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProductID  int  `gorm:"not null;uniqueIndex:idx_category_products_pair" json:"product_id"`
	CategoryID int  `gorm:"not null;uniqueIndex:idx_category_products_pair;index:idx_category_products_category" json:"category_id"`
}

// TableName specifies the table name for CategoryProduct
func (CategoryProduct) TableName() string {
	return "category_products"
}

// FiltersProduct is the secondary "filter" categorization of a product
type FiltersProduct struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProductID  int  `gorm:"not null;uniqueIndex:idx_filters_products_pair" json:"product_id"`
	CategoryID int  `gorm:"not null;uniqueIndex:idx_filters_products_pair" json:"category_id"`
}

// TableName specifies the table name for FiltersProduct
func (FiltersProduct) TableName() string {
	return "filters_products"
}
