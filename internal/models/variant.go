package models

import "time"

// OptionValue is one selectable value of a product option
type OptionValue struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ProductOption is a product level option (size, colour, ...) with its values
type ProductOption struct {
	ID          int           `json:"id"`
	DisplayName string        `json:"display_name"`
	Values      []OptionValue `json:"values"`
}

// Variant is a sellable SKU of a Product.
//
// Images, Categories, Options and RelatedProducts are JSON arrays kept in
// text columns; see JSONList.
type Variant struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProductID int    `gorm:"not null;index:idx_variants_product" json:"product_id"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	SKU       string `gorm:"type:varchar(255);index:idx_variants_sku" json:"sku"`

	// Pricing
	NormalPrice   float64 `gorm:"type:decimal(12,2);default:0" json:"normal_price"`
	DiscountPrice float64 `gorm:"type:decimal(12,2);default:0" json:"discount_price"`
	CashPrice     float64 `gorm:"type:decimal(12,2);default:0" json:"cash_price"`
	DiscountRate  string  `gorm:"type:varchar(10);default:'0%'" json:"discount_rate"`

	Stock        int `gorm:"default:0" json:"stock"`
	WarningStock int `gorm:"default:0" json:"warning_stock"`

	Image      string           `gorm:"type:text" json:"image"`
	Images     JSONList[string] `json:"images"`
	Categories JSONList[int]    `json:"categories"`

	Quantity      int     `gorm:"default:0" json:"quantity"`
	ArmedCost     float64 `gorm:"type:decimal(12,2);default:0" json:"armed_cost"`
	ArmedQuantity int     `gorm:"default:0" json:"armed_quantity"`

	// Dimensions
	Weight float64 `gorm:"type:decimal(10,3);default:0" json:"weight"`
	Height float64 `gorm:"type:decimal(10,2);default:0" json:"height"`
	Depth  float64 `gorm:"type:decimal(10,2);default:0" json:"depth"`
	Width  float64 `gorm:"type:decimal(10,2);default:0" json:"width"`

	Type            string                  `gorm:"type:varchar(50)" json:"type"`
	Options         JSONList[ProductOption] `json:"options"`
	RelatedProducts JSONList[int]           `json:"related_products"`
	OptionLabel     *string                 `gorm:"type:varchar(255)" json:"option_label"`
	Keywords        *string                 `gorm:"type:text" json:"keywords"`
	IsVisible       bool                    `gorm:"not null;default:false" json:"is_visible"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for Variant
func (Variant) TableName() string {
	return "variants"
}

// FormattedVariant is the client facing, denormalized variant. Field names
// and presence are part of the public API.
type FormattedVariant struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	BrandID   *int   `json:"brand_id"`
	MainTitle string `json:"main_title"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	URL       string `json:"url"`

	NormalPrice   float64 `json:"normal_price"`
	DiscountPrice float64 `json:"discount_price"`
	CashPrice     float64 `json:"cash_price"`
	DiscountRate  string  `json:"discount_rate"`
	TransferPrice float64 `json:"transfer_price"`

	Stock          int `json:"stock"`
	WarningStock   int `json:"warning_stock"`
	AvailableStock int `json:"available_stock"`
	SafetyStock    int `json:"safety_stock"`

	Image  string   `json:"image"`
	Hover  *string  `json:"hover"`
	Images []string `json:"images"`

	Categories       []int           `json:"categories"`
	Quantity         int             `json:"quantity"`
	ArmedCost        float64         `json:"armed_cost"`
	ArmedQuantity    int             `json:"armed_quantity"`
	Weight           float64         `json:"weight"`
	Height           float64         `json:"height"`
	Depth            float64         `json:"depth"`
	Width            float64         `json:"width"`
	VolumetricWeight float64         `json:"volumetric_weight"`
	Type             string          `json:"type"`
	Options          []ProductOption `json:"options"`
	RelatedProducts  []int           `json:"related_products"`
	OptionLabel      *string         `json:"option_label"`
	Keywords         *string         `json:"keywords"`
	IsVisible        bool            `json:"is_visible"`
}
