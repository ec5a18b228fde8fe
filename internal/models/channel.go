package models

import "time"

// Channel is a sales destination a product can be assigned to
type Channel struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`

	Products []ChannelProduct `gorm:"foreignKey:ChannelID" json:"products,omitempty"`
}

// TableName specifies the table name for Channel
func (Channel) TableName() string {
	return "channels"
}

// ChannelProduct records that a product is visible in a sales channel
type ChannelProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ChannelID int  `gorm:"not null;uniqueIndex:idx_channel_products_pair" json:"channel_id"`
	ProductID int  `gorm:"not null;uniqueIndex:idx_channel_products_pair;index:idx_channel_products_product" json:"product_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for ChannelProduct
func (ChannelProduct) TableName() string {
	return "channel_products"
}
