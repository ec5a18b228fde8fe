package models

import "time"

// Brand mirrors a BigCommerce brand. The id is assigned remotely.
type Brand struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for Brand
func (Brand) TableName() string {
	return "brands"
}
