package models

import "time"

// RootCategoryParentID is the parent id BigCommerce uses for top level categories
const RootCategoryParentID = 0

// Category is a node of the remote category tree
type Category struct {
	CategoryID int     `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"category_id"`
	Title      string  `gorm:"type:varchar(255);not null" json:"title"`
	URL        string  `gorm:"type:varchar(500)" json:"url"`
	ParentID   int     `gorm:"not null;default:0;index:idx_categories_parent" json:"parent_id"`
	Order      int     `gorm:"column:sort_order;default:0" json:"order"`
	Image      *string `gorm:"type:text" json:"image"`
	IsVisible  bool    `gorm:"not null;default:false" json:"is_visible"`
	TreeID     *int    `json:"tree_id"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// IsRoot reports whether the category hangs directly off the tree root
func (c *Category) IsRoot() bool {
	return c.ParentID == RootCategoryParentID
}
