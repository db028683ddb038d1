package models

import "time"

// Category types. Categories are free-text lookups, not foreign keys;
// transactions and items store the name directly.
const (
	CategoryTypeAsset       = "asset_category"
	CategoryTypeTransaction = "transaction_category"
	CategoryTypeInventory   = "inventory_category"
)

// CategoryTypes lists the valid category_type values.
var CategoryTypes = []string{CategoryTypeAsset, CategoryTypeTransaction, CategoryTypeInventory}

// Category is a reference lookup scoped by category_type. Names are unique
// case-insensitively within a type.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	CategoryType string    `gorm:"size:50;index;not null" json:"category_type"`
	Description  string    `gorm:"type:text" json:"description"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
