package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing statuses for inventory items. "sold" is terminal.
const (
	StatusInventory = "inventory"
	StatusListed    = "listed"
	StatusSold      = "sold"
	StatusKept      = "kept"
)

// ListingStatuses is the full set, in display order.
var ListingStatuses = []string{StatusKept, StatusInventory, StatusListed, StatusSold}

// InventoryItem is a single resale item. Each item owns at most one purchase
// Expense transaction, linked through LinkedTransactionID, and once sold for
// more than $0 exactly one sale Income transaction.
type InventoryItem struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	SKU          string           `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Name         string           `gorm:"size:100;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Category     string           `gorm:"size:50;index;not null" json:"category"`
	CostOfItem   decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"cost_of_item"`
	SellingPrice decimal.Decimal  `gorm:"type:decimal(10,2)" json:"selling_price"`
	SoldPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"sold_price"`
	WithTaxPrice decimal.Decimal  `gorm:"column:w_tax_price;type:decimal(10,2)" json:"w_tax_price"`

	ListingStatus string     `gorm:"size:20;index;default:inventory" json:"listing_status"`
	SoldDate      *time.Time `json:"sold_date"`

	Location  string `gorm:"size:100" json:"location"`
	Size      string `gorm:"size:20" json:"size"`
	Condition string `gorm:"size:20" json:"condition"`
	Brand     string `gorm:"size:100" json:"brand"`
	DropField string `gorm:"column:drop_field;type:text" json:"drop_field"`

	// Explicit link to the purchase Expense transaction, set when the item
	// is created. Nil only for rows predating the link column.
	LinkedTransactionID *uint `gorm:"index" json:"linked_transaction_id"`

	// CreatedAt drives the edit-window lock.
	CreatedAt time.Time `json:"created_at"`
}

// IsSold reports whether the item has reached its terminal sold state.
func (i *InventoryItem) IsSold() bool {
	return i.ListingStatus == StatusSold
}

// MarginPercentage is the listed profit margin relative to selling price.
func (i *InventoryItem) MarginPercentage() decimal.Decimal {
	if i.SellingPrice.IsZero() {
		return decimal.Zero
	}
	return i.SellingPrice.Sub(i.CostOfItem).Div(i.SellingPrice).Mul(decimal.NewFromInt(100))
}

// ProfitAmount is the profit if sold at the listed selling price.
func (i *InventoryItem) ProfitAmount() decimal.Decimal {
	return i.SellingPrice.Sub(i.CostOfItem)
}
