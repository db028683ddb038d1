package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a business asset. Creation pairs the row with an Expense
// transaction; disposal with disposal_value > 0 pairs it with an Income
// transaction.
type Asset struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	AssetCategory string          `gorm:"size:50;index;not null" json:"asset_category"`
	AssetType     string          `gorm:"size:50;not null" json:"asset_type"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"purchase_price"`

	IsActive      bool             `gorm:"default:true;index" json:"is_active"`
	DisposalDate  *time.Time       `json:"disposal_date"`
	DisposalValue *decimal.Decimal `gorm:"type:decimal(10,2)" json:"disposal_value"`

	// Explicit link to the purchase Expense transaction.
	LinkedTransactionID *uint `gorm:"index" json:"linked_transaction_id"`
}
