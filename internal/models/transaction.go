package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Every transaction is exactly one of the two.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Categories used by the linked-transaction protocol.
const (
	CategoryInventoryPurchase   = "Inventory Purchase"
	CategoryInventoryAdjustment = "Inventory Adjustment"
	CategorySalesRevenue        = "Sales Revenue"
	CategoryEquipmentSupplies   = "Equipment & Supplies"
	CategoryOtherIncome         = "Other Income"
)

// Transaction is a single income or expense record. Rows are created either
// directly by the user or automatically by inventory/asset operations.
// The schema carries no created_at/updated_at audit trail.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Date            time.Time       `gorm:"index;not null" json:"date"`
	Description     string          `gorm:"size:200;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category        string          `gorm:"size:50;index;not null" json:"category"`
	SubCategory     string          `gorm:"size:50" json:"sub_category"`
	TransactionType string          `gorm:"size:10;index;not null" json:"transaction_type"`
	AccountName     string          `gorm:"size:100;not null" json:"account_name"`
	Vendor          string          `gorm:"size:100" json:"vendor"`
	InvoiceNumber   string          `gorm:"size:50" json:"invoice_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

// IsIncome reports whether the transaction adds to revenue.
func (t *Transaction) IsIncome() bool {
	return t.TransactionType == TypeIncome
}
