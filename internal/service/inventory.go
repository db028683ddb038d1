package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/juanbracho/girasoulresale/internal/config"
	"github.com/juanbracho/girasoulresale/internal/logging"
	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultEditWindowDays = 30

// InventoryService owns inventory items and the linked-transaction protocol
// that keeps each item's financial counterpart consistent. Every multi-write
// operation runs inside one database transaction; partial application is
// never visible.
type InventoryService struct {
	db             *gorm.DB
	accountName    string
	taxRate        decimal.Decimal
	editWindowDays int
}

func NewInventoryService(db *gorm.DB, cfg config.AppConfig) *InventoryService {
	days := cfg.EditWindowDays
	if days <= 0 {
		days = defaultEditWindowDays
	}
	return &InventoryService{
		db:             db,
		accountName:    cfg.AccountName,
		taxRate:        decimal.NewFromFloat(cfg.TaxRate),
		editWindowDays: days,
	}
}

// InventoryInput is the create/update payload. All business fields are
// mandatory; currency values arrive as strings and are parsed during
// validation.
type InventoryInput struct {
	SKU           string `json:"sku"` // create only; generated when empty
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	CostOfItem    string `json:"cost_of_item"`
	SellingPrice  string `json:"selling_price"`
	ListingStatus string `json:"listing_status"`
	Location      string `json:"location"`
	Size          string `json:"size"`
	Condition     string `json:"condition"`
	Brand         string `json:"brand"`
	DropField     string `json:"drop_field"`

	cost  decimal.Decimal
	price decimal.Decimal
}

// Validate checks all required fields, currency precision, and the
// price-above-cost rule. Pure; no store access.
func (in *InventoryInput) Validate() error {
	if err := util.RequireString(in.Name, "name", 2, 100); err != nil {
		return validationErr("name", err.Error())
	}
	if err := util.RequireString(in.Category, "category", 2, 50); err != nil {
		return validationErr("category", err.Error())
	}
	if err := util.RequireString(in.Brand, "brand", 1, 100); err != nil {
		return validationErr("brand", err.Error())
	}
	if err := util.RequireString(in.Size, "size", 1, 20); err != nil {
		return validationErr("size", err.Error())
	}
	if err := util.RequireString(in.Condition, "condition", 1, 20); err != nil {
		return validationErr("condition", err.Error())
	}
	if err := util.RequireString(in.Location, "location", 1, 100); err != nil {
		return validationErr("location", err.Error())
	}
	if err := util.RequireString(in.Description, "description", 3, 500); err != nil {
		return validationErr("description", err.Error())
	}
	if in.SKU != "" {
		if err := util.ValidateSKU(in.SKU); err != nil {
			return validationErr("sku", err.Error())
		}
	}

	cost, err := util.ParseCurrency(in.CostOfItem, "cost_of_item", false)
	if err != nil {
		return validationErr("cost_of_item", err.Error())
	}
	in.cost = cost

	price, err := util.ParseCurrency(in.SellingPrice, "selling_price", false)
	if err != nil {
		return validationErr("selling_price", err.Error())
	}
	in.price = price

	if price.LessThanOrEqual(cost) {
		return validationErr("selling_price", "selling price must be higher than cost")
	}

	switch in.ListingStatus {
	case "", models.StatusInventory, models.StatusListed, models.StatusKept:
	case models.StatusSold:
		return validationErr("listing_status", "sold status is set through the sell operation")
	default:
		return validationErr("listing_status", "must be one of inventory, listed, kept")
	}

	return nil
}

// withTax derives the price-with-tax column from the selling price.
func (s *InventoryService) withTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Add(s.taxRate)).Round(2)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func purchaseDescription(name string) string {
	return fmt.Sprintf("Inventory Purchase - %s", name)
}

// CreateItemResult pairs the stored item with its purchase transaction.
type CreateItemResult struct {
	Item                *models.InventoryItem `json:"item"`
	LinkedTransactionID uint                  `json:"linked_transaction_id"`
}

// CreateItem stores a new inventory item and its purchase Expense
// transaction in one unit of work. If the SKU is not supplied, one is
// generated with a uniqueness re-check loop; the unique index on sku is the
// final arbiter under races.
func (s *InventoryService) CreateItem(in InventoryInput) (*CreateItemResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		item models.InventoryItem
		txn  models.Transaction
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sku := strings.TrimSpace(in.SKU)
		if sku == "" {
			generated, err := generateSKU(tx, time.Now())
			if err != nil {
				return err
			}
			sku = generated
		}

		status := in.ListingStatus
		if status == "" {
			status = models.StatusInventory
		}

		item = models.InventoryItem{
			SKU:           sku,
			Name:          in.Name,
			Description:   in.Description,
			Category:      in.Category,
			CostOfItem:    in.cost,
			SellingPrice:  in.price,
			WithTaxPrice:  s.withTax(in.price),
			ListingStatus: status,
			Location:      in.Location,
			Size:          in.Size,
			Condition:     in.Condition,
			Brand:         in.Brand,
			DropField:     in.DropField,
		}
		if err := tx.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSKU
			}
			return err
		}

		txn = models.Transaction{
			Date:            today(),
			Description:     purchaseDescription(item.Name),
			Amount:          item.CostOfItem,
			Category:        models.CategoryInventoryPurchase,
			TransactionType: models.TypeExpense,
			AccountName:     s.accountName,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return &LinkedWriteError{Op: "create inventory item", Err: err}
		}

		item.LinkedTransactionID = &txn.ID
		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
			Update("linked_transaction_id", txn.ID).Error; err != nil {
			return &LinkedWriteError{Op: "create inventory item", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateItemResult{Item: &item, LinkedTransactionID: txn.ID}, nil
}

// canEdit enforces the age-based edit lock: items are editable only within
// the configured window after creation.
func (s *InventoryService) canEdit(item *models.InventoryItem, now time.Time) bool {
	return now.Sub(item.CreatedAt) <= time.Duration(s.editWindowDays)*24*time.Hour
}

// locateLinkedExpense finds the purchase transaction for an item: the
// explicit link first, then the legacy description/amount match for rows
// predating the link column.
func locateLinkedExpense(tx *gorm.DB, item *models.InventoryItem, oldName string, oldCost decimal.Decimal) (*models.Transaction, error) {
	if item.LinkedTransactionID != nil {
		var txn models.Transaction
		err := tx.First(&txn, *item.LinkedTransactionID).Error
		if err == nil && txn.TransactionType == models.TypeExpense {
			return &txn, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// link points nowhere; fall through to the matcher
	}

	var txn models.Transaction
	err := tx.Where("description LIKE ?", "%"+oldName+"%").
		Where("description LIKE ?", "%"+models.CategoryInventoryPurchase+"%").
		Where("transaction_type = ?", models.TypeExpense).
		Where("amount = ?", oldCost).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateItemResult reports whether the linked transaction was touched.
type UpdateItemResult struct {
	Item        *models.InventoryItem `json:"item"`
	CostUpdated bool                  `json:"cost_updated"`
}

// UpdateItem re-validates and overwrites an item's business fields. When the
// cost changed, the linked purchase transaction is updated in place; if it
// cannot be found, an explicit adjustment transaction records the delta
// rather than silently losing it. One unit of work.
func (s *InventoryService) UpdateItem(sku string, in InventoryInput) (*UpdateItemResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		item        models.InventoryItem
		costChanged bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sku = ?", sku).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !s.canEdit(&item, time.Now().UTC()) {
			return ErrItemLocked
		}

		oldName := item.Name
		oldCost := item.CostOfItem
		costChanged = !oldCost.Equal(in.cost)

		item.Name = in.Name
		item.Description = in.Description
		item.Category = in.Category
		item.CostOfItem = in.cost
		item.SellingPrice = in.price
		item.WithTaxPrice = s.withTax(in.price)
		item.Location = in.Location
		item.Size = in.Size
		item.Condition = in.Condition
		item.Brand = in.Brand
		item.DropField = in.DropField
		// the sell operation owns the terminal status
		if in.ListingStatus != "" && !item.IsSold() {
			item.ListingStatus = in.ListingStatus
		}

		if costChanged {
			linked, err := locateLinkedExpense(tx, &item, oldName, oldCost)
			if err != nil {
				return err
			}
			if linked != nil {
				linked.Amount = in.cost
				linked.Description = purchaseDescription(item.Name)
				if err := tx.Save(linked).Error; err != nil {
					return &LinkedWriteError{Op: "update inventory item", Err: err}
				}
				if item.LinkedTransactionID == nil {
					item.LinkedTransactionID = &linked.ID
				}
			} else {
				delta := in.cost.Sub(oldCost)
				adjType := models.TypeExpense
				if delta.IsNegative() {
					adjType = models.TypeIncome
				}
				adj := models.Transaction{
					Date:            today(),
					Description:     fmt.Sprintf("Inventory Cost Adjustment - %s", item.Name),
					Amount:          delta.Abs(),
					Category:        models.CategoryInventoryAdjustment,
					TransactionType: adjType,
					AccountName:     s.accountName,
				}
				if err := tx.Create(&adj).Error; err != nil {
					return &LinkedWriteError{Op: "update inventory item", Err: err}
				}
				logging.LogError("inventory", "UpdateItem",
					fmt.Errorf("no linked purchase transaction for %s; recorded adjustment", item.SKU),
					logrus.Fields{"sku": item.SKU, "delta": delta.String()})
			}
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &UpdateItemResult{Item: &item, CostUpdated: costChanged}, nil
}

// SellInput is the sell payload. SaleDate defaults to today, Platform to
// "Other". A sold price of zero is the explicit zero-sale path.
type SellInput struct {
	SoldPrice string `json:"sold_price"`
	SaleDate  string `json:"sale_date"`
	Platform  string `json:"platform"`
	Notes     string `json:"notes"`
}

// SellResult reports whether a sale transaction was written.
type SellResult struct {
	Item               *models.InventoryItem `json:"item"`
	TransactionCreated bool                  `json:"transaction_created"`
	TransactionID      uint                  `json:"transaction_id,omitempty"`
	ZeroSale           bool                  `json:"zero_sale,omitempty"`
}

// SellItem flips an item to sold and, for sold_price > 0, writes the sale
// Income transaction in the same unit of work. The status flip is a
// conditional update so concurrent sells serialize: exactly one wins, the
// other observes ErrAlreadySold.
func (s *InventoryService) SellItem(sku string, in SellInput) (*SellResult, error) {
	price, err := util.ParseCurrency(in.SoldPrice, "sold_price", true)
	if err != nil {
		return nil, validationErr("sold_price", err.Error())
	}
	soldDate := today()
	if in.SaleDate != "" {
		soldDate, err = util.ParseDate(in.SaleDate, "sale_date")
		if err != nil {
			return nil, validationErr("sale_date", err.Error())
		}
	}
	platform := in.Platform
	if platform == "" {
		platform = "Other"
	}

	result := &SellResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("sku = ? AND listing_status <> ?", sku, models.StatusSold).
			Updates(map[string]interface{}{
				"listing_status": models.StatusSold,
				"sold_price":     price,
				"sold_date":      soldDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.InventoryItem{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadySold
		}

		var item models.InventoryItem
		if err := tx.Where("sku = ?", sku).First(&item).Error; err != nil {
			return err
		}
		result.Item = &item

		if !price.IsPositive() {
			result.ZeroSale = true
			return nil
		}

		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("Platform: %s", platform)
		}
		txn := models.Transaction{
			Date:            soldDate,
			Description:     fmt.Sprintf("Sale - %s (SKU: %s)", item.Name, item.SKU),
			Amount:          price,
			Category:        models.CategorySalesRevenue,
			SubCategory:     item.Category,
			TransactionType: models.TypeIncome,
			AccountName:     s.accountName,
			Notes:           notes,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return &LinkedWriteError{Op: "sell inventory item", Err: err}
		}
		result.TransactionCreated = true
		result.TransactionID = txn.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteItem hard-deletes an item and cascade-deletes its linked purchase
// Expense transaction. Sale Income transactions are left on the books.
// Without an explicit link no transaction is removed; the matcher is too
// weak to risk deleting an unrelated row.
func (s *InventoryService) DeleteItem(sku string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Where("sku = ?", sku).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if item.LinkedTransactionID != nil {
			if err := tx.Delete(&models.Transaction{}, *item.LinkedTransactionID).Error; err != nil {
				return &LinkedWriteError{Op: "delete inventory item", Err: err}
			}
		}
		return tx.Delete(&item).Error
	})
}

// GetBySKU returns a single item.
func (s *InventoryService) GetBySKU(sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CanEdit reports whether the edit lock permits changes to the item.
func (s *InventoryService) CanEdit(sku string) (bool, error) {
	item, err := s.GetBySKU(sku)
	if err != nil {
		return false, err
	}
	return s.canEdit(item, time.Now().UTC()), nil
}

// InventoryFilters narrows List results. Zero values mean "no filter".
type InventoryFilters struct {
	Status    string
	Category  string
	Condition string
	Brand     string
	Size      string
	Search    string
}

// List returns items matching the filters, newest first.
func (s *InventoryService) List(f InventoryFilters) ([]models.InventoryItem, error) {
	q := s.db.Model(&models.InventoryItem{})
	if f.Status != "" {
		q = q.Where("listing_status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR sku LIKE ? OR brand LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var items []models.InventoryItem
	if err := q.Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// InventorySummary aggregates the store for the dashboard.
type InventorySummary struct {
	TotalItems      int             `json:"total_items"`
	AvailableItems  int             `json:"available_items"`
	SoldItems       int             `json:"sold_items"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
	SoldRevenue     decimal.Decimal `json:"sold_revenue"`
	SoldProfit      decimal.Decimal `json:"sold_profit"`
}

// Summary computes counts, valuation of non-sold stock, and realized
// revenue/profit over sold items.
func (s *InventoryService) Summary() (*InventorySummary, error) {
	items, err := s.List(InventoryFilters{})
	if err != nil {
		return nil, err
	}

	sum := &InventorySummary{
		TotalCost:   decimal.Zero,
		TotalValue:  decimal.Zero,
		SoldRevenue: decimal.Zero,
		SoldProfit:  decimal.Zero,
	}
	soldCost := decimal.Zero
	for i := range items {
		it := &items[i]
		sum.TotalItems++
		if it.IsSold() {
			sum.SoldItems++
			if it.SoldPrice != nil {
				sum.SoldRevenue = sum.SoldRevenue.Add(*it.SoldPrice)
			}
			soldCost = soldCost.Add(it.CostOfItem)
		} else {
			sum.AvailableItems++
			sum.TotalCost = sum.TotalCost.Add(it.CostOfItem)
			sum.TotalValue = sum.TotalValue.Add(it.SellingPrice)
		}
	}
	sum.PotentialProfit = sum.TotalValue.Sub(sum.TotalCost)
	sum.SoldProfit = sum.SoldRevenue.Sub(soldCost)
	return sum, nil
}

// InventoryCategoryBreakdown is the non-sold valuation of one category.
type InventoryCategoryBreakdown struct {
	Category        string          `json:"category"`
	Count           int             `json:"count"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// CategoryBreakdowns groups non-sold inventory by category.
func (s *InventoryService) CategoryBreakdowns() ([]InventoryCategoryBreakdown, error) {
	items, err := s.List(InventoryFilters{})
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]*InventoryCategoryBreakdown)
	for i := range items {
		it := &items[i]
		if it.IsSold() {
			continue
		}
		cb, ok := byCat[it.Category]
		if !ok {
			cb = &InventoryCategoryBreakdown{
				Category:   it.Category,
				TotalCost:  decimal.Zero,
				TotalValue: decimal.Zero,
			}
			byCat[it.Category] = cb
		}
		cb.Count++
		cb.TotalCost = cb.TotalCost.Add(it.CostOfItem)
		cb.TotalValue = cb.TotalValue.Add(it.SellingPrice)
	}

	out := make([]InventoryCategoryBreakdown, 0, len(byCat))
	for _, cb := range byCat {
		cb.PotentialProfit = cb.TotalValue.Sub(cb.TotalCost)
		out = append(out, *cb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// Brands returns the distinct non-empty brands, sorted.
func (s *InventoryService) Brands() ([]string, error) {
	var brands []string
	err := s.db.Model(&models.InventoryItem{}).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}
