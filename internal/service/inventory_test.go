package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/juanbracho/girasoulresale/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countTransactions(t *testing.T, svc *InventoryService) int64 {
	t.Helper()
	var count int64
	require.NoError(t, svc.db.Model(&models.Transaction{}).Count(&count).Error)
	return count
}

func TestCreateItem_CreatesLinkedExpense(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)
	require.NotNil(t, res.Item)
	assert.NotEmpty(t, res.Item.SKU)
	require.NotNil(t, res.Item.LinkedTransactionID)

	var txns []models.Transaction
	require.NoError(t, db.Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TypeExpense, txns[0].TransactionType)
	assert.Equal(t, models.CategoryInventoryPurchase, txns[0].Category)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("10.00")))
	assert.Contains(t, txns[0].Description, "Vintage Denim Jacket")
	assert.Equal(t, txns[0].ID, *res.Item.LinkedTransactionID)
}

func TestCreateItem_WithTaxPrice(t *testing.T) {
	svc, _ := newInventoryService(t)

	in := validItemInput()
	in.SellingPrice = "100.00"
	res, err := svc.CreateItem(in)
	require.NoError(t, err)
	assert.True(t, res.Item.WithTaxPrice.Equal(decimal.RequireFromString("108.30")),
		"w_tax_price = %s", res.Item.WithTaxPrice)
}

func TestCreateItem_ExplicitDuplicateSKU(t *testing.T) {
	svc, _ := newInventoryService(t)

	in := validItemInput()
	in.SKU = "GS-TEST-0001"
	_, err := svc.CreateItem(in)
	require.NoError(t, err)

	in2 := validItemInput()
	in2.SKU = "GS-TEST-0001"
	_, err = svc.CreateItem(in2)
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestCreateItem_PriceMustExceedCost(t *testing.T) {
	svc, _ := newInventoryService(t)

	in := validItemInput()
	in.CostOfItem = "45.00"
	in.SellingPrice = "45.00"
	_, err := svc.CreateItem(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err), "want validation error, got %v", err)
}

func TestCreateItem_RollsBackWhenLinkedWriteFails(t *testing.T) {
	svc, db := newInventoryService(t)

	// sabotage the paired write
	require.NoError(t, db.Migrator().DropTable(&models.Transaction{}))

	_, err := svc.CreateItem(validItemInput())
	require.Error(t, err)
	var lwe *LinkedWriteError
	assert.True(t, errors.As(err, &lwe), "want LinkedWriteError, got %v", err)

	var items int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&items).Error)
	assert.Zero(t, items, "item row must roll back with the failed transaction write")
}

func TestUpdateItem_CostChangeUpdatesLinkedTransaction(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	in := validItemInput()
	in.CostOfItem = "12.00"
	upd, err := svc.UpdateItem(res.Item.SKU, in)
	require.NoError(t, err)
	assert.True(t, upd.CostUpdated)

	assert.EqualValues(t, 1, countTransactions(t, svc), "cost edit must not add a second transaction")

	var txn models.Transaction
	require.NoError(t, db.First(&txn, *res.Item.LinkedTransactionID).Error)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("12.00")))
}

func TestUpdateItem_MatcherFallbackHealsLink(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)
	txnID := *res.Item.LinkedTransactionID

	// simulate a legacy row without the explicit link
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("id = ?", res.Item.ID).
		Update("linked_transaction_id", nil).Error)

	in := validItemInput()
	in.CostOfItem = "15.00"
	upd, err := svc.UpdateItem(res.Item.SKU, in)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countTransactions(t, svc))
	var txn models.Transaction
	require.NoError(t, db.First(&txn, txnID).Error)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("15.00")))
	require.NotNil(t, upd.Item.LinkedTransactionID)
	assert.Equal(t, txnID, *upd.Item.LinkedTransactionID)
}

func TestUpdateItem_AdjustmentWhenNoLinkedTransaction(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	// break both the link and the matcher
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("id = ?", res.Item.ID).
		Update("linked_transaction_id", nil).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Where("id = ?", *res.Item.LinkedTransactionID).
		Update("description", "unrelated").Error)

	in := validItemInput()
	in.CostOfItem = "16.00"
	_, err = svc.UpdateItem(res.Item.SKU, in)
	require.NoError(t, err)

	var adj models.Transaction
	require.NoError(t, db.Where("category = ?", models.CategoryInventoryAdjustment).First(&adj).Error)
	assert.Equal(t, models.TypeExpense, adj.TransactionType)
	assert.True(t, adj.Amount.Equal(decimal.RequireFromString("6.00")), "delta amount = %s", adj.Amount)
}

func TestUpdateItem_EditWindowLock(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	old := time.Now().UTC().AddDate(0, 0, -31)
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("id = ?", res.Item.ID).
		Update("created_at", old).Error)

	_, err = svc.UpdateItem(res.Item.SKU, validItemInput())
	assert.ErrorIs(t, err, ErrItemLocked)
}

func TestSellItem_CreatesIncomeTransaction(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	sold, err := svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "40.00", Platform: "Poshmark"})
	require.NoError(t, err)
	assert.True(t, sold.TransactionCreated)
	assert.Equal(t, models.StatusSold, sold.Item.ListingStatus)
	require.NotNil(t, sold.Item.SoldPrice)
	assert.True(t, sold.Item.SoldPrice.Equal(decimal.RequireFromString("40.00")))

	var txn models.Transaction
	require.NoError(t, db.First(&txn, sold.TransactionID).Error)
	assert.Equal(t, models.TypeIncome, txn.TransactionType)
	assert.Equal(t, models.CategorySalesRevenue, txn.Category)
	assert.Equal(t, "Outerwear", txn.SubCategory)
	assert.Contains(t, txn.Description, res.Item.SKU)
	assert.Contains(t, txn.Notes, "Poshmark")
}

func TestSellItem_ZeroSaleWritesNoTransaction(t *testing.T) {
	svc, _ := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)
	before := countTransactions(t, svc)

	sold, err := svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "0"})
	require.NoError(t, err)
	assert.False(t, sold.TransactionCreated)
	assert.True(t, sold.ZeroSale)
	assert.Equal(t, models.StatusSold, sold.Item.ListingStatus)
	assert.Equal(t, before, countTransactions(t, svc))
}

func TestSellItem_AlreadySold(t *testing.T) {
	svc, _ := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	_, err = svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "40.00"})
	require.NoError(t, err)

	_, err = svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "42.00"})
	assert.ErrorIs(t, err, ErrAlreadySold)
}

func TestSellItem_RollsBackWhenLinkedWriteFails(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	// sabotage the paired write
	require.NoError(t, db.Migrator().DropTable(&models.Transaction{}))

	_, err = svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "40.00"})
	require.Error(t, err)
	var lwe *LinkedWriteError
	assert.True(t, errors.As(err, &lwe), "want LinkedWriteError, got %v", err)

	item, err := svc.GetBySKU(res.Item.SKU)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInventory, item.ListingStatus, "status flip must roll back")
	assert.Nil(t, item.SoldPrice)
	assert.Nil(t, item.SoldDate)
}

func TestSellItem_NotFound(t *testing.T) {
	svc, _ := newInventoryService(t)

	_, err := svc.SellItem("GS-MISSING-0000", SellInput{SoldPrice: "10.00"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSellItem_ConcurrentSellsOneWinner(t *testing.T) {
	svc, _ := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)
	before := countTransactions(t, svc)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "40.00"})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrAlreadySold):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, before+1, countTransactions(t, svc), "exactly one sale transaction")
}

func TestDeleteItem_CascadesLinkedPurchase(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)
	txnID := *res.Item.LinkedTransactionID

	require.NoError(t, svc.DeleteItem(res.Item.SKU))

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("id = ?", txnID).Count(&count).Error)
	assert.Zero(t, count, "linked purchase transaction must be deleted with the item")

	_, err = svc.GetBySKU(res.Item.SKU)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem_KeepsSaleTransaction(t *testing.T) {
	svc, db := newInventoryService(t)

	res, err := svc.CreateItem(validItemInput())
	require.NoError(t, err)

	sold, err := svc.SellItem(res.Item.SKU, SellInput{SoldPrice: "40.00"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(res.Item.SKU))

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("id = ?", sold.TransactionID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "sale income stays on the books")
}

func TestList_Filters(t *testing.T) {
	svc, _ := newInventoryService(t)

	a := validItemInput()
	a.SKU = "GS-A-0001"
	_, err := svc.CreateItem(a)
	require.NoError(t, err)

	b := validItemInput()
	b.SKU = "GS-B-0001"
	b.Name = "Silk Scarf"
	b.Category = "Accessories"
	b.Brand = "Hermes"
	_, err = svc.CreateItem(b)
	require.NoError(t, err)

	items, err := svc.List(InventoryFilters{Category: "Accessories"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Silk Scarf", items[0].Name)

	items, err = svc.List(InventoryFilters{Search: "denim"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "GS-A-0001", items[0].SKU)
}

func TestSummary(t *testing.T) {
	svc, _ := newInventoryService(t)

	a := validItemInput() // cost 10, price 45
	_, err := svc.CreateItem(a)
	require.NoError(t, err)

	b := validItemInput()
	b.SKU = "GS-SOLD-0001"
	b.CostOfItem = "20.00"
	b.SellingPrice = "50.00"
	_, err = svc.CreateItem(b)
	require.NoError(t, err)
	_, err = svc.SellItem("GS-SOLD-0001", SellInput{SoldPrice: "55.00"})
	require.NoError(t, err)

	sum, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalItems)
	assert.Equal(t, 1, sum.AvailableItems)
	assert.Equal(t, 1, sum.SoldItems)
	assert.True(t, sum.TotalCost.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, sum.TotalValue.Equal(decimal.RequireFromString("45.00")))
	assert.True(t, sum.SoldRevenue.Equal(decimal.RequireFromString("55.00")))
	assert.True(t, sum.SoldProfit.Equal(decimal.RequireFromString("35.00")))
}
