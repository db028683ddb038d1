package service

import (
	"testing"

	"github.com/juanbracho/girasoulresale/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTxnInput() TransactionInput {
	return TransactionInput{
		Date:            "2025-03-10",
		Description:     "Shipping supplies",
		Amount:          "24.99",
		Category:        "Office Supplies",
		TransactionType: models.TypeExpense,
		AccountName:     "Business Checking",
	}
}

func TestTransactionCRUD(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	txn, err := svc.Create(validTxnInput())
	require.NoError(t, err)
	require.NotZero(t, txn.ID)

	got, err := svc.Get(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shipping supplies", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("24.99")))

	in := validTxnInput()
	in.Amount = "30.00"
	updated, err := svc.Update(txn.ID, in)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("30.00")))

	require.NoError(t, svc.Delete(txn.ID))
	_, err = svc.Get(txn.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionValidation(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	in := validTxnInput()
	in.TransactionType = "Transfer"
	_, err := svc.Create(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	in = validTxnInput()
	in.Amount = "12.345"
	_, err = svc.Create(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	in = validTxnInput()
	in.Date = "03/10/2025"
	_, err = svc.Create(in)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestList_PeriodFilters(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	march := validTxnInput()
	_, err := svc.Create(march)
	require.NoError(t, err)

	april := validTxnInput()
	april.Date = "2025-04-02"
	_, err = svc.Create(april)
	require.NoError(t, err)

	lastYear := validTxnInput()
	lastYear.Date = "2024-03-10"
	_, err = svc.Create(lastYear)
	require.NoError(t, err)

	txns, err := svc.List(TransactionFilters{Year: 2025})
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	txns, err = svc.List(TransactionFilters{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestMonthlySummary(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	income := validTxnInput()
	income.TransactionType = models.TypeIncome
	income.Amount = "100.00"
	_, err := svc.Create(income)
	require.NoError(t, err)

	expense := validTxnInput()
	expense.Amount = "40.00"
	_, err = svc.Create(expense)
	require.NoError(t, err)

	sum, err := svc.MonthlySummary(2025, 3)
	require.NoError(t, err)
	assert.True(t, sum.Income.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, sum.Expenses.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, sum.Profit.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, sum.ProfitMargin.Equal(decimal.RequireFromString("60.00")), "margin = %s", sum.ProfitMargin)
}

func TestCategoryBreakdowns(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	a := validTxnInput()
	_, err := svc.Create(a)
	require.NoError(t, err)

	b := validTxnInput()
	b.Category = "Sales Revenue"
	b.TransactionType = models.TypeIncome
	b.Amount = "80.00"
	_, err = svc.Create(b)
	require.NoError(t, err)

	breakdowns, err := svc.CategoryBreakdowns(2025, 3)
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)

	byCat := map[string]CategoryBreakdown{}
	for _, cb := range breakdowns {
		byCat[cb.Category] = cb
	}
	assert.True(t, byCat["Sales Revenue"].Income.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, byCat["Office Supplies"].Expenses.Equal(decimal.RequireFromString("24.99")))
}

func TestCashFlow_TwelveMonths(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	in := validTxnInput()
	in.TransactionType = models.TypeIncome
	in.Amount = "50.00"
	_, err := svc.Create(in)
	require.NoError(t, err)

	flow, err := svc.CashFlow(2025)
	require.NoError(t, err)
	require.Len(t, flow, 12)
	assert.True(t, flow[2].Income.Equal(decimal.RequireFromString("50.00")), "March income")
	assert.True(t, flow[0].Income.IsZero(), "January has no transactions")
}

func TestProfitLoss(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))

	income := validTxnInput()
	income.TransactionType = models.TypeIncome
	income.Category = "Sales Revenue"
	income.Amount = "200.00"
	_, err := svc.Create(income)
	require.NoError(t, err)

	expense := validTxnInput()
	expense.Amount = "50.00"
	_, err = svc.Create(expense)
	require.NoError(t, err)

	stmt, err := svc.ProfitLoss(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "March 2025", stmt.Period)
	assert.True(t, stmt.NetProfit.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, stmt.IncomeCategories["Sales Revenue"].Equal(decimal.RequireFromString("200.00")))
	assert.True(t, stmt.ExpenseCategories["Office Supplies"].Equal(decimal.RequireFromString("50.00")))

	yearly, err := svc.ProfitLoss(2025, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025", yearly.Period)
}
