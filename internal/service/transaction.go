package service

import (
	"errors"
	"time"

	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionService owns the user-facing transaction CRUD and the financial
// summary queries. Automatic transactions from inventory/asset operations go
// through the same validation but are written inside those units of work.
type TransactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// TransactionInput is the mutation payload for a transaction. Currency and
// date fields arrive as strings and are parsed during validation.
type TransactionInput struct {
	Date            string `json:"date"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	Category        string `json:"category"`
	SubCategory     string `json:"sub_category"`
	TransactionType string `json:"transaction_type"`
	AccountName     string `json:"account_name"`
	Vendor          string `json:"vendor"`
	InvoiceNumber   string `json:"invoice_number"`
	Notes           string `json:"notes"`

	date   time.Time
	amount decimal.Decimal
}

// Validate checks the payload without side effects.
func (in *TransactionInput) Validate() error {
	if in.TransactionType != models.TypeIncome && in.TransactionType != models.TypeExpense {
		return validationErr("transaction_type", "must be Income or Expense")
	}
	if err := util.RequireString(in.Description, "description", 3, 200); err != nil {
		return validationErr("description", err.Error())
	}
	if err := util.RequireString(in.Category, "category", 2, 50); err != nil {
		return validationErr("category", err.Error())
	}
	if err := util.RequireString(in.AccountName, "account_name", 2, 100); err != nil {
		return validationErr("account_name", err.Error())
	}

	amount, err := util.ParseCurrency(in.Amount, "amount", false)
	if err != nil {
		return validationErr("amount", err.Error())
	}
	in.amount = amount

	date, err := util.ParseDate(in.Date, "date")
	if err != nil {
		return validationErr("date", err.Error())
	}
	in.date = date

	return nil
}

func (in *TransactionInput) model() models.Transaction {
	return models.Transaction{
		Date:            in.date,
		Description:     in.Description,
		Amount:          in.amount,
		Category:        in.Category,
		SubCategory:     in.SubCategory,
		TransactionType: in.TransactionType,
		AccountName:     in.AccountName,
		Vendor:          in.Vendor,
		InvoiceNumber:   in.InvoiceNumber,
		Notes:           in.Notes,
	}
}

// Create validates and stores a new transaction.
func (s *TransactionService) Create(in TransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	txn := in.model()
	if err := s.db.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update re-validates and overwrites an existing transaction.
func (s *TransactionService) Update(id uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var txn models.Transaction
	if err := s.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated := in.model()
	updated.ID = txn.ID
	if err := s.db.Save(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a transaction. Deletion is always an explicit user action;
// the linked-transaction protocol never deletes rows on its own.
func (s *TransactionService) Delete(id uint) error {
	res := s.db.Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns a single transaction by id.
func (s *TransactionService) Get(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// TransactionFilters narrows List results. Zero values mean "no filter";
// Month requires Year.
type TransactionFilters struct {
	Year            int
	Month           int
	TransactionType string
	Category        string
}

// List returns transactions matching the filters, newest first.
func (s *TransactionService) List(f TransactionFilters) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{})
	if f.Year != 0 {
		start, end := periodWindow(f.Year, f.Month)
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if f.TransactionType != "" {
		q = q.Where("transaction_type = ?", f.TransactionType)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var txns []models.Transaction
	if err := q.Order("date DESC, id DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// periodWindow returns the [start, end) window for a year or a year+month.
func periodWindow(year, month int) (time.Time, time.Time) {
	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// FinancialSummary aggregates income and expenses over a period.
type FinancialSummary struct {
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

func summarize(txns []models.Transaction) FinancialSummary {
	sum := FinancialSummary{Income: decimal.Zero, Expenses: decimal.Zero}
	for i := range txns {
		if txns[i].IsIncome() {
			sum.Income = sum.Income.Add(txns[i].Amount)
		} else {
			sum.Expenses = sum.Expenses.Add(txns[i].Amount)
		}
	}
	sum.Profit = sum.Income.Sub(sum.Expenses)
	if sum.Income.IsPositive() {
		sum.ProfitMargin = sum.Profit.Div(sum.Income).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		sum.ProfitMargin = decimal.Zero
	}
	return sum
}

// MonthlySummary returns the financial summary for one month.
func (s *TransactionService) MonthlySummary(year, month int) (FinancialSummary, error) {
	txns, err := s.List(TransactionFilters{Year: year, Month: month})
	if err != nil {
		return FinancialSummary{}, err
	}
	return summarize(txns), nil
}

// YearlySummary returns the financial summary for one year.
func (s *TransactionService) YearlySummary(year int) (FinancialSummary, error) {
	txns, err := s.List(TransactionFilters{Year: year})
	if err != nil {
		return FinancialSummary{}, err
	}
	return summarize(txns), nil
}

// CategoryBreakdown is income/expense totals for one category over a period.
type CategoryBreakdown struct {
	Category         string          `json:"category"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryBreakdowns groups a period's transactions by category. month == 0
// covers the whole year.
func (s *TransactionService) CategoryBreakdowns(year, month int) ([]CategoryBreakdown, error) {
	txns, err := s.List(TransactionFilters{Year: year, Month: month})
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]*CategoryBreakdown)
	var order []string
	for i := range txns {
		t := &txns[i]
		cb, ok := byCat[t.Category]
		if !ok {
			cb = &CategoryBreakdown{Category: t.Category, Income: decimal.Zero, Expenses: decimal.Zero}
			byCat[t.Category] = cb
			order = append(order, t.Category)
		}
		if t.IsIncome() {
			cb.Income = cb.Income.Add(t.Amount)
		} else {
			cb.Expenses = cb.Expenses.Add(t.Amount)
		}
		cb.TransactionCount++
	}

	out := make([]CategoryBreakdown, 0, len(order))
	for _, cat := range order {
		cb := byCat[cat]
		cb.Net = cb.Income.Sub(cb.Expenses)
		out = append(out, *cb)
	}
	return out, nil
}

// MonthCashFlow is one month's slice of the cash-flow series.
type MonthCashFlow struct {
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
}

// CashFlow returns the month-by-month income/expense series for a year.
func (s *TransactionService) CashFlow(year int) ([]MonthCashFlow, error) {
	txns, err := s.List(TransactionFilters{Year: year})
	if err != nil {
		return nil, err
	}

	months := make([]MonthCashFlow, 12)
	for m := 1; m <= 12; m++ {
		months[m-1] = MonthCashFlow{
			Month:     m,
			MonthName: time.Month(m).String(),
			Income:    decimal.Zero,
			Expenses:  decimal.Zero,
		}
	}
	for i := range txns {
		t := &txns[i]
		mcf := &months[int(t.Date.Month())-1]
		if t.IsIncome() {
			mcf.Income = mcf.Income.Add(t.Amount)
		} else {
			mcf.Expenses = mcf.Expenses.Add(t.Amount)
		}
	}
	for m := range months {
		months[m].Profit = months[m].Income.Sub(months[m].Expenses)
	}
	return months, nil
}

// ProfitLossStatement is the P&L report for a period.
type ProfitLossStatement struct {
	Period            string                     `json:"period"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	NetProfit         decimal.Decimal            `json:"net_profit"`
	ProfitMargin      decimal.Decimal            `json:"profit_margin"`
	IncomeCategories  map[string]decimal.Decimal `json:"income_categories"`
	ExpenseCategories map[string]decimal.Decimal `json:"expense_categories"`
}

// ProfitLoss builds a profit & loss statement. month == 0 covers the year.
func (s *TransactionService) ProfitLoss(year, month int) (*ProfitLossStatement, error) {
	txns, err := s.List(TransactionFilters{Year: year, Month: month})
	if err != nil {
		return nil, err
	}

	stmt := &ProfitLossStatement{
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		IncomeCategories:  make(map[string]decimal.Decimal),
		ExpenseCategories: make(map[string]decimal.Decimal),
	}
	if month == 0 {
		stmt.Period = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format("2006")
	} else {
		stmt.Period = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	}

	for i := range txns {
		t := &txns[i]
		if t.IsIncome() {
			stmt.TotalIncome = stmt.TotalIncome.Add(t.Amount)
			stmt.IncomeCategories[t.Category] = stmt.IncomeCategories[t.Category].Add(t.Amount)
		} else {
			stmt.TotalExpenses = stmt.TotalExpenses.Add(t.Amount)
			stmt.ExpenseCategories[t.Category] = stmt.ExpenseCategories[t.Category].Add(t.Amount)
		}
	}
	stmt.NetProfit = stmt.TotalIncome.Sub(stmt.TotalExpenses)
	if stmt.TotalIncome.IsPositive() {
		stmt.ProfitMargin = stmt.NetProfit.Div(stmt.TotalIncome).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		stmt.ProfitMargin = decimal.Zero
	}
	return stmt, nil
}
