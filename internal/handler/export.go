package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams transactions and inventory as CSV or XLSX downloads.
type ExportHandler struct {
	transactions *service.TransactionService
	inventory    *service.InventoryService
}

func NewExportHandler(transactions *service.TransactionService, inventory *service.InventoryService) *ExportHandler {
	return &ExportHandler{transactions: transactions, inventory: inventory}
}

var transactionHeaders = []string{"Date", "Description", "Amount", "Category", "Sub Category", "Type", "Account", "Vendor", "Invoice #", "Notes"}

func transactionRow(t *models.Transaction) []string {
	return []string{
		t.Date.Format("2006-01-02"),
		t.Description,
		t.Amount.StringFixed(2),
		t.Category,
		t.SubCategory,
		t.TransactionType,
		t.AccountName,
		t.Vendor,
		t.InvoiceNumber,
		t.Notes,
	}
}

var inventoryHeaders = []string{"SKU", "Name", "Category", "Brand", "Size", "Condition", "Cost", "Selling Price", "Sold Price", "Status", "Sold Date", "Location"}

func inventoryRow(i *models.InventoryItem) []string {
	soldPrice := ""
	if i.SoldPrice != nil {
		soldPrice = i.SoldPrice.StringFixed(2)
	}
	soldDate := ""
	if i.SoldDate != nil {
		soldDate = i.SoldDate.Format("2006-01-02")
	}
	return []string{
		i.SKU,
		i.Name,
		i.Category,
		i.Brand,
		i.Size,
		i.Condition,
		i.CostOfItem.StringFixed(2),
		i.SellingPrice.StringFixed(2),
		soldPrice,
		i.ListingStatus,
		soldDate,
		i.Location,
	}
}

// writeCSV streams rows with a UTF-8 BOM so Excel opens them cleanly.
func writeCSV(c *gin.Context, filename string, headers []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"",
		filename, time.Now().Format("20060102")))

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(headers)
	for _, row := range rows {
		writer.Write(row)
	}
}

func writeXLSX(c *gin.Context, filename, sheetName string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	for r, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"",
		filename, time.Now().Format("20060102")))
	return f.Write(c.Writer)
}

func (h *ExportHandler) transactionRows(c *gin.Context) ([][]string, bool) {
	filters := service.TransactionFilters{
		Year:            queryInt(c, "year", 0),
		Month:           queryInt(c, "month", 0),
		TransactionType: c.Query("type"),
		Category:        c.Query("category"),
	}
	txns, err := h.transactions.List(filters)
	if err != nil {
		fail(c, "export", "Transactions", err)
		return nil, false
	}

	rows := make([][]string, 0, len(txns))
	for i := range txns {
		rows = append(rows, transactionRow(&txns[i]))
	}
	return rows, true
}

func (h *ExportHandler) TransactionsCSV(c *gin.Context) {
	rows, ok := h.transactionRows(c)
	if !ok {
		return
	}
	writeCSV(c, "transactions", transactionHeaders, rows)
}

func (h *ExportHandler) TransactionsXLSX(c *gin.Context) {
	rows, ok := h.transactionRows(c)
	if !ok {
		return
	}
	if err := writeXLSX(c, "transactions", "Transactions", transactionHeaders, rows); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

func (h *ExportHandler) inventoryRows(c *gin.Context) ([][]string, bool) {
	filters := service.InventoryFilters{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}
	items, err := h.inventory.List(filters)
	if err != nil {
		fail(c, "export", "Inventory", err)
		return nil, false
	}

	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, inventoryRow(&items[i]))
	}
	return rows, true
}

func (h *ExportHandler) InventoryCSV(c *gin.Context) {
	rows, ok := h.inventoryRows(c)
	if !ok {
		return
	}
	writeCSV(c, "inventory", inventoryHeaders, rows)
}

func (h *ExportHandler) InventoryXLSX(c *gin.Context) {
	rows, ok := h.inventoryRows(c)
	if !ok {
		return
	}
	if err := writeXLSX(c, "inventory", "Inventory", inventoryHeaders, rows); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
