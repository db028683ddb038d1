package handler

import (
	"net/http"
	"time"

	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes transaction CRUD and the financial reports.
type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	txn, err := h.svc.Create(req)
	if err != nil {
		fail(c, "transaction", "Create", err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	txn, err := h.svc.Update(id, req)
	if err != nil {
		fail(c, "transaction", "Update", err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(id); err != nil {
		fail(c, "transaction", "Delete", err)
		return
	}
	util.Success(c, util.Response{"deleted": id})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	txn, err := h.svc.Get(id)
	if err != nil {
		fail(c, "transaction", "Get", err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) List(c *gin.Context) {
	filters := service.TransactionFilters{
		Year:            queryInt(c, "year", 0),
		Month:           queryInt(c, "month", 0),
		TransactionType: c.Query("type"),
		Category:        c.Query("category"),
	}

	txns, err := h.svc.List(filters)
	if err != nil {
		fail(c, "transaction", "List", err)
		return
	}
	util.Success(c, util.Response{
		"transactions": txns,
		"total":        len(txns),
		"summary":      periodSummary(h.svc, filters),
	})
}

// periodSummary attaches the period summary when a period filter is
// present; an unfiltered list gets none.
func periodSummary(svc *service.TransactionService, f service.TransactionFilters) interface{} {
	if f.Year == 0 {
		return nil
	}
	var (
		sum service.FinancialSummary
		err error
	)
	if f.Month != 0 {
		sum, err = svc.MonthlySummary(f.Year, f.Month)
	} else {
		sum, err = svc.YearlySummary(f.Year)
	}
	if err != nil {
		return nil
	}
	return sum
}

func (h *TransactionHandler) Summary(c *gin.Context) {
	now := time.Now().UTC()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", 0)

	var (
		sum service.FinancialSummary
		err error
	)
	if month != 0 {
		sum, err = h.svc.MonthlySummary(year, month)
	} else {
		sum, err = h.svc.YearlySummary(year)
	}
	if err != nil {
		fail(c, "transaction", "Summary", err)
		return
	}
	util.Success(c, util.Response{"year": year, "month": month, "summary": sum})
}

func (h *TransactionHandler) Categories(c *gin.Context) {
	now := time.Now().UTC()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", 0)

	breakdowns, err := h.svc.CategoryBreakdowns(year, month)
	if err != nil {
		fail(c, "transaction", "Categories", err)
		return
	}
	util.Success(c, util.Response{"year": year, "month": month, "categories": breakdowns})
}

func (h *TransactionHandler) CashFlow(c *gin.Context) {
	year := queryInt(c, "year", time.Now().UTC().Year())

	flow, err := h.svc.CashFlow(year)
	if err != nil {
		fail(c, "transaction", "CashFlow", err)
		return
	}
	util.Success(c, util.Response{"year": year, "cash_flow": flow})
}

func (h *TransactionHandler) ProfitLoss(c *gin.Context) {
	now := time.Now().UTC()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", 0)

	stmt, err := h.svc.ProfitLoss(year, month)
	if err != nil {
		fail(c, "transaction", "ProfitLoss", err)
		return
	}
	util.Success(c, util.Response{"statement": stmt})
}
