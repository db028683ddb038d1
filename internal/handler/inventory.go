package handler

import (
	"net/http"

	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes inventory items, the sell flow, and the
// inventory summaries.
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.InventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	res, err := h.svc.CreateItem(req)
	if err != nil {
		fail(c, "inventory", "Create", err)
		return
	}
	util.Success(c, util.Response{
		"item":                  res.Item,
		"linked_transaction_id": res.LinkedTransactionID,
	})
}

func (h *InventoryHandler) Update(c *gin.Context) {
	sku := c.Param("sku")
	var req service.InventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	res, err := h.svc.UpdateItem(sku, req)
	if err != nil {
		fail(c, "inventory", "Update", err)
		return
	}
	util.Success(c, util.Response{
		"item":         res.Item,
		"cost_updated": res.CostUpdated,
	})
}

func (h *InventoryHandler) Sell(c *gin.Context) {
	sku := c.Param("sku")
	var req service.SellInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	res, err := h.svc.SellItem(sku, req)
	if err != nil {
		fail(c, "inventory", "Sell", err)
		return
	}
	util.Success(c, util.Response{
		"item":                res.Item,
		"transaction_created": res.TransactionCreated,
		"transaction_id":      res.TransactionID,
		"zero_sale":           res.ZeroSale,
	})
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	sku := c.Param("sku")
	if err := h.svc.DeleteItem(sku); err != nil {
		fail(c, "inventory", "Delete", err)
		return
	}
	util.Success(c, util.Response{"deleted": sku})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	sku := c.Param("sku")
	item, err := h.svc.GetBySKU(sku)
	if err != nil {
		fail(c, "inventory", "Get", err)
		return
	}

	editable, err := h.svc.CanEdit(sku)
	if err != nil {
		fail(c, "inventory", "Get", err)
		return
	}
	util.Success(c, util.Response{"item": item, "editable": editable})
}

func (h *InventoryHandler) List(c *gin.Context) {
	filters := service.InventoryFilters{
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Brand:     c.Query("brand"),
		Size:      c.Query("size"),
		Search:    c.Query("search"),
	}

	items, err := h.svc.List(filters)
	if err != nil {
		fail(c, "inventory", "List", err)
		return
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}

func (h *InventoryHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary()
	if err != nil {
		fail(c, "inventory", "Summary", err)
		return
	}
	util.Success(c, util.Response{"summary": sum})
}

func (h *InventoryHandler) Categories(c *gin.Context) {
	breakdowns, err := h.svc.CategoryBreakdowns()
	if err != nil {
		fail(c, "inventory", "Categories", err)
		return
	}
	util.Success(c, util.Response{"categories": breakdowns})
}

func (h *InventoryHandler) Brands(c *gin.Context) {
	brands, err := h.svc.Brands()
	if err != nil {
		fail(c, "inventory", "Brands", err)
		return
	}
	util.Success(c, util.Response{"brands": brands})
}
