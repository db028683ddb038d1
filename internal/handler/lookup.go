package handler

import (
	"net/http"

	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
)

// LookupHandler exposes the category and condition vocabularies.
type LookupHandler struct {
	svc *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

func (h *LookupHandler) ListCategories(c *gin.Context) {
	categoryType := c.DefaultQuery("type", models.CategoryTypeInventory)

	cats, err := h.svc.ListCategories(categoryType)
	if err != nil {
		fail(c, "lookup", "ListCategories", err)
		return
	}
	util.Success(c, util.Response{"categories": cats})
}

func (h *LookupHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cat, err := h.svc.CreateCategory(req)
	if err != nil {
		fail(c, "lookup", "CreateCategory", err)
		return
	}
	util.Success(c, util.Response{"category": cat})
}

func (h *LookupHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateCategory(id); err != nil {
		fail(c, "lookup", "DeleteCategory", err)
		return
	}
	util.Success(c, util.Response{"deactivated": id})
}

func (h *LookupHandler) ListConditions(c *gin.Context) {
	conds, err := h.svc.ListConditions()
	if err != nil {
		fail(c, "lookup", "ListConditions", err)
		return
	}
	util.Success(c, util.Response{"conditions": conds})
}

func (h *LookupHandler) CreateCondition(c *gin.Context) {
	var req service.ConditionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cond, err := h.svc.CreateCondition(req)
	if err != nil {
		fail(c, "lookup", "CreateCondition", err)
		return
	}
	util.Success(c, util.Response{"condition": cond})
}

func (h *LookupHandler) DeleteCondition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateCondition(id); err != nil {
		fail(c, "lookup", "DeleteCondition", err)
		return
	}
	util.Success(c, util.Response{"deactivated": id})
}

// ListingStatuses returns the fixed status vocabulary for dropdowns.
func (h *LookupHandler) ListingStatuses(c *gin.Context) {
	util.Success(c, util.Response{"statuses": models.ListingStatuses})
}
