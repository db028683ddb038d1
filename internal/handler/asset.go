package handler

import (
	"net/http"

	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
)

// AssetHandler exposes business assets and their disposal flow.
type AssetHandler struct {
	svc *service.AssetService
}

func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req service.AssetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	asset, err := h.svc.CreateAsset(req)
	if err != nil {
		fail(c, "asset", "Create", err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *AssetHandler) Dispose(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.DisposeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	asset, err := h.svc.DisposeAsset(id, req)
	if err != nil {
		fail(c, "asset", "Dispose", err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asset, err := h.svc.Get(id)
	if err != nil {
		fail(c, "asset", "Get", err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *AssetHandler) List(c *gin.Context) {
	filters := service.AssetFilters{
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") == "true",
	}

	assets, err := h.svc.List(filters)
	if err != nil {
		fail(c, "asset", "List", err)
		return
	}
	util.Success(c, util.Response{"assets": assets, "total": len(assets)})
}

func (h *AssetHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary()
	if err != nil {
		fail(c, "asset", "Summary", err)
		return
	}
	util.Success(c, util.Response{"summary": sum})
}
