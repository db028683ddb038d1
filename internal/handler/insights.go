package handler

import (
	"time"

	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
)

// InsightsHandler exposes the analytics endpoints.
type InsightsHandler struct {
	svc *service.InsightsService
}

func NewInsightsHandler(svc *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{svc: svc}
}

func (h *InsightsHandler) Health(c *gin.Context) {
	hs, err := h.svc.BusinessHealth()
	if err != nil {
		fail(c, "insights", "Health", err)
		return
	}
	util.Success(c, util.Response{"health": hs})
}

func (h *InsightsHandler) SlowMovers(c *gin.Context) {
	minDays := queryInt(c, "min_days", 60)

	movers, err := h.svc.SlowMovers(minDays)
	if err != nil {
		fail(c, "insights", "SlowMovers", err)
		return
	}
	util.Success(c, util.Response{"slow_movers": movers, "min_days": minDays})
}

func (h *InsightsHandler) Categories(c *gin.Context) {
	perfs, err := h.svc.CategoryPerformances()
	if err != nil {
		fail(c, "insights", "Categories", err)
		return
	}
	util.Success(c, util.Response{"categories": perfs})
}

func (h *InsightsHandler) PriceRanges(c *gin.Context) {
	ranges, err := h.svc.PriceRangePerformances()
	if err != nil {
		fail(c, "insights", "PriceRanges", err)
		return
	}
	util.Success(c, util.Response{"price_ranges": ranges})
}

func (h *InsightsHandler) Brands(c *gin.Context) {
	trends, err := h.svc.BrandTrends()
	if err != nil {
		fail(c, "insights", "Brands", err)
		return
	}
	util.Success(c, util.Response{"brands": trends})
}

func (h *InsightsHandler) Seasonal(c *gin.Context) {
	year := queryInt(c, "year", time.Now().UTC().Year())

	points, err := h.svc.SeasonalTrends(year)
	if err != nil {
		fail(c, "insights", "Seasonal", err)
		return
	}
	util.Success(c, util.Response{"year": year, "seasonal": points})
}

func (h *InsightsHandler) Pricing(c *gin.Context) {
	recs, err := h.svc.PricingRecommendations()
	if err != nil {
		fail(c, "insights", "Pricing", err)
		return
	}
	util.Success(c, util.Response{"recommendations": recs})
}
