package service

import (
	"math"
	"sort"
	"time"

	"github.com/juanbracho/girasoulresale/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsightsService derives business health metrics, slow-mover analysis, and
// pricing guidance from inventory and transaction history. Everything here
// is read-only and heuristic; the scoring helpers are pure so the thresholds
// are testable without a store.
type InsightsService struct {
	db *gorm.DB
}

func NewInsightsService(db *gorm.DB) *InsightsService {
	return &InsightsService{db: db}
}

// HealthScore is the weighted overall business score with its components.
type HealthScore struct {
	Overall         int      `json:"overall"`
	Status          string   `json:"status"`
	RevenueGrowth   int      `json:"revenue_growth_score"`
	Turnover        int      `json:"turnover_score"`
	Margin          int      `json:"margin_score"`
	Velocity        int      `json:"velocity_score"`
	Recommendations []string `json:"recommendations"`
}

// scoreRevenueGrowth maps month-over-month revenue growth percent to a
// component score. A month with no prior baseline scores on presence alone.
func scoreRevenueGrowth(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 80
		}
		return 50
	}
	growth := (current - previous) / previous * 100
	switch {
	case growth >= 20:
		return 100
	case growth >= 10:
		return 85
	case growth >= 0:
		return 70
	case growth >= -10:
		return 50
	default:
		return 25
	}
}

// scoreTurnover maps the sold share of total items (percent) to a score.
// An empty store has nothing stagnating.
func scoreTurnover(soldPct float64, totalItems int) int {
	if totalItems == 0 {
		return 100
	}
	switch {
	case soldPct >= 30:
		return 100
	case soldPct >= 20:
		return 85
	case soldPct >= 10:
		return 70
	case soldPct >= 5:
		return 55
	default:
		return 30
	}
}

// scoreMargin maps the average realized margin percent over sold items to a
// score. No sales yet is neutral.
func scoreMargin(avgMarginPct float64, soldItems int) int {
	if soldItems == 0 {
		return 50
	}
	switch {
	case avgMarginPct >= 100:
		return 100
	case avgMarginPct >= 75:
		return 90
	case avgMarginPct >= 50:
		return 80
	case avgMarginPct >= 25:
		return 65
	case avgMarginPct >= 0:
		return 40
	default:
		return 20
	}
}

// scoreVelocity maps the sales count of the last 30 days to a score.
func scoreVelocity(recentSales int) int {
	switch {
	case recentSales >= 20:
		return 100
	case recentSales >= 15:
		return 85
	case recentSales >= 10:
		return 70
	case recentSales >= 5:
		return 55
	case recentSales >= 1:
		return 40
	default:
		return 20
	}
}

func healthStatus(overall int) string {
	switch {
	case overall >= 85:
		return "Excellent"
	case overall >= 70:
		return "Good"
	case overall >= 55:
		return "Fair"
	case overall >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

// BusinessHealth computes the weighted health score as of now.
func (s *InsightsService) BusinessHealth() (*HealthScore, error) {
	now := time.Now().UTC()
	thisStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := thisStart.AddDate(0, -1, 0)

	currentRev, err := s.revenueBetween(thisStart, thisStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	previousRev, err := s.revenueBetween(prevStart, thisStart)
	if err != nil {
		return nil, err
	}

	var items []models.InventoryItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	var (
		soldItems   int
		recentSales int
		marginSum   float64
		marginCount int
	)
	cutoff := now.AddDate(0, 0, -30)
	for i := range items {
		it := &items[i]
		if !it.IsSold() {
			continue
		}
		soldItems++
		if it.SoldDate != nil && it.SoldDate.After(cutoff) {
			recentSales++
		}
		if it.SoldPrice != nil && it.CostOfItem.IsPositive() {
			margin, _ := it.SoldPrice.Sub(it.CostOfItem).Div(it.CostOfItem).Mul(decimal.NewFromInt(100)).Float64()
			marginSum += margin
			marginCount++
		}
	}

	soldPct := 0.0
	if len(items) > 0 {
		soldPct = float64(soldItems) / float64(len(items)) * 100
	}
	avgMargin := 0.0
	if marginCount > 0 {
		avgMargin = marginSum / float64(marginCount)
	}

	hs := &HealthScore{
		RevenueGrowth: scoreRevenueGrowth(currentRev, previousRev),
		Turnover:      scoreTurnover(soldPct, len(items)),
		Margin:        scoreMargin(avgMargin, soldItems),
		Velocity:      scoreVelocity(recentSales),
	}
	hs.Overall = int(math.Round(
		float64(hs.RevenueGrowth)*0.30 +
			float64(hs.Turnover)*0.25 +
			float64(hs.Margin)*0.25 +
			float64(hs.Velocity)*0.20))
	hs.Status = healthStatus(hs.Overall)
	hs.Recommendations = healthRecommendations(hs)
	return hs, nil
}

func healthRecommendations(hs *HealthScore) []string {
	var recs []string
	if hs.RevenueGrowth < 70 {
		recs = append(recs, "Revenue is trending down; review pricing and run a promotion on listed items")
	}
	if hs.Turnover < 70 {
		recs = append(recs, "Inventory turnover is low; consider discounting items held longest")
	}
	if hs.Margin < 65 {
		recs = append(recs, "Realized margins are thin; source lower-cost stock or raise listing prices")
	}
	if hs.Velocity < 55 {
		recs = append(recs, "Few recent sales; list more items and refresh stale listings")
	}
	if len(recs) == 0 {
		recs = append(recs, "Business metrics look healthy; maintain current sourcing and pricing")
	}
	return recs
}

func (s *InsightsService) revenueBetween(start, end time.Time) (float64, error) {
	var txns []models.Transaction
	err := s.db.Where("transaction_type = ? AND date >= ? AND date < ?",
		models.TypeIncome, start, end).Find(&txns).Error
	if err != nil {
		return 0, err
	}
	total := decimal.Zero
	for i := range txns {
		total = total.Add(txns[i].Amount)
	}
	f, _ := total.Float64()
	return f, nil
}

// SlowMover is one stagnant item with its suggested action.
type SlowMover struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	DaysInStock    int             `json:"days_in_stock"`
	CostOfItem     decimal.Decimal `json:"cost_of_item"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	MarginPct      decimal.Decimal `json:"margin_pct"`
	Action         string          `json:"action"`
	Recommendation string          `json:"recommendation"`
}

// slowMoverAction picks an action from the markup the listing price carries
// over cost ((price-cost)/cost). High-markup items have room to cut;
// zero-markup items are sunk and should be cleared.
func slowMoverAction(markupPct float64) (action, recommendation string) {
	switch {
	case markupPct > 100:
		return "reduce_price", "Consider price reduction; the markup leaves room for a markdown"
	case markupPct > 50:
		return "increase_marketing", "Markup is solid; promote the listing instead of discounting"
	case markupPct > 0:
		return "create_bundle", "Thin markup; bundle with related items to move it"
	default:
		return "liquidate", "Priced at or below cost; liquidate to recover capital"
	}
}

// SlowMovers returns the 20 oldest non-sold items past the age threshold,
// oldest first.
func (s *InsightsService) SlowMovers(minDays int) ([]SlowMover, error) {
	if minDays <= 0 {
		minDays = 60
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -minDays)

	var items []models.InventoryItem
	err := s.db.Where("listing_status <> ? AND created_at <= ?", models.StatusSold, cutoff).
		Order("created_at").Limit(20).Find(&items).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movers := make([]SlowMover, 0, len(items))
	for i := range items {
		it := &items[i]
		// MarginPct reports margin over price; the action is chosen on
		// markup over cost, which exceeds 100 for well-priced stock.
		markup := math.Inf(1)
		if it.CostOfItem.IsPositive() {
			markup, _ = it.SellingPrice.Sub(it.CostOfItem).Div(it.CostOfItem).
				Mul(decimal.NewFromInt(100)).Float64()
		}
		action, rec := slowMoverAction(markup)
		movers = append(movers, SlowMover{
			SKU:            it.SKU,
			Name:           it.Name,
			Category:       it.Category,
			Brand:          it.Brand,
			DaysInStock:    int(now.Sub(it.CreatedAt).Hours() / 24),
			CostOfItem:     it.CostOfItem,
			SellingPrice:   it.SellingPrice,
			MarginPct:      it.MarginPercentage(),
			Action:         action,
			Recommendation: rec,
		})
	}
	return movers, nil
}

// CategoryPerformance is the sold-item record of one category.
type CategoryPerformance struct {
	Category  string          `json:"category"`
	SoldCount int             `json:"sold_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
	AvgMargin decimal.Decimal `json:"avg_margin"`
	Rating    string          `json:"rating"`
}

func categoryRating(soldCount int, avgMarginPct float64) string {
	switch {
	case soldCount >= 10 && avgMarginPct >= 50:
		return "Excellent"
	case soldCount >= 5 && avgMarginPct >= 25:
		return "Good"
	case soldCount >= 3 || avgMarginPct >= 0:
		return "Fair"
	default:
		return "Poor"
	}
}

// CategoryPerformances ranks categories by realized revenue.
func (s *InsightsService) CategoryPerformances() ([]CategoryPerformance, error) {
	items, err := s.soldItems()
	if err != nil {
		return nil, err
	}

	type acc struct {
		count       int
		revenue     decimal.Decimal
		profit      decimal.Decimal
		marginSum   float64
		marginCount int
	}
	byCat := make(map[string]*acc)
	for i := range items {
		it := &items[i]
		a, ok := byCat[it.Category]
		if !ok {
			a = &acc{revenue: decimal.Zero, profit: decimal.Zero}
			byCat[it.Category] = a
		}
		a.count++
		if it.SoldPrice != nil {
			a.revenue = a.revenue.Add(*it.SoldPrice)
			a.profit = a.profit.Add(it.SoldPrice.Sub(it.CostOfItem))
			if it.CostOfItem.IsPositive() {
				m, _ := it.SoldPrice.Sub(it.CostOfItem).Div(it.CostOfItem).Mul(decimal.NewFromInt(100)).Float64()
				a.marginSum += m
				a.marginCount++
			}
		}
	}

	out := make([]CategoryPerformance, 0, len(byCat))
	for cat, a := range byCat {
		avg := 0.0
		if a.marginCount > 0 {
			avg = a.marginSum / float64(a.marginCount)
		}
		out = append(out, CategoryPerformance{
			Category:  cat,
			SoldCount: a.count,
			Revenue:   a.revenue,
			Profit:    a.profit,
			AvgMargin: decimal.NewFromFloat(avg).Round(2),
			Rating:    categoryRating(a.count, avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

// PriceRangePerformance is the sold-item record of one price bucket.
type PriceRangePerformance struct {
	Range     string          `json:"range"`
	SoldCount int             `json:"sold_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	AvgMargin decimal.Decimal `json:"avg_margin"`
	Rating    string          `json:"rating"`
}

var priceRanges = []struct {
	label string
	low   float64
	high  float64
}{
	{"Under $25", 0, 25},
	{"$25-$50", 25, 51},
	{"$51-$100", 51, 101},
	{"$101-$200", 101, 201},
	{"Over $200", 201, math.MaxFloat64},
}

func priceRangeLabel(price float64) string {
	for _, r := range priceRanges {
		if price >= r.low && price < r.high {
			return r.label
		}
	}
	return priceRanges[len(priceRanges)-1].label
}

func priceRangeRating(soldCount int, avgMarginPct float64) string {
	switch {
	case soldCount >= 15 && avgMarginPct >= 50:
		return "Excellent"
	case soldCount >= 8 && avgMarginPct >= 25:
		return "Good"
	case soldCount >= 3 || avgMarginPct >= 0:
		return "Fair"
	default:
		return "Poor"
	}
}

// PriceRangePerformances buckets sold items by sale price.
func (s *InsightsService) PriceRangePerformances() ([]PriceRangePerformance, error) {
	items, err := s.soldItems()
	if err != nil {
		return nil, err
	}

	type acc struct {
		count       int
		revenue     decimal.Decimal
		marginSum   float64
		marginCount int
	}
	byRange := make(map[string]*acc)
	for _, r := range priceRanges {
		byRange[r.label] = &acc{revenue: decimal.Zero}
	}
	for i := range items {
		it := &items[i]
		if it.SoldPrice == nil {
			continue
		}
		price, _ := it.SoldPrice.Float64()
		a := byRange[priceRangeLabel(price)]
		a.count++
		a.revenue = a.revenue.Add(*it.SoldPrice)
		if it.CostOfItem.IsPositive() {
			m, _ := it.SoldPrice.Sub(it.CostOfItem).Div(it.CostOfItem).Mul(decimal.NewFromInt(100)).Float64()
			a.marginSum += m
			a.marginCount++
		}
	}

	out := make([]PriceRangePerformance, 0, len(priceRanges))
	for _, r := range priceRanges {
		a := byRange[r.label]
		avg := 0.0
		if a.marginCount > 0 {
			avg = a.marginSum / float64(a.marginCount)
		}
		out = append(out, PriceRangePerformance{
			Range:     r.label,
			SoldCount: a.count,
			Revenue:   a.revenue,
			AvgMargin: decimal.NewFromFloat(avg).Round(2),
			Rating:    priceRangeRating(a.count, avg),
		})
	}
	return out, nil
}

// BrandTrend is the sold-item record of one brand.
type BrandTrend struct {
	Brand     string          `json:"brand"`
	SoldCount int             `json:"sold_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Tier      string          `json:"tier"`
}

func brandTier(soldCount int, revenue float64) string {
	switch {
	case soldCount >= 10 && revenue >= 500:
		return "Top Performer"
	case soldCount >= 5 && revenue >= 200:
		return "Strong"
	case soldCount >= 3 || revenue >= 100:
		return "Moderate"
	default:
		return "Emerging"
	}
}

// BrandTrends returns the 15 highest-revenue brands among sold items.
func (s *InsightsService) BrandTrends() ([]BrandTrend, error) {
	items, err := s.soldItems()
	if err != nil {
		return nil, err
	}

	type acc struct {
		count   int
		revenue decimal.Decimal
	}
	byBrand := make(map[string]*acc)
	for i := range items {
		it := &items[i]
		if it.Brand == "" || it.SoldPrice == nil {
			continue
		}
		a, ok := byBrand[it.Brand]
		if !ok {
			a = &acc{revenue: decimal.Zero}
			byBrand[it.Brand] = a
		}
		a.count++
		a.revenue = a.revenue.Add(*it.SoldPrice)
	}

	out := make([]BrandTrend, 0, len(byBrand))
	for brand, a := range byBrand {
		rev, _ := a.revenue.Float64()
		out = append(out, BrandTrend{
			Brand:     brand,
			SoldCount: a.count,
			Revenue:   a.revenue,
			Tier:      brandTier(a.count, rev),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > 15 {
		out = out[:15]
	}
	return out, nil
}

// SeasonalPoint is one month of the sold-volume series.
type SeasonalPoint struct {
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	SoldCount int             `json:"sold_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SeasonalTrends returns the month-by-month sold volume for a year.
func (s *InsightsService) SeasonalTrends(year int) ([]SeasonalPoint, error) {
	start, end := periodWindow(year, 0)
	var items []models.InventoryItem
	err := s.db.Where("listing_status = ? AND sold_date >= ? AND sold_date < ?",
		models.StatusSold, start, end).Find(&items).Error
	if err != nil {
		return nil, err
	}

	points := make([]SeasonalPoint, 12)
	for m := 1; m <= 12; m++ {
		points[m-1] = SeasonalPoint{Month: m, MonthName: time.Month(m).String(), Revenue: decimal.Zero}
	}
	for i := range items {
		it := &items[i]
		if it.SoldDate == nil {
			continue
		}
		p := &points[int(it.SoldDate.Month())-1]
		p.SoldCount++
		if it.SoldPrice != nil {
			p.Revenue = p.Revenue.Add(*it.SoldPrice)
		}
	}
	return points, nil
}

// PricingRecommendation suggests a listing-price change for one item based
// on comparable sales.
type PricingRecommendation struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	MarketPrice      decimal.Decimal `json:"market_price"`
	RecommendedPrice decimal.Decimal `json:"recommended_price"`
	Action           string          `json:"action"`
	Confidence       int             `json:"confidence"`
	ComparableSales  int             `json:"comparable_sales"`
}

// comparePricing classifies a listing against the market price of comparable
// sold items. Differences within $20 either way leave the price alone.
func comparePricing(current, market decimal.Decimal) (action string, recommended decimal.Decimal) {
	diff, _ := current.Sub(market).Float64()
	switch {
	case diff > 20:
		return "reduce_price", market.Mul(decimal.NewFromFloat(0.95)).Round(2)
	case diff < -20:
		return "increase_price", market.Mul(decimal.NewFromFloat(0.90)).Round(2)
	default:
		return "hold", current
	}
}

// PricingRecommendations compares each listed item against sold items of the
// same category, brand, and condition. Returns the 15 largest gaps.
func (s *InsightsService) PricingRecommendations() ([]PricingRecommendation, error) {
	var listed []models.InventoryItem
	err := s.db.Where("listing_status <> ?", models.StatusSold).Find(&listed).Error
	if err != nil {
		return nil, err
	}
	sold, err := s.soldItems()
	if err != nil {
		return nil, err
	}

	type key struct{ category, brand, condition string }
	comps := make(map[key][]decimal.Decimal)
	for i := range sold {
		it := &sold[i]
		if it.SoldPrice == nil || !it.SoldPrice.IsPositive() {
			continue
		}
		k := key{it.Category, it.Brand, it.Condition}
		comps[k] = append(comps[k], *it.SoldPrice)
	}

	var recs []PricingRecommendation
	for i := range listed {
		it := &listed[i]
		prices := comps[key{it.Category, it.Brand, it.Condition}]
		if len(prices) == 0 {
			continue
		}
		total := decimal.Zero
		for _, p := range prices {
			total = total.Add(p)
		}
		market := total.Div(decimal.NewFromInt(int64(len(prices)))).Round(2)

		action, recommended := comparePricing(it.SellingPrice, market)
		if action == "hold" {
			continue
		}
		confidence := len(prices) * 10
		if confidence > 100 {
			confidence = 100
		}
		recs = append(recs, PricingRecommendation{
			SKU:              it.SKU,
			Name:             it.Name,
			CurrentPrice:     it.SellingPrice,
			MarketPrice:      market,
			RecommendedPrice: recommended,
			Action:           action,
			Confidence:       confidence,
			ComparableSales:  len(prices),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		di := recs[i].CurrentPrice.Sub(recs[i].MarketPrice).Abs()
		dj := recs[j].CurrentPrice.Sub(recs[j].MarketPrice).Abs()
		return di.GreaterThan(dj)
	})
	if len(recs) > 15 {
		recs = recs[:15]
	}
	return recs, nil
}

func (s *InsightsService) soldItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.Where("listing_status = ?", models.StatusSold).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
