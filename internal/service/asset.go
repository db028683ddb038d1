package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/juanbracho/girasoulresale/internal/config"
	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetService owns business assets. Acquisitions and disposals follow the
// same linked-transaction protocol as inventory: the asset row and its
// financial counterpart commit or roll back together.
type AssetService struct {
	db          *gorm.DB
	accountName string
}

func NewAssetService(db *gorm.DB, cfg config.AppConfig) *AssetService {
	return &AssetService{db: db, accountName: cfg.AccountName}
}

// AssetInput is the acquisition payload.
type AssetInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AssetCategory string `json:"asset_category"`
	AssetType     string `json:"asset_type"`
	PurchaseDate  string `json:"purchase_date"`
	PurchasePrice string `json:"purchase_price"`

	purchaseDate  time.Time
	purchasePrice decimal.Decimal
}

func (in *AssetInput) Validate() error {
	if err := util.RequireString(in.Name, "name", 2, 100); err != nil {
		return validationErr("name", err.Error())
	}
	if err := util.RequireString(in.AssetCategory, "asset_category", 2, 50); err != nil {
		return validationErr("asset_category", err.Error())
	}
	if err := util.RequireString(in.AssetType, "asset_type", 2, 50); err != nil {
		return validationErr("asset_type", err.Error())
	}

	price, err := util.ParseCurrency(in.PurchasePrice, "purchase_price", false)
	if err != nil {
		return validationErr("purchase_price", err.Error())
	}
	in.purchasePrice = price

	date, err := util.ParseDate(in.PurchaseDate, "purchase_date")
	if err != nil {
		return validationErr("purchase_date", err.Error())
	}
	in.purchaseDate = date

	return nil
}

// CreateAsset stores a new asset and its purchase Expense transaction in one
// unit of work.
func (s *AssetService) CreateAsset(in AssetInput) (*models.Asset, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var asset models.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		asset = models.Asset{
			Name:          in.Name,
			Description:   in.Description,
			AssetCategory: in.AssetCategory,
			AssetType:     in.AssetType,
			PurchaseDate:  in.purchaseDate,
			PurchasePrice: in.purchasePrice,
			IsActive:      true,
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		txn := models.Transaction{
			Date:            in.purchaseDate,
			Description:     fmt.Sprintf("Asset Purchase: %s", asset.Name),
			Amount:          asset.PurchasePrice,
			Category:        models.CategoryEquipmentSupplies,
			TransactionType: models.TypeExpense,
			AccountName:     s.accountName,
			Notes:           fmt.Sprintf("Purchase of business asset: %s", asset.Name),
		}
		if err := tx.Create(&txn).Error; err != nil {
			return &LinkedWriteError{Op: "create asset", Err: err}
		}

		asset.LinkedTransactionID = &txn.ID
		return tx.Model(&models.Asset{}).Where("id = ?", asset.ID).
			Update("linked_transaction_id", txn.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// DisposeInput is the disposal payload. Date defaults to today; value
// defaults to zero (scrapped).
type DisposeInput struct {
	DisposalDate  string `json:"disposal_date"`
	DisposalValue string `json:"disposal_value"`
}

// DisposeAsset marks an asset inactive and, when the disposal value is
// positive, records the Income transaction in the same unit of work. A
// zero-value disposal writes no transaction.
func (s *AssetService) DisposeAsset(id uint, in DisposeInput) (*models.Asset, error) {
	value := decimal.Zero
	if in.DisposalValue != "" {
		parsed, err := util.ParseCurrency(in.DisposalValue, "disposal_value", true)
		if err != nil {
			return nil, validationErr("disposal_value", err.Error())
		}
		value = parsed
	}
	date := today()
	if in.DisposalDate != "" {
		parsed, err := util.ParseDate(in.DisposalDate, "disposal_date")
		if err != nil {
			return nil, validationErr("disposal_date", err.Error())
		}
		date = parsed
	}

	var asset models.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !asset.IsActive {
			return ErrAlreadyDisposed
		}

		asset.IsActive = false
		asset.DisposalDate = &date
		asset.DisposalValue = &value
		if err := tx.Save(&asset).Error; err != nil {
			return err
		}

		if value.IsPositive() {
			txn := models.Transaction{
				Date:            date,
				Description:     fmt.Sprintf("Asset Disposal: %s", asset.Name),
				Amount:          value,
				Category:        models.CategoryOtherIncome,
				TransactionType: models.TypeIncome,
				AccountName:     s.accountName,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return &LinkedWriteError{Op: "dispose asset", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Get returns a single asset by id.
func (s *AssetService) Get(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// AssetFilters narrows List results. ActiveOnly keeps disposed assets out.
type AssetFilters struct {
	Category   string
	ActiveOnly bool
}

// List returns assets matching the filters, newest purchase first.
func (s *AssetService) List(f AssetFilters) ([]models.Asset, error) {
	q := s.db.Model(&models.Asset{})
	if f.Category != "" {
		q = q.Where("asset_category = ?", f.Category)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var assets []models.Asset
	if err := q.Order("purchase_date DESC, id DESC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// AssetCategorySummary is the active valuation of one asset category.
type AssetCategorySummary struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// AssetSummary aggregates assets for the dashboard.
type AssetSummary struct {
	ActiveCount        int                    `json:"active_count"`
	ActiveValue        decimal.Decimal        `json:"active_value"`
	DisposedCount      int                    `json:"disposed_count"`
	DisposalProceeds   decimal.Decimal        `json:"disposal_proceeds"`
	CategoryBreakdowns []AssetCategorySummary `json:"category_breakdowns"`
}

// Summary computes active counts/valuation and the by-category breakdown.
func (s *AssetService) Summary() (*AssetSummary, error) {
	assets, err := s.List(AssetFilters{})
	if err != nil {
		return nil, err
	}

	sum := &AssetSummary{ActiveValue: decimal.Zero, DisposalProceeds: decimal.Zero}
	byCat := make(map[string]*AssetCategorySummary)
	for i := range assets {
		a := &assets[i]
		if !a.IsActive {
			sum.DisposedCount++
			if a.DisposalValue != nil {
				sum.DisposalProceeds = sum.DisposalProceeds.Add(*a.DisposalValue)
			}
			continue
		}
		sum.ActiveCount++
		sum.ActiveValue = sum.ActiveValue.Add(a.PurchasePrice)

		cs, ok := byCat[a.AssetCategory]
		if !ok {
			cs = &AssetCategorySummary{Category: a.AssetCategory, TotalValue: decimal.Zero}
			byCat[a.AssetCategory] = cs
		}
		cs.Count++
		cs.TotalValue = cs.TotalValue.Add(a.PurchasePrice)
	}

	for _, cs := range byCat {
		sum.CategoryBreakdowns = append(sum.CategoryBreakdowns, *cs)
	}
	sort.Slice(sum.CategoryBreakdowns, func(i, j int) bool {
		return sum.CategoryBreakdowns[i].Category < sum.CategoryBreakdowns[j].Category
	})
	return sum, nil
}
