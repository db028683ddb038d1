package database

import (
	"fmt"

	"github.com/juanbracho/girasoulresale/internal/models"

	"gorm.io/gorm"
)

var defaultCategories = map[string][]string{
	models.CategoryTypeInventory: {
		"Tops", "Bottoms", "Dresses", "Outerwear", "Shoes", "Accessories",
	},
	models.CategoryTypeTransaction: {
		models.CategoryInventoryPurchase,
		models.CategoryInventoryAdjustment,
		models.CategorySalesRevenue,
		models.CategoryEquipmentSupplies,
		models.CategoryOtherIncome,
		"Office Supplies", "Shipping", "Fees",
	},
	models.CategoryTypeAsset: {
		"Equipment", "Furniture", "Technology",
	},
}

var defaultConditions = []string{"NWT", "NWOT", "Excellent", "Good", "Fair"}

// SeedDefaults inserts the default category and condition vocabularies.
// Existing rows, including deactivated ones, are left alone.
func SeedDefaults(db *gorm.DB) error {
	for categoryType, names := range defaultCategories {
		for _, name := range names {
			var count int64
			err := db.Model(&models.Category{}).
				Where("name = ? AND category_type = ?", name, categoryType).
				Count(&count).Error
			if err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
			if count > 0 {
				continue
			}
			cat := models.Category{
				Name:         name,
				CategoryType: categoryType,
				IsDefault:    true,
				IsActive:     true,
			}
			if err := db.Create(&cat).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
	}

	for _, name := range defaultConditions {
		var count int64
		err := db.Model(&models.Condition{}).Where("name = ?", name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("seed conditions: %w", err)
		}
		if count > 0 {
			continue
		}
		cond := models.Condition{Name: name, IsDefault: true, IsActive: true}
		if err := db.Create(&cond).Error; err != nil {
			return fmt.Errorf("seed conditions: %w", err)
		}
	}
	return nil
}
