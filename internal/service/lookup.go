package service

import (
	"errors"
	"strings"

	"github.com/juanbracho/girasoulresale/internal/models"
	"github.com/juanbracho/girasoulresale/internal/util"

	"gorm.io/gorm"
)

// LookupService owns the user-editable dropdown vocabularies: categories
// (scoped by type) and item conditions. Rows are soft-retired through
// is_active so historical records keep their labels.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name         string `json:"name"`
	CategoryType string `json:"category_type"`
	Description  string `json:"description"`
}

func (in *CategoryInput) Validate() error {
	if err := util.RequireString(in.Name, "name", 2, 50); err != nil {
		return validationErr("name", err.Error())
	}
	valid := false
	for _, t := range models.CategoryTypes {
		if in.CategoryType == t {
			valid = true
			break
		}
	}
	if !valid {
		return validationErr("category_type", "unknown category type")
	}
	return nil
}

// ListCategories returns the active categories of one type, sorted by name.
func (s *LookupService) ListCategories(categoryType string) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Where("category_type = ? AND is_active = ?", categoryType, true).
		Order("name").Find(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds a category. Names are unique per type,
// case-insensitively; an inactive row with the same name is revived instead
// of duplicated.
func (s *LookupService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var cat models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		err := tx.Where("lower(name) = ? AND category_type = ?", strings.ToLower(name), in.CategoryType).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.IsActive {
				return ErrDuplicateName
			}
			existing.IsActive = true
			existing.Description = in.Description
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			cat = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			cat = models.Category{
				Name:         name,
				CategoryType: in.CategoryType,
				Description:  in.Description,
				IsActive:     true,
			}
			return tx.Create(&cat).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeactivateCategory retires a category. Default categories stay.
func (s *LookupService) DeactivateCategory(id uint) error {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if cat.IsDefault {
		return validationErr("id", "default categories cannot be removed")
	}
	return s.db.Model(&cat).Update("is_active", false).Error
}

// ConditionInput is the create payload for an item condition.
type ConditionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in *ConditionInput) Validate() error {
	if err := util.RequireString(in.Name, "name", 1, 20); err != nil {
		return validationErr("name", err.Error())
	}
	return nil
}

// ListConditions returns the active conditions, sorted by name.
func (s *LookupService) ListConditions() ([]models.Condition, error) {
	var conds []models.Condition
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&conds).Error; err != nil {
		return nil, err
	}
	return conds, nil
}

// CreateCondition adds a condition with the same case-insensitive
// revive-or-reject behavior as categories.
func (s *LookupService) CreateCondition(in ConditionInput) (*models.Condition, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	var cond models.Condition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Condition
		err := tx.Where("lower(name) = ?", strings.ToLower(name)).First(&existing).Error
		switch {
		case err == nil:
			if existing.IsActive {
				return ErrDuplicateName
			}
			existing.IsActive = true
			existing.Description = in.Description
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			cond = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			cond = models.Condition{Name: name, Description: in.Description, IsActive: true}
			if err := tx.Create(&cond).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDuplicateName
				}
				return err
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &cond, nil
}

// DeactivateCondition retires a condition. Defaults stay.
func (s *LookupService) DeactivateCondition(id uint) error {
	var cond models.Condition
	if err := s.db.First(&cond, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if cond.IsDefault {
		return validationErr("id", "default conditions cannot be removed")
	}
	return s.db.Model(&cond).Update("is_active", false).Error
}
