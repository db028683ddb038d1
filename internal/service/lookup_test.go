package service

import (
	"testing"

	"github.com/juanbracho/girasoulresale/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_DuplicateIsCaseInsensitive(t *testing.T) {
	svc := NewLookupService(newTestDB(t))

	_, err := svc.CreateCategory(CategoryInput{Name: "Outerwear", CategoryType: models.CategoryTypeInventory})
	require.NoError(t, err)

	_, err = svc.CreateCategory(CategoryInput{Name: "OUTERWEAR", CategoryType: models.CategoryTypeInventory})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// same name under a different type is fine
	_, err = svc.CreateCategory(CategoryInput{Name: "Outerwear", CategoryType: models.CategoryTypeTransaction})
	assert.NoError(t, err)
}

func TestCreateCategory_RevivesInactive(t *testing.T) {
	svc := NewLookupService(newTestDB(t))

	cat, err := svc.CreateCategory(CategoryInput{Name: "Shoes", CategoryType: models.CategoryTypeInventory})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateCategory(cat.ID))

	revived, err := svc.CreateCategory(CategoryInput{Name: "shoes", CategoryType: models.CategoryTypeInventory})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, revived.ID, "inactive row is revived, not duplicated")
	assert.True(t, revived.IsActive)
}

func TestCreateCategory_UnknownType(t *testing.T) {
	svc := NewLookupService(newTestDB(t))

	_, err := svc.CreateCategory(CategoryInput{Name: "Misc", CategoryType: "mystery"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestDeactivateCategory_DefaultProtected(t *testing.T) {
	db := newTestDB(t)
	svc := NewLookupService(db)

	cat := models.Category{Name: "Clothing", CategoryType: models.CategoryTypeInventory, IsDefault: true, IsActive: true}
	require.NoError(t, db.Create(&cat).Error)

	err := svc.DeactivateCategory(cat.ID)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestListCategories_ScopedAndActive(t *testing.T) {
	svc := NewLookupService(newTestDB(t))

	_, err := svc.CreateCategory(CategoryInput{Name: "Outerwear", CategoryType: models.CategoryTypeInventory})
	require.NoError(t, err)
	retired, err := svc.CreateCategory(CategoryInput{Name: "Retired", CategoryType: models.CategoryTypeInventory})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateCategory(retired.ID))
	_, err = svc.CreateCategory(CategoryInput{Name: "Equipment", CategoryType: models.CategoryTypeAsset})
	require.NoError(t, err)

	cats, err := svc.ListCategories(models.CategoryTypeInventory)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Outerwear", cats[0].Name)
}

func TestConditionLifecycle(t *testing.T) {
	svc := NewLookupService(newTestDB(t))

	cond, err := svc.CreateCondition(ConditionInput{Name: "NWT", Description: "New with tags"})
	require.NoError(t, err)

	_, err = svc.CreateCondition(ConditionInput{Name: "nwt"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	require.NoError(t, svc.DeactivateCondition(cond.ID))

	conds, err := svc.ListConditions()
	require.NoError(t, err)
	assert.Empty(t, conds)

	revived, err := svc.CreateCondition(ConditionInput{Name: "NWT"})
	require.NoError(t, err)
	assert.Equal(t, cond.ID, revived.ID)
}
