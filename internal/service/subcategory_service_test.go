package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcategoryCreateUnknownCategory(t *testing.T) {
	svc := NewSubcategoryService(newFakeSubcategoryRepo(), newFakeCategoryRepo())

	_, err := svc.Create(context.Background(), SubcategoryCreateInput{Name: "Mouse", CategoryID: "cat-404"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestSubcategoryCreateDuplicateWithinCategory(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	hardware := categories.add("Hardware")
	subs.add("Mouse", hardware.ID)
	svc := NewSubcategoryService(subs, categories)

	_, err := svc.Create(context.Background(), SubcategoryCreateInput{Name: "Mouse", CategoryID: hardware.ID})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainErrCode(t, err))
}

func TestSubcategorySameNameAcrossCategories(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	hardware := categories.add("Hardware")
	network := categories.add("Network")
	subs.add("Other", hardware.ID)
	svc := NewSubcategoryService(subs, categories)

	// the uniqueness rule is scoped per category
	subcategory, err := svc.Create(context.Background(), SubcategoryCreateInput{Name: "Other", CategoryID: network.ID})
	require.NoError(t, err)
	assert.Equal(t, network.ID, subcategory.CategoryID)
}

func TestSubcategoryListByCategory(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	hardware := categories.add("Hardware")
	network := categories.add("Network")
	subs.add("Mouse", hardware.ID)
	svc := NewSubcategoryService(subs, categories)

	got, err := svc.ListByCategory(context.Background(), hardware.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// a known category with no subcategories yields an empty list
	got, err = svc.ListByCategory(context.Background(), network.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ListByCategory(context.Background(), "cat-404")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestSubcategoryUpdateReparents(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	hardware := categories.add("Hardware")
	network := categories.add("Network")
	mouse := subs.add("Mouse", hardware.ID)
	svc := NewSubcategoryService(subs, categories)

	updated, err := svc.Update(context.Background(), mouse.ID, SubcategoryUpdate{CategoryID: &network.ID})
	require.NoError(t, err)
	assert.Equal(t, network.ID, updated.CategoryID)

	missing := "cat-404"
	_, err = svc.Update(context.Background(), mouse.ID, SubcategoryUpdate{CategoryID: &missing})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestSubcategoryUpdateRenameIntoExistingPair(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	hardware := categories.add("Hardware")
	subs.add("Mouse", hardware.ID)
	keyboard := subs.add("Keyboard", hardware.ID)
	svc := NewSubcategoryService(subs, categories)

	// the duplicate check applies to creation only; renames may collide
	name := "Mouse"
	updated, err := svc.Update(context.Background(), keyboard.ID, SubcategoryUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mouse", updated.Name)
}

func TestSubcategoryListEmptyIsNotFound(t *testing.T) {
	svc := NewSubcategoryService(newFakeSubcategoryRepo(), newFakeCategoryRepo())

	_, err := svc.ListAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}
