package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/internal/testdb"
)

func TestCatalogListFiltersAndSorts(t *testing.T) {
	db := testdb.Open(t)
	proteins := models.Category{Name: "Proteins"}
	require.NoError(t, db.Create(&proteins).Error)

	whey := newProduct(t, db, "Whey Protein", 900, 5)
	casein := newProduct(t, db, "Casein Protein", 700, 5)
	newProduct(t, db, "Creatine", 300, 5)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id IN ?", []uint{whey.ID, casein.ID}).
		Update("category_id", proteins.ID).Error)

	svc := services.NewCatalogService()

	listing, err := svc.List(services.ListParams{Query: "PROTEIN", Sort: repositories.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, listing.Products, 2)
	assert.Equal(t, casein.ID, listing.Products[0].ID)
	assert.Equal(t, whey.ID, listing.Products[1].ID)

	listing, err = svc.List(services.ListParams{CategoryID: proteins.ID, Sort: repositories.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, listing.Products, 2)
	assert.Equal(t, whey.ID, listing.Products[0].ID)
	require.NotNil(t, listing.Category)
	assert.Equal(t, "Proteins", listing.Category.Name)

	_, err = svc.List(services.ListParams{CategoryID: 999})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogPagination(t *testing.T) {
	db := testdb.Open(t)
	for i := 0; i < 5; i++ {
		newProduct(t, db, "Bar", 10, 5)
	}

	listing, err := services.NewCatalogService().List(services.ListParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 2)
	assert.Equal(t, int64(5), listing.Pagination.Total)
	assert.Equal(t, 3, listing.Pagination.TotalPages)
	assert.Equal(t, 2, listing.Pagination.Page)
}

func TestCatalogRatingDefaultsToFive(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Unrated", 10, 5)

	listing, err := services.NewCatalogService().List(services.ListParams{})
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, p.ID, listing.Products[0].ID)
	assert.Equal(t, services.DefaultRating, listing.Products[0].AvgRating)
}

func TestFeaturedReturnsSix(t *testing.T) {
	db := testdb.Open(t)
	for i := 0; i < 8; i++ {
		newProduct(t, db, "Item", 10, 5)
	}

	featured, err := services.NewCatalogService().Featured()
	require.NoError(t, err)
	assert.Len(t, featured, services.FeaturedCount)
}

func TestCategoriesAreCached(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&models.Category{Name: "Vitamins"}).Error)
	svc := services.NewCatalogService()

	first, err := svc.Categories()
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, db.Create(&models.Category{Name: "Amino"}).Error)
	cached, err := svc.Categories()
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	require.NoError(t, svc.ForgetCategories())
	fresh, err := svc.Categories()
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}
