package handler

import (
	"net/http"
	"testing"

	"storefront-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRoundTrip(t *testing.T) {
	e := setupTest(t)

	created := createTestCategory(t, e, "Мёд", "honey")
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Мёд", created.Name)
	assert.Equal(t, "honey", created.Slug)

	rec := doRequest(t, e, http.MethodGet, "/api/categories", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []model.Category
	decodeBody(t, rec, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, created.ID, categories[0].ID)
	assert.Equal(t, "Мёд", categories[0].Name)
	assert.Equal(t, "honey", categories[0].Slug)
}

func TestListCategoriesOrderedByName(t *testing.T) {
	e := setupTest(t)

	createTestCategory(t, e, "Candles", "candles")
	createTestCategory(t, e, "Accessories", "accessories")
	createTestCategory(t, e, "Bee products", "bee-products")

	rec := doRequest(t, e, http.MethodGet, "/api/categories", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []model.Category
	decodeBody(t, rec, &categories)
	require.Len(t, categories, 3)
	assert.Equal(t, "Accessories", categories[0].Name)
	assert.Equal(t, "Bee products", categories[1].Name)
	assert.Equal(t, "Candles", categories[2].Name)
}

func TestUpdateCategory(t *testing.T) {
	e := setupTest(t)

	created := createTestCategory(t, e, "Honey", "honey")

	rec := doRequest(t, e, http.MethodPut, "/api/categories/"+created.ID,
		CategoryRequest{Name: "Raw Honey", Slug: "raw-honey"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Category
	decodeBody(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Raw Honey", updated.Name)
	assert.Equal(t, "raw-honey", updated.Slug)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPut, "/api/categories/missing",
		CategoryRequest{Name: "x", Slug: "x"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategoryNullifiesProducts(t *testing.T) {
	e := setupTest(t)

	category := createTestCategory(t, e, "Honey", "honey")
	product := createTestProduct(t, e, ProductRequest{
		Name:       "Wildflower Honey",
		CategoryID: &category.ID,
		BasePrice:  decimal.NewFromInt(1200),
	})
	require.NotNil(t, product.CategoryID)

	rec := doRequest(t, e, http.MethodDelete, "/api/categories/"+category.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	// The product survives with its category reference cleared
	rec = doRequest(t, e, http.MethodGet, "/api/products/"+product.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Product
	decodeBody(t, rec, &got)
	assert.Nil(t, got.CategoryID)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodDelete, "/api/categories/missing", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/categories", map[string]string{"name": "Honey"}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCategoryWritesRequireAdmin(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/categories",
		CategoryRequest{Name: "Honey", Slug: "honey"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
