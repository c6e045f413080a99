package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeAndDelivery(t *testing.T) {
	b, db := newBrowser(t)
	for i := 0; i < 8; i++ {
		newProduct(t, db, "Bar", 70, 5)
	}

	home := data(t, b.get("/"))
	assert.Len(t, home["products"], 6)

	rules := data(t, b.get("/delivery"))["rules"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, "np_branch", rules[0].(map[string]any)["method"])
}

func TestCatalogScriptPayload(t *testing.T) {
	b, db := newBrowser(t)
	newProduct(t, db, "Whey Protein", 900, 5)
	newProduct(t, db, "Creatine", 300, 5)

	req := httptest.NewRequest(http.MethodGet, "/catalog?q=whey", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	body := decode(t, b.do(req))

	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["products_count"])
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.EqualValues(t, 5, products[0].(map[string]any)["avg_rating"])
}

func TestCatalogUnknownCategory(t *testing.T) {
	b, _ := newBrowser(t)

	assert.Equal(t, http.StatusNotFound, b.get("/catalog?category=42").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/catalog?category=abc").Code)
}

func TestProductPage(t *testing.T) {
	b, db := newBrowser(t)
	p := newProduct(t, db, "Whey", 100, 5)

	page := data(t, b.get(path("/product/{id}", p.ID)))
	assert.Equal(t, "Whey", page["product"].(map[string]any)["name"])
	assert.Nil(t, page["customer_id"])
	assert.Equal(t, false, page["is_admin"])

	assert.Equal(t, http.StatusNotFound, b.get("/product/999").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/product/abc").Code)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	b, _ := newBrowser(t)

	rec := b.get("/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.EqualValues(t, 404, decode(t, rec)["status"])
}
