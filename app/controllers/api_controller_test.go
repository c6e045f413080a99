package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiLogin(t *testing.T, b *browser, username string) {
	t.Helper()
	rec := b.postJSON("/api/login", map[string]string{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := data(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	b.bearer = token
}

func placeOrder(t *testing.T, b *browser, productID uint) uint {
	t.Helper()
	b.xhr(path("/add_to_cart/{id}", productID), nil)
	rec := b.post("/checkout", checkoutForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := data(t, rec)["order"].(map[string]any)["id"].(float64)
	return uint(id)
}

func TestAPILogin(t *testing.T) {
	b, db := newBrowser(t)
	newCustomer(t, db, "buyer", false)

	rec := b.postJSON("/api/login", map[string]string{"username": "buyer", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, b.get("/api/orders").Code)

	apiLogin(t, b, "buyer")
	rec = b.get("/api/orders")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIOrdersAreScoped(t *testing.T) {
	b, db := newBrowser(t)
	p := newProduct(t, db, "Whey", 100, 5)
	newCustomer(t, db, "buyer", false)
	newCustomer(t, db, "stranger", false)

	b.login("buyer")
	orderID := placeOrder(t, b, p.ID)

	apiLogin(t, b, "buyer")
	rec := b.get(path("/api/orders/{id}", orderID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new", data(t, rec)["status"])

	apiLogin(t, b, "stranger")
	assert.Equal(t, http.StatusNotFound, b.get(path("/api/orders/{id}", orderID)).Code)
}

func TestAPIAdvanceStatusIsAdminOnly(t *testing.T) {
	b, db := newBrowser(t)
	p := newProduct(t, db, "Whey", 100, 5)
	newCustomer(t, db, "buyer", false)
	newCustomer(t, db, "admin", true)

	orderID := placeOrder(t, b, p.ID)
	statusURL := path("/api/orders/{id}/status", orderID)

	apiLogin(t, b, "buyer")
	assert.Equal(t, http.StatusForbidden, b.post(statusURL, nil).Code)

	apiLogin(t, b, "admin")
	rec := b.post(statusURL, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "processing", data(t, rec)["status"])

	rec = b.post(statusURL, url.Values{"status": {"completed"}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = b.post(statusURL, url.Values{"status": {"shipped"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", data(t, rec)["status"])
}

func TestGraphQLCatalog(t *testing.T) {
	b, db := newBrowser(t)
	newProduct(t, db, "Whey Protein", 900, 5)
	newProduct(t, db, "Casein Protein", 700, 0)
	newProduct(t, db, "Creatine", 300, 5)

	rec := b.postJSON("/graphql", map[string]any{
		"query": `query ($q: String) { products(q: $q, sort: "price_asc") { total items { name price inStock avgRating } } }`,
		"variables": map[string]any{"q": "protein"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Nil(t, body["errors"], rec.Body.String())
	products := body["data"].(map[string]any)["products"].(map[string]any)
	assert.EqualValues(t, 2, products["total"])

	items := products["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Casein Protein", first["name"])
	assert.Equal(t, "700.00", first["price"])
	assert.Equal(t, false, first["inStock"])
	assert.EqualValues(t, 5, first["avgRating"])

	rec = b.postJSON("/graphql", map[string]any{"query": `{ product(id: 999) { name } }`})
	body = decode(t, rec)
	assert.Nil(t, body["data"].(map[string]any)["product"])
}
