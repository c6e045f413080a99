package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/internal/kernel"
	"github.com/xcursi322/prakt/internal/testdb"
	"github.com/xcursi322/prakt/pkg/auth"
)

// browser drives the full HTTP kernel and keeps the session cookie between
// requests, like a real client would.
type browser struct {
	t       *testing.T
	handler http.Handler
	session *http.Cookie
	bearer  string
}

func newBrowser(t *testing.T) (*browser, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	k, err := kernel.NewHTTPKernel()
	require.NoError(t, err)
	return &browser{t: t, handler: k.Handler()}, db
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.session != nil {
		req.AddCookie(b.session)
	}
	if b.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+b.bearer)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == config.SessionCookie() {
			b.session = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// xhr posts like the storefront scripts do.
func (b *browser) xhr(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return b.do(req)
}

func (b *browser) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(b.t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) login(username string) {
	b.t.Helper()
	rec := b.post("/login", url.Values{"username": {username}, "password": {"password123"}})
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// data unwraps the {"status":..., "data":...} envelope.
func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decode(t, rec)
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return d
}

func path(format string, id uint) string {
	return strings.Replace(format, "{id}", strconv.FormatUint(uint64(id), 10), 1)
}

func newProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Weight: 1000, Price: decimal.NewFromInt(price), StockQuantity: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func newCustomer(t *testing.T, db *gorm.DB, username string, admin bool) models.Customer {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	c := models.Customer{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsAdmin:  admin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func checkoutForm() url.Values {
	return url.Values{
		"first_name":      {"Ivan"},
		"last_name":       {"Petrenko"},
		"email":           {"ivan@example.com"},
		"phone":           {"+380501112233"},
		"postal_branch":   {"12"},
		"delivery_method": {"branch"},
		"payment_method":  {"cod"},
	}
}
