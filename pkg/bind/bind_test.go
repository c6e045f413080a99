package bind_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/pkg/bind"
)

type addInput struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Note     string `json:"note,omitempty"`
}

func TestFormDecodesWeaklyTypedValues(t *testing.T) {
	body := url.Values{"quantity": {"5"}, "note": {"gift"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/add_to_cart/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in addInput
	errs, err := bind.Request(req, &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, 5, in.Quantity)
	assert.Equal(t, "gift", in.Note)
}

func TestFormReadsQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/add_to_cart/1?quantity=2", nil)

	var in addInput
	_, err := bind.Form(req, &in)
	require.NoError(t, err)
	assert.Equal(t, 2, in.Quantity)
}

func TestFormRejectsNonNumber(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/add_to_cart/1?quantity=lots", nil)

	var in addInput
	_, err := bind.Form(req, &in)
	assert.Error(t, err)
}

func TestJSONValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":-1}`))
	req.Header.Set("Content-Type", "application/json")

	var in addInput
	errs, err := bind.Request(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "quantity")
}

func TestJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	var in addInput
	_, err := bind.JSON(req, &in)
	assert.ErrorContains(t, err, "invalid JSON")
}
