package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xcursi322/prakt/app/repositories"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrMaxReached         = errors.New("maximum available quantity already in cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactive           = errors.New("account is disabled")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidTransition  = errors.New("order status cannot advance")
)

// FormError is the key used for errors that do not belong to one field.
const FormError = "form"

// FieldErrors maps input field names to messages. It is returned as an
// error by services so controllers can answer 422 with the map.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StockConflictError lists the products whose requested quantity exceeds
// the stock found at commit time.
type StockConflictError struct {
	Products []string
}

func (e *StockConflictError) Error() string {
	return "insufficient stock for: " + strings.Join(e.Products, ", ")
}

// Message is the customer-facing text shown under the checkout form.
func (e *StockConflictError) Message() string {
	return "Not enough stock for: " + strings.Join(e.Products, ", ") + ". Please update your cart."
}
