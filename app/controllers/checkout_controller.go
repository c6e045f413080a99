package controllers

import (
	"errors"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	auth     *services.AuthService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{
		checkout: services.NewCheckoutService(),
		auth:     services.NewAuthService(),
	}
}

// Show renders the checkout form: the priced cart, the shipping cost of
// every delivery method and the logged-in customer's saved contact data.
func (cc *CheckoutController) Show(c *ctx.Context) {
	quote, err := cc.checkout.Quote(c.Session())
	if errors.Is(err, services.ErrEmptyCart) {
		c.Redirect("/cart")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	view := map[string]any{"quote": quote, "customer": nil}
	if id, ok := customerID(c); ok {
		if customer, err := cc.auth.Customer(id); err == nil {
			view["customer"] = customer
		}
	}
	c.Success(view)
}

// Place creates the order from the session cart.
func (cc *CheckoutController) Place(c *ctx.Context) {
	var in services.CheckoutInput
	if !c.Bind(&in) {
		return
	}

	var buyer *uint
	if id, ok := customerID(c); ok {
		buyer = &id
	}

	order, err := cc.checkout.PlaceOrder(c.Context(), c.Session(), buyer, in)
	if errors.Is(err, services.ErrEmptyCart) {
		if c.IsXHR() {
			c.ValidationError(map[string]string{services.FormError: "Your cart is empty."})
			return
		}
		c.Redirect("/cart")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Created(orderView(order))
}

func orderView(o *models.Order) map[string]any {
	return map[string]any{
		"order":   o,
		"message": "Thank you! Your order " + o.Number + " has been placed.",
	}
}
