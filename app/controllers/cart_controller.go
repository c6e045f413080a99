package controllers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
	"github.com/xcursi322/prakt/pkg/logger"
)

const flashCart = "cart_message"

type CartController struct {
	cart *services.CartService
}

func NewCartController() *CartController {
	return &CartController{cart: services.NewCartService()}
}

// cartPayload is what script requests to the cart endpoints receive.
type cartPayload struct {
	Success   bool            `json:"success"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	CartCount int             `json:"cart_count"`
	Removed   bool            `json:"removed"`
	Empty     bool            `json:"empty"`
	Partial   *bool           `json:"partial,omitempty"`
	Message   string          `json:"message,omitempty"`
}

type addInput struct {
	Quantity int `json:"quantity"`
}

// Index shows the priced cart.
func (cc *CartController) Index(c *ctx.Context) {
	summary, err := cc.cart.Summary(c.Session())
	if err != nil {
		fail(c, err)
		return
	}

	var message string
	c.Session().GetFlash(flashCart, &message)
	c.Success(map[string]any{
		"cart":    summary,
		"message": message,
	})
}

// Add puts the requested quantity in the cart, capped by stock.
func (cc *CartController) Add(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	var in addInput
	if !c.Bind(&in) {
		return
	}

	res, err := cc.cart.Add(c.Session(), id, in.Quantity)
	if errors.Is(err, services.ErrNotFound) {
		cc.notFound(c)
		return
	}

	partial := res.Partial
	var message string
	switch {
	case errors.Is(err, services.ErrOutOfStock):
		message = "This product is out of stock."
	case errors.Is(err, services.ErrMaxReached):
		message = "You already have the maximum available quantity in your cart."
	case err != nil:
		fail(c, err)
		return
	case partial:
		message = "Only part of the requested quantity was added: not enough stock."
	default:
		message = "Added to cart."
	}

	cc.reply(c, id, err == nil, message, &partial)
}

// Increase adds one unit of a product already in the cart.
func (cc *CartController) Increase(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	_, err := cc.cart.Increase(c.Session(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		cc.notFound(c)
	case errors.Is(err, services.ErrMaxReached):
		cc.reply(c, id, false, "No more units in stock.", nil)
	case err != nil:
		fail(c, err)
	default:
		cc.reply(c, id, true, "", nil)
	}
}

// Decrease removes one unit.
func (cc *CartController) Decrease(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	if _, err := cc.cart.Decrease(c.Session(), id); err != nil {
		fail(c, err)
		return
	}
	cc.reply(c, id, true, "", nil)
}

// Remove drops the product's line.
func (cc *CartController) Remove(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	if err := cc.cart.Remove(c.Session(), id); err != nil {
		fail(c, err)
		return
	}
	cc.reply(c, id, true, "", nil)
}

// reply answers a cart mutation: the payload for script requests, a
// redirect back to the cart otherwise.
func (cc *CartController) reply(c *ctx.Context, productID uint, success bool, message string, partial *bool) {
	if !c.IsXHR() {
		if message != "" {
			if err := c.Session().Flash(flashCart, message); err != nil {
				logger.WithCtx(c.Context()).Warn("cart flash failed", "error", err)
			}
		}
		c.Redirect("/cart")
		return
	}

	summary, err := cc.cart.Summary(c.Session())
	if err != nil {
		fail(c, err)
		return
	}

	payload := cartPayload{
		Success:   success,
		ProductID: productID,
		Total:     summary.Total,
		Subtotal:  decimal.Zero,
		CartCount: summary.Count,
		Removed:   true,
		Empty:     len(summary.Items) == 0,
		Partial:   partial,
		Message:   message,
	}
	if item, ok := summary.Item(productID); ok {
		payload.Quantity = item.Quantity
		payload.Subtotal = item.Subtotal
		payload.Removed = false
	}
	c.JSON(http.StatusOK, payload)
}

func (cc *CartController) notFound(c *ctx.Context) {
	if c.IsXHR() {
		c.JSON(http.StatusNotFound, cartPayload{Message: "Product not found."})
		return
	}
	c.NotFound()
}
