package controllers

import (
	"errors"
	"net/http"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
	"github.com/xcursi322/prakt/pkg/middleware"
)

// APIController is the token-authenticated JSON API.
type APIController struct {
	auth   *services.AuthService
	orders *services.OrderService
}

func NewAPIController() *APIController {
	return &APIController{
		auth:   services.NewAuthService(),
		orders: services.NewOrderService(),
	}
}

// Login issues a bearer token.
func (ac *APIController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.Bind(&in) {
		return
	}

	token, customer, err := ac.auth.IssueToken(c.Context(), in)
	if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrInactive) {
		c.Error(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Success(map[string]any{
		"token":    token,
		"customer": customer,
	})
}

// Orders lists the token owner's orders.
func (ac *APIController) Orders(c *ctx.Context) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}
	orders, err := ac.orders.ForCustomer(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Order shows one of the token owner's orders.
func (ac *APIController) Order(c *ctx.Context) {
	customerID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}
	orderID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	order, err := ac.orders.Find(orderID, customerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

type statusInput struct {
	Status string `json:"status" validate:"nullable,in=processing,shipped,completed"`
}

// AdvanceStatus moves an order to its next status. Admin only.
func (ac *APIController) AdvanceStatus(c *ctx.Context) {
	orderID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	var in statusInput
	if !c.Bind(&in) {
		return
	}

	order, err := ac.orders.Advance(c.Context(), orderID, models.OrderStatus(in.Status))
	if errors.Is(err, services.ErrInvalidTransition) {
		c.Error(http.StatusConflict, "Order is "+string(order.Status)+"; it can only move to the next status")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
