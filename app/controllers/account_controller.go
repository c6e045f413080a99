package controllers

import (
	"errors"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
)

// AccountController serves registration, login, logout, the profile and
// the customer's order history.
type AccountController struct {
	auth   *services.AuthService
	orders *services.OrderService
}

func NewAccountController() *AccountController {
	return &AccountController{
		auth:   services.NewAuthService(),
		orders: services.NewOrderService(),
	}
}

// guestOnly sends logged-in customers to their profile.
func (ac *AccountController) guestOnly(c *ctx.Context) bool {
	if _, ok := customerID(c); ok {
		c.Redirect("/profile")
		return false
	}
	return true
}

func (ac *AccountController) RegisterForm(c *ctx.Context) {
	if ac.guestOnly(c) {
		c.Success(map[string]any{"form": "register"})
	}
}

// Register creates the account and logs the customer in.
func (ac *AccountController) Register(c *ctx.Context) {
	if !ac.guestOnly(c) {
		return
	}

	var in services.RegisterInput
	if !c.Bind(&in) {
		return
	}

	customer, err := ac.auth.Register(in)
	if err != nil {
		fail(c, err)
		return
	}
	if err := services.LoginSession(c.Session(), customer); err != nil {
		fail(c, err)
		return
	}
	c.Created(customer)
}

func (ac *AccountController) LoginForm(c *ctx.Context) {
	if ac.guestOnly(c) {
		c.Success(map[string]any{"form": "login", "next": c.Query("next")})
	}
}

// Login checks the credentials and binds the customer to the session.
func (ac *AccountController) Login(c *ctx.Context) {
	if !ac.guestOnly(c) {
		return
	}

	var in services.LoginInput
	if !c.Bind(&in) {
		return
	}

	customer, err := ac.auth.Authenticate(c.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.ValidationError(map[string]string{services.FormError: "Invalid username or password."})
		return
	case errors.Is(err, services.ErrInactive):
		c.ValidationError(map[string]string{services.FormError: "This account is disabled."})
		return
	case err != nil:
		fail(c, err)
		return
	}

	if err := services.LoginSession(c.Session(), customer); err != nil {
		fail(c, err)
		return
	}
	c.Success(customer)
}

// Logout forgets the customer; the cart stays.
func (ac *AccountController) Logout(c *ctx.Context) {
	services.LogoutSession(c.Session())
	c.Redirect("/")
}

func (ac *AccountController) Profile(c *ctx.Context) {
	id, _ := customerID(c)
	customer, err := ac.auth.Customer(id)
	if err != nil {
		ac.staleSession(c, err)
		return
	}
	c.Success(customer)
}

func (ac *AccountController) UpdateProfile(c *ctx.Context) {
	id, _ := customerID(c)

	var in services.ProfileInput
	if !c.Bind(&in) {
		return
	}

	customer, err := ac.auth.UpdateProfile(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(customer)
}

// Orders lists the customer's orders, newest first.
func (ac *AccountController) Orders(c *ctx.Context) {
	id, _ := customerID(c)
	orders, err := ac.orders.ForCustomer(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// staleSession logs out a session whose customer was deleted or disabled.
func (ac *AccountController) staleSession(c *ctx.Context, err error) {
	if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrInactive) {
		services.LogoutSession(c.Session())
		c.Redirect("/login")
		return
	}
	fail(c, err)
}
