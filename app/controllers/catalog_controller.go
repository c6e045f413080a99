package controllers

import (
	"net/http"
	"strings"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
)

type CatalogController struct {
	catalog *services.CatalogService
	auth    *services.AuthService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{
		catalog: services.NewCatalogService(),
		auth:    services.NewAuthService(),
	}
}

// Home shows the featured products.
func (cc *CatalogController) Home(c *ctx.Context) {
	featured, err := cc.catalog.Featured()
	if err != nil {
		fail(c, err)
		return
	}
	categories, err := cc.catalog.Categories()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{
		"products":   featured,
		"categories": categories,
	})
}

// Delivery shows the shipping rules.
func (cc *CatalogController) Delivery(c *ctx.Context) {
	c.Success(map[string]any{"rules": services.ShippingRules})
}

// Index lists the catalog. Script requests get the short
// {success, products, products_count} payload used by the live filter.
func (cc *CatalogController) Index(c *ctx.Context) {
	params := services.ListParams{
		Query:   strings.TrimSpace(c.Query("q")),
		Sort:    c.Query("sort"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 0),
	}
	if raw := c.Query("category"); raw != "" {
		id := c.QueryInt("category", 0)
		if id <= 0 {
			c.NotFound()
			return
		}
		params.CategoryID = uint(id)
	}

	listing, err := cc.catalog.List(params)
	if err != nil {
		fail(c, err)
		return
	}

	if c.IsXHR() {
		c.JSON(http.StatusOK, map[string]any{
			"success":        true,
			"products":       listing.Products,
			"products_count": listing.Pagination.Total,
		})
		return
	}
	c.Success(listing)
}

// Show is the product page.
func (cc *CatalogController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	detail, err := cc.catalog.Product(id)
	if err != nil {
		fail(c, err)
		return
	}

	view := map[string]any{
		"product":     detail.Product,
		"avg_rating":  detail.AvgRating,
		"reviews":     detail.Reviews,
		"customer_id": nil,
		"is_admin":    false,
	}
	if customerID, ok := customerID(c); ok {
		view["customer_id"] = customerID
		if customer, err := cc.auth.Customer(customerID); err == nil {
			view["is_admin"] = customer.IsAdmin
		}
	}
	c.Success(view)
}
