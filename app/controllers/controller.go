// Package controllers holds the storefront and API HTTP handlers. Handlers
// translate requests into service calls and service errors into responses;
// they hold no business rules of their own.
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
	"github.com/xcursi322/prakt/pkg/logger"
	"github.com/xcursi322/prakt/pkg/response"
	"github.com/xcursi322/prakt/pkg/session"
)

// fail writes the response for a service error.
func fail(c *ctx.Context, err error) {
	var fields services.FieldErrors
	var conflict *services.StockConflictError

	switch {
	case errors.As(err, &fields):
		c.ValidationError(fields)
	case errors.As(err, &conflict):
		c.ValidationError(map[string]string{services.FormError: conflict.Message()})
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrForbidden):
		c.Error(http.StatusForbidden, "Forbidden")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// customerID returns the logged-in customer of the request session.
func customerID(c *ctx.Context) (uint, bool) {
	return services.CurrentCustomerID(c.Session())
}

func productURL(id uint) string {
	return "/product/" + strconv.FormatUint(uint64(id), 10)
}

// LoginRequired sends anonymous visitors to the login page. Script requests
// get a 401 instead of a redirect.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := services.CurrentCustomerID(session.FromCtx(r)); ok {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
			response.Unauthorized(w)
			return
		}
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
	})
}
