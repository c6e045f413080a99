package routes

import (
	"net/http"

	"github.com/xcursi322/prakt/app/controllers"
	"github.com/xcursi322/prakt/pkg/ctx"
	"github.com/xcursi322/prakt/pkg/router"
)

var getPost = []string{http.MethodGet, http.MethodPost}

// RegisterWeb mounts the storefront.
func RegisterWeb(r *router.Router) {
	catalog := controllers.NewCatalogController()
	cart := controllers.NewCartController()
	checkout := controllers.NewCheckoutController()
	account := controllers.NewAccountController()
	reviews := controllers.NewReviewController()

	r.Get("/", "home", ctx.Wrap(catalog.Home))
	r.Get("/delivery", "delivery", ctx.Wrap(catalog.Delivery))
	r.Get("/catalog", "catalog", ctx.Wrap(catalog.Index))
	r.Get("/product/{id}", "product.show", ctx.Wrap(catalog.Show))

	r.Match(getPost, "/add_to_cart/{id}", "cart.add", ctx.Wrap(cart.Add))
	r.Get("/cart", "cart", ctx.Wrap(cart.Index))
	r.Post("/cart/increase/{id}", "cart.increase", ctx.Wrap(cart.Increase))
	r.Post("/cart/decrease/{id}", "cart.decrease", ctx.Wrap(cart.Decrease))
	r.Post("/cart/remove/{id}", "cart.remove", ctx.Wrap(cart.Remove))

	r.Get("/checkout", "checkout", ctx.Wrap(checkout.Show))
	r.Post("/checkout", "checkout.place", ctx.Wrap(checkout.Place))

	r.Get("/register", "register", ctx.Wrap(account.RegisterForm))
	r.Post("/register", "register.store", ctx.Wrap(account.Register))
	r.Get("/login", "login", ctx.Wrap(account.LoginForm))
	r.Post("/login", "login.attempt", ctx.Wrap(account.Login))
	r.Match(getPost, "/logout", "logout", ctx.Wrap(account.Logout))

	member := r.Group("", controllers.LoginRequired)
	member.Get("/profile", "profile", ctx.Wrap(account.Profile))
	member.Post("/profile", "profile.update", ctx.Wrap(account.UpdateProfile))
	member.Get("/orders", "orders", ctx.Wrap(account.Orders))

	member.Match(getPost, "/product/{id}/review/add", "review.add", ctx.Wrap(reviews.Add))
	member.Match(getPost, "/review/{id}/delete", "review.delete", ctx.Wrap(reviews.Delete))
	member.Match(getPost, "/review/{id}/reply", "review.reply", ctx.Wrap(reviews.Reply))
	member.Match(getPost, "/reply/{id}/delete", "reply.delete", ctx.Wrap(reviews.DeleteReply))
}
