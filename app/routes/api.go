package routes

import (
	"github.com/xcursi322/prakt/app/controllers"
	"github.com/xcursi322/prakt/pkg/ctx"
	"github.com/xcursi322/prakt/pkg/middleware"
	"github.com/xcursi322/prakt/pkg/rbac"
	"github.com/xcursi322/prakt/pkg/router"
)

// RegisterAPI mounts the token API and the GraphQL catalog endpoint.
func RegisterAPI(r *router.Router) error {
	apiController := controllers.NewAPIController()

	api := r.Group("/api")
	api.Post("/login", "api.login", ctx.Wrap(apiController.Login))

	protected := api.Group("", middleware.Auth)
	protected.Get("/orders", "api.orders", ctx.Wrap(apiController.Orders))
	protected.Get("/orders/{id}", "api.orders.show", ctx.Wrap(apiController.Order))
	protected.Post("/orders/{id}/status", "api.orders.status",
		ctx.Wrap(apiController.AdvanceStatus), rbac.HasRole(rbac.RoleAdmin))

	gql, err := controllers.NewGraphQLHandler()
	if err != nil {
		return err
	}
	r.Handle("/graphql", "graphql", gql)
	return nil
}
