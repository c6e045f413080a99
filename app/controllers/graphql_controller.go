package controllers

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/spf13/cast"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	gql "github.com/xcursi322/prakt/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"brand":           &graphql.Field{Type: graphql.String},
		"weight":          &graphql.Field{Type: graphql.Int},
		"price":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"oldPrice":        &graphql.Field{Type: graphql.String},
		"discountPercent": &graphql.Field{Type: graphql.Int},
		"isGift":          &graphql.Field{Type: graphql.Boolean},
		"isBestseller":    &graphql.Field{Type: graphql.Boolean},
		"ratingCount":     &graphql.Field{Type: graphql.Int},
		"avgRating":       &graphql.Field{Type: graphql.Int},
		"description":     &graphql.Field{Type: graphql.String},
		"image":           &graphql.Field{Type: graphql.String},
		"imageUrl":        &graphql.Field{Type: graphql.String},
		"inStock":         &graphql.Field{Type: graphql.Boolean},
		"stockQuantity":   &graphql.Field{Type: graphql.Int},
		"category":        &graphql.Field{Type: categoryType},
	},
})

var productPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductPage",
	Fields: graphql.Fields{
		"items":      &graphql.Field{Type: graphql.NewList(productType)},
		"total":      &graphql.Field{Type: graphql.Int},
		"page":       &graphql.Field{Type: graphql.Int},
		"perPage":    &graphql.Field{Type: graphql.Int},
		"totalPages": &graphql.Field{Type: graphql.Int},
	},
})

// NewGraphQLHandler serves the read-only catalog query:
//
//	{ products(q: "whey", sort: "price_asc") { items { id name price } total } }
func NewGraphQLHandler() (http.Handler, error) {
	catalog := services.NewCatalogService()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: productPageType,
				Args: graphql.FieldConfigArgument{
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					listing, err := catalog.List(services.ListParams{
						Query:      cast.ToString(p.Args["q"]),
						CategoryID: cast.ToUint(p.Args["category"]),
						Sort:       cast.ToString(p.Args["sort"]),
						Page:       cast.ToInt(p.Args["page"]),
						PerPage:    cast.ToInt(p.Args["perPage"]),
					})
					if err != nil {
						return nil, err
					}
					items := make([]map[string]any, len(listing.Products))
					for i, card := range listing.Products {
						items[i] = productNode(card.Product, card.AvgRating)
					}
					return map[string]any{
						"items":      items,
						"total":      listing.Pagination.Total,
						"page":       listing.Pagination.Page,
						"perPage":    listing.Pagination.PerPage,
						"totalPages": listing.Pagination.TotalPages,
					}, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					detail, err := catalog.Product(cast.ToUint(p.Args["id"]))
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return productNode(detail.Product, detail.AvgRating), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					categories, err := catalog.Categories()
					if err != nil {
						return nil, err
					}
					out := make([]map[string]any, len(categories))
					for i, c := range categories {
						out[i] = categoryNode(c)
					}
					return out, nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return gql.Handler(schema), nil
}

func productNode(p models.Product, avgRating int) map[string]any {
	node := map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"brand":           p.Brand,
		"weight":          p.Weight,
		"price":           p.Price.StringFixed(2),
		"discountPercent": p.DiscountPercent,
		"isGift":          p.IsGift,
		"isBestseller":    p.IsBestseller,
		"ratingCount":     p.RatingCount,
		"avgRating":       avgRating,
		"description":     p.Description,
		"image":           p.Image,
		"imageUrl":        p.ImageURL,
		"inStock":         p.InStock(),
		"stockQuantity":   p.StockQuantity,
	}
	if p.OldPrice.Valid {
		node["oldPrice"] = p.OldPrice.Decimal.StringFixed(2)
	}
	if p.Category != nil {
		node["category"] = categoryNode(*p.Category)
	}
	return node
}

func categoryNode(c models.Category) map[string]any {
	return map[string]any{"id": c.ID, "name": c.Name, "description": c.Description}
}
