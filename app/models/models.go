// Package models holds the GORM models of the storefront.
package models

// All lists every model in dependency order, for migrations and test
// databases.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Review{},
		&ReviewReply{},
	}
}
