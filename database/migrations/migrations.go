// Package migrations registers the shop schema with pkg/migration. It is
// imported for its side effects by cmd/shop.
package migrations

import (
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_categories_table", createTable{&models.Category{}})
	migration.Register("20260101000001_create_products_table", createTable{&models.Product{}})
	migration.Register("20260101000002_create_customers_table", createTable{&models.Customer{}})
	migration.Register("20260101000003_create_orders_table", createTable{&models.Order{}})
	migration.Register("20260101000004_create_order_items_table", createTable{&models.OrderItem{}})
	migration.Register("20260101000005_create_reviews_table", createTable{&models.Review{}})
	migration.Register("20260101000006_create_review_replies_table", createTable{&models.ReviewReply{}})
	migration.Register("20260101000007_normalize_delivery_methods", normalizeDeliveryMethods{})
}

// createTable creates (and on rollback drops) the table of one model.
type createTable struct {
	model interface{}
}

func (m createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.model)
}

// normalizeDeliveryMethods rewrites delivery method names used by older
// orders to the current ones.
type normalizeDeliveryMethods struct{}

var legacyDeliveryMethods = map[string][]string{
	services.DeliveryNPBranch:    {"branch", "nova_poshta"},
	services.DeliveryCourierKyiv: {"courier"},
}

func (normalizeDeliveryMethods) Up(db *gorm.DB) error {
	for method, aliases := range legacyDeliveryMethods {
		err := db.Model(&models.Order{}).
			Where("delivery_method IN ?", aliases).
			Update("delivery_method", method).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Down is a no-op: the old names carried no extra information.
func (normalizeDeliveryMethods) Down(*gorm.DB) error { return nil }
