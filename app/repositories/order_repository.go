package repositories

import (
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{ base }

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// WithTx binds the repository to tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{base{tx: tx}}
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(o *models.Order) error {
	return r.query().Create(o)
}

// ForCustomer returns the customer's orders, newest first, with items and
// their products.
func (r *OrderRepository) ForCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.query().Model(&models.Order{}).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Get(&orders)
	return orders, err
}

// FindForCustomer loads one order owned by customerID.
func (r *OrderRepository) FindForCustomer(id, customerID uint) (models.Order, error) {
	var o models.Order
	err := r.query().Model(&models.Order{}).
		Preload("Items.Product").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&o)
	return o, notFound(err)
}

func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var o models.Order
	err := r.query().Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&o)
	return o, notFound(err)
}

// TransitionStatus moves the order from one status to the next. It reports
// false when the order is no longer in status from.
func (r *OrderRepository) TransitionStatus(id uint, from, to models.OrderStatus) (bool, error) {
	res := r.query().Gorm().
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

// HasPurchased reports whether the customer has an order containing the
// product.
func (r *OrderRepository) HasPurchased(customerID, productID uint) (bool, error) {
	return r.query().Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND order_items.product_id = ?", customerID, productID).
		Exists()
}
