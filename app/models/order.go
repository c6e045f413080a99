package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
)

var statusFlow = []OrderStatus{StatusNew, StatusProcessing, StatusShipped, StatusCompleted}

// Next returns the status that follows s. ok is false for the final status
// and for unknown values.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range statusFlow {
		if st == s && i+1 < len(statusFlow) {
			return statusFlow[i+1], true
		}
	}
	return "", false
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, st := range statusFlow {
		if st == s {
			return true
		}
	}
	return false
}

// Order is a placed order. Contact and shipping fields are copied from the
// checkout form; Total and ShippingCost are fixed when the order is created.
type Order struct {
	ID             uint            `gorm:"primaryKey"                   json:"id"`
	Number         string          `gorm:"uniqueIndex;size:36;not null" json:"number"`
	CustomerID     *uint           `gorm:"index"                        json:"customer_id"`
	Customer       *Customer       `json:"-"`
	FirstName      string          `gorm:"size:100;not null"            json:"first_name"`
	LastName       string          `gorm:"size:100;not null"            json:"last_name"`
	Email          string          `gorm:"size:254;not null"            json:"email"`
	Phone          string          `gorm:"size:32;not null"             json:"phone"`
	Address        string          `gorm:"size:255"                     json:"address"`
	City           string          `gorm:"size:100"                     json:"city"`
	PostalCode     string          `gorm:"size:20"                      json:"postal_code"`
	PostalBranch   string          `gorm:"size:100"                     json:"postal_branch"`
	DeliveryMethod string          `gorm:"size:32;not null"             json:"delivery_method"`
	PaymentMethod  string          `gorm:"size:16;not null"             json:"payment_method"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"shipping_cost"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total"`
	Status         OrderStatus     `gorm:"size:16;not null;index"       json:"status"`
	Items          []OrderItem     `gorm:"constraint:OnDelete:CASCADE"  json:"items,omitempty"`
	CreatedAt      time.Time       `gorm:"index"                        json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderItem is one order line with the unit price frozen at checkout.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ProductID uint            `gorm:"index;not null"              json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// LineTotal is Price × Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
