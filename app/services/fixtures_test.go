package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/auth"
	"github.com/xcursi322/prakt/pkg/session"
)

func newProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Weight: 1000, Price: decimal.NewFromInt(price), StockQuantity: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func newCustomer(t *testing.T, db *gorm.DB, username string, admin bool) models.Customer {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	c := models.Customer{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsAdmin:  admin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func newOrder(t *testing.T, db *gorm.DB, customerID uint, productID uint) models.Order {
	t.Helper()
	o := models.Order{
		Number:         uuid.NewString(),
		CustomerID:     &customerID,
		FirstName:      "Ivan",
		LastName:       "Petrenko",
		Email:          "ivan@example.com",
		Phone:          "+380501112233",
		DeliveryMethod: services.DeliveryNPBranch,
		PaymentMethod:  services.PaymentCOD,
		ShippingCost:   decimal.Zero,
		Total:          decimal.NewFromInt(100),
		Status:         models.StatusNew,
		Items:          []models.OrderItem{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(100)}},
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.StockQuantity
}

func newSession() *session.Session {
	return session.New(session.Options{CookieName: "test_session"})
}

func putInCart(t *testing.T, sess *session.Session, lines ...services.CartLine) {
	t.Helper()
	cart := &services.Cart{}
	for _, l := range lines {
		cart.Set(l.ProductID, l.Quantity)
	}
	require.NoError(t, cart.Save(sess))
}

func branchInput() services.CheckoutInput {
	return services.CheckoutInput{
		FirstName:      "Ivan",
		LastName:       "Petrenko",
		Email:          "ivan@example.com",
		Phone:          "+380501112233",
		PostalBranch:   "12",
		DeliveryMethod: "branch",
		PaymentMethod:  services.PaymentCOD,
	}
}
