package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/internal/testdb"
)

func TestAdvanceFollowsStatusFlow(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	c := newCustomer(t, db, "buyer", false)
	o := newOrder(t, db, c.ID, p.ID)
	svc := services.NewOrderService()
	ctx := context.Background()

	for _, want := range []models.OrderStatus{models.StatusProcessing, models.StatusShipped, models.StatusCompleted} {
		got, err := svc.Advance(ctx, o.ID, "")
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}

	_, err := svc.Advance(ctx, o.ID, "")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestAdvanceRejectsSkipping(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	c := newCustomer(t, db, "buyer", false)
	o := newOrder(t, db, c.ID, p.ID)

	_, err := services.NewOrderService().Advance(context.Background(), o.ID, models.StatusShipped)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestOrdersAreScopedToCustomer(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	a := newCustomer(t, db, "a_buyer", false)
	b := newCustomer(t, db, "b_buyer", false)
	o := newOrder(t, db, a.ID, p.ID)
	newOrder(t, db, a.ID, p.ID)
	svc := services.NewOrderService()

	orders, err := svc.ForCustomer(a.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].Product)

	_, err = svc.Find(o.ID, b.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
