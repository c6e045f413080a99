package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/internal/testdb"
)

func TestAddClampsToStockAndSignalsPartial(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey Protein", 100, 3)
	sess := newSession()
	svc := services.NewCartService()

	res, err := svc.Add(sess, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Quantity)
	assert.Equal(t, 3, res.Added)
	assert.True(t, res.Partial)

	summary, err := svc.Summary(sess)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(300)), summary.Total.String())
}

func TestAddOutOfStock(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Creatine", 100, 0)
	sess := newSession()

	_, err := services.NewCartService().Add(sess, p.ID, 1)
	assert.ErrorIs(t, err, services.ErrOutOfStock)
	assert.True(t, services.LoadCart(sess).Empty())
}

func TestAddUnknownProduct(t *testing.T) {
	testdb.Open(t)
	_, err := services.NewCartService().Add(newSession(), 999, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAddWhenCartAtStockReturnsMaxReached(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "BCAA", 50, 2)
	sess := newSession()
	svc := services.NewCartService()

	_, err := svc.Add(sess, p.ID, 2)
	require.NoError(t, err)

	res, err := svc.Add(sess, p.ID, 1)
	assert.ErrorIs(t, err, services.ErrMaxReached)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, 2, services.LoadCart(sess).Quantity(p.ID))
}

func TestAddNeverExceedsStock(t *testing.T) {
	db := testdb.Open(t)
	svc := services.NewCartService()

	for stock := 1; stock <= 4; stock++ {
		p := newProduct(t, db, "Gainer", 10, stock)
		for existing := 0; existing <= stock+1; existing++ {
			for q := -1; q <= stock+2; q++ {
				sess := newSession()
				if existing > 0 {
					putInCart(t, sess, services.CartLine{ProductID: p.ID, Quantity: existing})
				}
				_, _ = svc.Add(sess, p.ID, q)
				assert.LessOrEqual(t, services.LoadCart(sess).Quantity(p.ID), stock,
					"stock=%d existing=%d q=%d", stock, existing, q)
			}
		}
	}
}

func TestAddQuantityBelowOneCountsAsOne(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Omega 3", 10, 5)
	sess := newSession()

	res, err := services.NewCartService().Add(sess, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Quantity)
	assert.False(t, res.Partial)
}

func TestIncreaseStopsAtStock(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Casein", 10, 2)
	sess := newSession()
	svc := services.NewCartService()
	putInCart(t, sess, services.CartLine{ProductID: p.ID, Quantity: 1})

	qty, err := svc.Increase(sess, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	qty, err = svc.Increase(sess, p.ID)
	assert.ErrorIs(t, err, services.ErrMaxReached)
	assert.Equal(t, 2, qty)
}

func TestIncreaseIsNoopWhenNotInCart(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Casein", 10, 2)
	sess := newSession()

	qty, err := services.NewCartService().Increase(sess, p.ID)
	require.NoError(t, err)
	assert.Zero(t, qty)
	assert.True(t, services.LoadCart(sess).Empty())
}

func TestDecreaseRemovesLineAtZero(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Glutamine", 10, 5)
	sess := newSession()
	svc := services.NewCartService()
	putInCart(t, sess, services.CartLine{ProductID: p.ID, Quantity: 2})

	qty, err := svc.Decrease(sess, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	qty, err = svc.Decrease(sess, p.ID)
	require.NoError(t, err)
	assert.Zero(t, qty)
	assert.True(t, services.LoadCart(sess).Empty())
	assert.False(t, sess.Has(services.SessionCartKey))
}

func TestRemoveDeletesLine(t *testing.T) {
	db := testdb.Open(t)
	a := newProduct(t, db, "A", 10, 5)
	b := newProduct(t, db, "B", 10, 5)
	sess := newSession()
	putInCart(t, sess,
		services.CartLine{ProductID: a.ID, Quantity: 2},
		services.CartLine{ProductID: b.ID, Quantity: 1})

	require.NoError(t, services.NewCartService().Remove(sess, a.ID))

	cart := services.LoadCart(sess)
	assert.Zero(t, cart.Quantity(a.ID))
	assert.Equal(t, 1, cart.Quantity(b.ID))
}

func TestSummaryDropsMissingProductsAndTotalsLines(t *testing.T) {
	db := testdb.Open(t)
	a := newProduct(t, db, "A", 120, 5)
	b := newProduct(t, db, "B", 35, 5)
	sess := newSession()
	putInCart(t, sess,
		services.CartLine{ProductID: a.ID, Quantity: 2},
		services.CartLine{ProductID: 4242, Quantity: 1},
		services.CartLine{ProductID: b.ID, Quantity: 3})

	summary, err := services.NewCartService().Summary(sess)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)

	sum := decimal.Zero
	for _, it := range summary.Items {
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, sum.Equal(summary.Total))
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(345)), summary.Total.String())
	assert.Equal(t, 5, summary.Count)
}
