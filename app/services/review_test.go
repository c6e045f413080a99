package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/internal/testdb"
)

func TestReviewUpsertKeepsOneRowPerPair(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	c := newCustomer(t, db, "reviewer", false)
	svc := services.NewReviewService()

	first, err := svc.Upsert(p.ID, c.ID, services.ReviewInput{Rating: 3, Title: "ok", Text: "fine"})
	require.NoError(t, err)

	second, err := svc.Upsert(p.ID, c.ID, services.ReviewInput{Rating: 5, Title: "great", Text: "changed my mind"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "great", second.Title)

	n, err := repositories.NewReviewRepository().CountForPair(p.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.RatingCount)
}

func TestReviewMarksVerifiedPurchase(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	buyer := newCustomer(t, db, "buyer", false)
	browser := newCustomer(t, db, "browser", false)
	newOrder(t, db, buyer.ID, p.ID)
	svc := services.NewReviewService()

	rv, err := svc.Upsert(p.ID, buyer.ID, services.ReviewInput{Rating: 4, Text: "good"})
	require.NoError(t, err)
	assert.True(t, rv.IsVerifiedPurchase)

	rv, err = svc.Upsert(p.ID, browser.ID, services.ReviewInput{Rating: 4, Text: "looks good"})
	require.NoError(t, err)
	assert.False(t, rv.IsVerifiedPurchase)
}

func TestReviewOnUnknownProduct(t *testing.T) {
	db := testdb.Open(t)
	c := newCustomer(t, db, "reviewer", false)

	_, err := services.NewReviewService().Upsert(404, c.ID, services.ReviewInput{Rating: 4, Text: "?"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteReviewOnlyByOwner(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	owner := newCustomer(t, db, "owner", false)
	other := newCustomer(t, db, "other", false)
	svc := services.NewReviewService()

	rv, err := svc.Upsert(p.ID, owner.ID, services.ReviewInput{Rating: 2, Text: "meh"})
	require.NoError(t, err)

	productID, err := svc.Delete(rv.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, p.ID, productID)

	_, err = svc.Delete(rv.ID, owner.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Zero(t, count)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Zero(t, got.RatingCount)
}

func TestReplyRequiresAdmin(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	author := newCustomer(t, db, "author", false)
	admin := newCustomer(t, db, "admin", true)
	svc := services.NewReviewService()

	rv, err := svc.Upsert(p.ID, author.ID, services.ReviewInput{Rating: 5, Text: "love it"})
	require.NoError(t, err)

	_, productID, err := svc.Reply(rv.ID, author.ID, services.ReplyInput{Text: "self reply"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, p.ID, productID)

	reply, _, err := svc.Reply(rv.ID, admin.ID, services.ReplyInput{Text: "thank you"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, reply.AdminID)
}

func TestDeleteReplyOnlyByAuthoringAdmin(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	author := newCustomer(t, db, "author", false)
	adminA := newCustomer(t, db, "admin_a", true)
	adminB := newCustomer(t, db, "admin_b", true)
	svc := services.NewReviewService()

	rv, err := svc.Upsert(p.ID, author.ID, services.ReviewInput{Rating: 5, Text: "love it"})
	require.NoError(t, err)
	reply, _, err := svc.Reply(rv.ID, adminA.ID, services.ReplyInput{Text: "thanks"})
	require.NoError(t, err)

	_, err = svc.DeleteReply(reply.ID, adminB.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", adminA.ID).Update("is_admin", false).Error)
	_, err = svc.DeleteReply(reply.ID, adminA.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", adminA.ID).Update("is_admin", true).Error)
	productID, err := svc.DeleteReply(reply.ID, adminA.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, productID)
}

func TestProductDetailOrdersReviewsAndReplies(t *testing.T) {
	db := testdb.Open(t)
	p := newProduct(t, db, "Whey", 100, 5)
	first := newCustomer(t, db, "first", false)
	second := newCustomer(t, db, "second", false)
	admin := newCustomer(t, db, "admin", true)
	svc := services.NewReviewService()

	older, err := svc.Upsert(p.ID, first.ID, services.ReviewInput{Rating: 4, Text: "a"})
	require.NoError(t, err)
	newer, err := svc.Upsert(p.ID, second.ID, services.ReviewInput{Rating: 5, Text: "b"})
	require.NoError(t, err)
	_, _, err = svc.Reply(older.ID, admin.ID, services.ReplyInput{Text: "one"})
	require.NoError(t, err)
	_, _, err = svc.Reply(older.ID, admin.ID, services.ReplyInput{Text: "two"})
	require.NoError(t, err)

	detail, err := services.NewCatalogService().Product(p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, newer.ID, detail.Reviews[0].ID)
	require.Len(t, detail.Reviews[1].Replies, 2)
	assert.Equal(t, "one", detail.Reviews[1].Replies[0].Text)
	assert.Equal(t, 5, detail.AvgRating) // 4.5 rounds up
}
