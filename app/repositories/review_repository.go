package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xcursi322/prakt/app/models"
)

// ReviewRepository handles database operations for Review and ReviewReply.
type ReviewRepository struct{ base }

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// WithTx binds the repository to tx.
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{base{tx: tx}}
}

// Upsert inserts the review, or updates rating, title, text and the
// verified flag of the existing review for the same (product, customer).
// The stored row is returned.
func (r *ReviewRepository) Upsert(rv *models.Review) (models.Review, error) {
	err := r.query().Gorm().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "title", "text", "is_verified_purchase", "updated_at"}),
		}).
		Create(rv).Error
	if err != nil {
		return models.Review{}, err
	}
	return r.FindByPair(rv.ProductID, rv.CustomerID)
}

func (r *ReviewRepository) FindByPair(productID, customerID uint) (models.Review, error) {
	var rv models.Review
	err := r.query().Model(&models.Review{}).
		Where("product_id = ? AND customer_id = ?", productID, customerID).
		First(&rv)
	return rv, notFound(err)
}

func (r *ReviewRepository) FindByID(id uint) (models.Review, error) {
	var rv models.Review
	err := r.query().Model(&models.Review{}).Where("id = ?", id).First(&rv)
	return rv, notFound(err)
}

// CountForPair returns how many reviews exist for the pair (0 or 1).
func (r *ReviewRepository) CountForPair(productID, customerID uint) (int64, error) {
	return r.query().Model(&models.Review{}).
		Where("product_id = ? AND customer_id = ?", productID, customerID).
		Count()
}

// ForProduct returns the product's reviews newest first, each with its
// author and replies oldest first.
func (r *ReviewRepository) ForProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.query().Model(&models.Review{}).
		Preload("Customer").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		Preload("Replies.Admin").
		Where("product_id = ?", productID).
		Order("created_at desc, id desc").
		Get(&reviews)
	return reviews, err
}

// Delete removes the review and its replies.
func (r *ReviewRepository) Delete(id uint) error {
	db := r.query().Gorm()
	if err := db.Where("review_id = ?", id).Delete(&models.ReviewReply{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Review{}, id).Error
}

func (r *ReviewRepository) CreateReply(reply *models.ReviewReply) error {
	return r.query().Create(reply)
}

func (r *ReviewRepository) FindReply(id uint) (models.ReviewReply, error) {
	var reply models.ReviewReply
	err := r.query().Model(&models.ReviewReply{}).Where("id = ?", id).First(&reply)
	return reply, notFound(err)
}

func (r *ReviewRepository) DeleteReply(id uint) error {
	return r.query().Gorm().Delete(&models.ReviewReply{}, id).Error
}
