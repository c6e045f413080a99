package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/database"
)

// ReviewInput is the review form.
type ReviewInput struct {
	Rating int    `json:"rating" validate:"required,between=1,5"`
	Title  string `json:"title"  validate:"nullable,max=200"`
	Text   string `json:"text"   validate:"required,max=5000"`
}

func (in *ReviewInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Text = strings.TrimSpace(in.Text)
}

// ReplyInput is the admin reply form.
type ReplyInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (in *ReplyInput) Normalize() { in.Text = strings.TrimSpace(in.Text) }

// ReviewService manages reviews and admin replies.
type ReviewService struct {
	reviews   *repositories.ReviewRepository
	products  *repositories.ProductRepository
	customers *repositories.CustomerRepository
	orders    *repositories.OrderRepository
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviews:   repositories.NewReviewRepository(),
		products:  repositories.NewProductRepository(),
		customers: repositories.NewCustomerRepository(),
		orders:    repositories.NewOrderRepository(),
	}
}

// Upsert stores the customer's review of the product, replacing an earlier
// one. Reviews of customers who ordered the product are marked verified.
func (s *ReviewService) Upsert(productID, customerID uint, in ReviewInput) (models.Review, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		return models.Review{}, err
	}
	if _, err := s.activeCustomer(customerID); err != nil {
		return models.Review{}, err
	}

	verified, err := s.orders.HasPurchased(customerID, productID)
	if err != nil {
		return models.Review{}, err
	}

	var saved models.Review
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.reviews.WithTx(tx).Upsert(&models.Review{
			ProductID:          productID,
			CustomerID:         customerID,
			Rating:             in.Rating,
			Title:              in.Title,
			Text:               in.Text,
			IsVerifiedPurchase: verified,
		})
		if err != nil {
			return err
		}
		return s.products.WithTx(tx).SyncRatingCount(productID)
	})
	return saved, err
}

// Delete removes a review written by customerID. It returns the product id
// so the caller can send the customer back to the product page, also when
// the customer is not the author (ErrForbidden).
func (s *ReviewService) Delete(reviewID, customerID uint) (uint, error) {
	rv, err := s.reviews.FindByID(reviewID)
	if err != nil {
		return 0, err
	}
	if rv.CustomerID != customerID {
		return rv.ProductID, ErrForbidden
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).Delete(rv.ID); err != nil {
			return err
		}
		return s.products.WithTx(tx).SyncRatingCount(rv.ProductID)
	})
	return rv.ProductID, err
}

// Reply adds an administrator's reply to a review.
func (s *ReviewService) Reply(reviewID, adminID uint, in ReplyInput) (models.ReviewReply, uint, error) {
	rv, err := s.reviews.FindByID(reviewID)
	if err != nil {
		return models.ReviewReply{}, 0, err
	}
	if !s.isAdmin(adminID) {
		return models.ReviewReply{}, rv.ProductID, ErrForbidden
	}

	reply := models.ReviewReply{ReviewID: rv.ID, AdminID: adminID, Text: in.Text}
	if err := s.reviews.CreateReply(&reply); err != nil {
		return models.ReviewReply{}, rv.ProductID, err
	}
	return reply, rv.ProductID, nil
}

// DeleteReply removes a reply. Only its author may do so, and only while
// still an administrator.
func (s *ReviewService) DeleteReply(replyID, customerID uint) (uint, error) {
	reply, err := s.reviews.FindReply(replyID)
	if err != nil {
		return 0, err
	}
	rv, err := s.reviews.FindByID(reply.ReviewID)
	if err != nil {
		return 0, err
	}
	if reply.AdminID != customerID || !s.isAdmin(customerID) {
		return rv.ProductID, ErrForbidden
	}
	return rv.ProductID, s.reviews.DeleteReply(reply.ID)
}

func (s *ReviewService) activeCustomer(id uint) (models.Customer, error) {
	c, err := s.customers.FindByID(id)
	if errors.Is(err, ErrNotFound) {
		return models.Customer{}, ErrForbidden
	}
	if err != nil {
		return models.Customer{}, err
	}
	if !c.IsActive {
		return models.Customer{}, ErrForbidden
	}
	return c, nil
}

func (s *ReviewService) isAdmin(id uint) bool {
	c, err := s.activeCustomer(id)
	return err == nil && c.IsAdmin
}
