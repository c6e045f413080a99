package controllers

import (
	"errors"
	"net/http"

	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/pkg/ctx"
)

// ReviewController handles reviews and admin replies. Every action ends on
// the product page; a caller who may not perform the action is sent there
// with nothing changed.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{reviews: services.NewReviewService()}
}

// Add creates or replaces the customer's review of the product.
func (rc *ReviewController) Add(c *ctx.Context) {
	productID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	if c.R.Method != http.MethodPost {
		c.Redirect(productURL(productID))
		return
	}

	var in services.ReviewInput
	if !c.Bind(&in) {
		return
	}

	customerID, _ := customerID(c)
	review, err := rc.reviews.Upsert(productID, customerID, in)
	if err != nil {
		rc.fail(c, productID, err)
		return
	}

	if c.IsXHR() {
		c.Success(review)
		return
	}
	c.Redirect(productURL(productID))
}

// Delete removes the customer's own review.
func (rc *ReviewController) Delete(c *ctx.Context) {
	reviewID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	customerID, _ := customerID(c)
	productID, err := rc.reviews.Delete(reviewID, customerID)
	if err != nil {
		rc.fail(c, productID, err)
		return
	}
	rc.done(c, productID)
}

// Reply adds an administrator reply.
func (rc *ReviewController) Reply(c *ctx.Context) {
	reviewID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	var in services.ReplyInput
	if !c.Bind(&in) {
		return
	}

	adminID, _ := customerID(c)
	reply, productID, err := rc.reviews.Reply(reviewID, adminID, in)
	if err != nil {
		rc.fail(c, productID, err)
		return
	}

	if c.IsXHR() {
		c.Created(reply)
		return
	}
	c.Redirect(productURL(productID))
}

// DeleteReply removes a reply written by the current administrator.
func (rc *ReviewController) DeleteReply(c *ctx.Context) {
	replyID, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	adminID, _ := customerID(c)
	productID, err := rc.reviews.DeleteReply(replyID, adminID)
	if err != nil {
		rc.fail(c, productID, err)
		return
	}
	rc.done(c, productID)
}

func (rc *ReviewController) done(c *ctx.Context, productID uint) {
	if c.IsXHR() {
		c.Success(map[string]any{"product_id": productID})
		return
	}
	c.Redirect(productURL(productID))
}

// fail redirects unauthorized callers to the product page and maps every
// other error as usual.
func (rc *ReviewController) fail(c *ctx.Context, productID uint, err error) {
	if errors.Is(err, services.ErrForbidden) && productID != 0 {
		c.Redirect(productURL(productID))
		return
	}
	fail(c, err)
}
