package services

import (
	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/pkg/session"
)

// Session keys of the logged-in customer.
const (
	SessionCustomerID       = "customer_id"
	SessionCustomerUsername = "customer_username"
)

// CurrentCustomerID returns the id of the customer logged in on sess.
func CurrentCustomerID(sess *session.Session) (uint, bool) {
	var id uint
	if !sess.Get(SessionCustomerID, &id) || id == 0 {
		return 0, false
	}
	return id, true
}

// LoginSession rotates the session id and records the customer. The cart
// survives the rotation.
func LoginSession(sess *session.Session, c models.Customer) error {
	sess.Regenerate()
	if err := sess.Set(SessionCustomerID, c.ID); err != nil {
		return err
	}
	return sess.Set(SessionCustomerUsername, c.Username)
}

// LogoutSession forgets the customer but keeps the cart.
func LogoutSession(sess *session.Session) {
	sess.Delete(SessionCustomerID, SessionCustomerUsername)
	sess.Regenerate()
}
