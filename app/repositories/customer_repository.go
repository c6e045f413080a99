package repositories

import (
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct{ base }

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// WithTx binds the repository to tx.
func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{base{tx: tx}}
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(id uint) (models.Customer, error) {
	var c models.Customer
	err := r.query().Model(&models.Customer{}).Where("id = ?", id).First(&c)
	return c, notFound(err)
}

// FindByUsername looks up a customer by login name.
func (r *CustomerRepository) FindByUsername(username string) (models.Customer, error) {
	var c models.Customer
	err := r.query().Model(&models.Customer{}).Where("username = ?", username).First(&c)
	return c, notFound(err)
}

// UsernameTaken reports whether any customer uses username.
func (r *CustomerRepository) UsernameTaken(username string) (bool, error) {
	return r.query().Model(&models.Customer{}).Where("username = ?", username).Exists()
}

// EmailTaken reports whether a customer other than exceptID uses email.
func (r *CustomerRepository) EmailTaken(email string, exceptID uint) (bool, error) {
	return r.query().Model(&models.Customer{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Exists()
}

// Create persists a new customer record.
func (r *CustomerRepository) Create(c *models.Customer) error {
	return r.query().Create(c)
}

// Update writes the given columns of customer id.
func (r *CustomerRepository) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.query().Gorm().Model(&models.Customer{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePassword replaces the stored password hash.
func (r *CustomerRepository) UpdatePassword(id uint, hash string) error {
	return r.Update(id, map[string]interface{}{"password": hash})
}
