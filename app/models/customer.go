package models

import "time"

// Customer is a storefront account. Customers are deactivated, never
// deleted.
type Customer struct {
	ID         uint      `gorm:"primaryKey"                    json:"id"`
	Username   string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password   string    `gorm:"size:255;not null"             json:"-"` // hashed, never serialised
	FirstName  string    `gorm:"size:100"                      json:"first_name"`
	LastName   string    `gorm:"size:100"                      json:"last_name"`
	Phone      string    `gorm:"size:32"                       json:"phone"`
	Address    string    `gorm:"size:255"                      json:"address"`
	City       string    `gorm:"size:100"                      json:"city"`
	PostalCode string    `gorm:"size:20"                       json:"postal_code"`
	IsAdmin    bool      `gorm:"not null"                      json:"is_admin"`
	IsActive   bool      `gorm:"not null"                      json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
