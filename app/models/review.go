package models

import "time"

// Review is a customer's rating of a product; at most one per
// (product, customer) pair.
type Review struct {
	ID                 uint          `gorm:"primaryKey"                                          json:"id"`
	ProductID          uint          `gorm:"not null;uniqueIndex:idx_reviews_product_customer"   json:"product_id"`
	CustomerID         uint          `gorm:"not null;uniqueIndex:idx_reviews_product_customer;index" json:"customer_id"`
	Customer           *Customer     `json:"customer,omitempty"`
	Rating             int           `gorm:"not null;check:rating BETWEEN 1 AND 5"                json:"rating"`
	Title              string        `gorm:"size:200"                                            json:"title"`
	Text               string        `gorm:"type:text"                                           json:"text"`
	IsVerifiedPurchase bool          `gorm:"not null"                                            json:"is_verified_purchase"`
	HelpfulCount       int           `gorm:"not null"                                            json:"helpful_count"`
	Replies            []ReviewReply `gorm:"constraint:OnDelete:CASCADE"                         json:"replies,omitempty"`
	CreatedAt          time.Time     `gorm:"index"                                               json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// ReviewReply is an administrator's answer to a review.
type ReviewReply struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	ReviewID  uint      `gorm:"index;not null" json:"review_id"`
	AdminID   uint      `gorm:"index;not null" json:"admin_id"`
	Admin     *Customer `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index"          json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
