package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/pkg/storage"
)

const (
	DefaultBrand = "ALLNUTRITION"
	// DefaultStock is the stock a freshly listed product starts with.
	DefaultStock = 50
)

// Product represents a product in the catalogue.
type Product struct {
	ID              uint                `gorm:"primaryKey"                    json:"id"`
	Name            string              `gorm:"size:255;not null;index"       json:"name"`
	Brand           string              `gorm:"size:100;not null"             json:"brand"`
	Weight          int                 `gorm:"not null"                      json:"weight"` // grams
	Price           decimal.Decimal     `gorm:"type:decimal(10,2);not null"   json:"price"`
	OldPrice        decimal.NullDecimal `gorm:"type:decimal(10,2)"            json:"old_price"`
	DiscountPercent int                 `gorm:"not null"                      json:"discount_percent"`
	IsGift          bool                `gorm:"not null"                      json:"is_gift"`
	IsBestseller    bool                `gorm:"not null"                      json:"is_bestseller"`
	RatingCount     int                 `gorm:"not null"                      json:"rating_count"`
	Description     string              `gorm:"type:text"                     json:"description"`
	Image           string              `gorm:"size:255"                      json:"image"` // media path, e.g. products/whey.jpg
	ImageURL        string              `gorm:"-"                             json:"image_url"`
	StockQuantity   int                 `gorm:"not null;check:stock_quantity >= 0" json:"stock_quantity"`
	CategoryID      *uint               `gorm:"index"                         json:"category_id"`
	Category        *Category           `json:"category,omitempty"`
	CreatedAt       time.Time           `gorm:"index"                         json:"created_at"`
}

// BeforeCreate fills the brand when the caller left it blank.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	return nil
}

// AfterFind resolves the stored media path against the active disk.
func (p *Product) AfterFind(*gorm.DB) error {
	p.ImageURL = storage.URL(p.Image)
	return nil
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool { return p.StockQuantity > 0 }
