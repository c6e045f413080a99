package services

import (
	"math"
	"time"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/cache"
	"github.com/xcursi322/prakt/pkg/collection"
	"github.com/xcursi322/prakt/pkg/orm"
)

const (
	// FeaturedCount is how many products the home page shows.
	FeaturedCount = 6
	// DefaultRating is shown for products nobody has reviewed yet.
	DefaultRating = 5

	categoriesCacheKey = "shop:catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// ProductCard is a product with its rounded average rating.
type ProductCard struct {
	models.Product
	AvgRating int `json:"avg_rating"`
}

// ListParams are the catalog listing query parameters.
type ListParams struct {
	Query      string
	CategoryID uint
	Sort       string
	Page       int
	PerPage    int
}

// Listing is one page of the catalog.
type Listing struct {
	Products   []ProductCard     `json:"products"`
	Pagination orm.Pagination    `json:"pagination"`
	Categories []models.Category `json:"categories"`
	Category   *models.Category  `json:"category,omitempty"`
	Query      string            `json:"q"`
	Sort       string            `json:"sort"`
}

// ProductDetail is the product page.
type ProductDetail struct {
	Product   models.Product  `json:"product"`
	AvgRating int             `json:"avg_rating"`
	Reviews   []models.Review `json:"reviews"`
}

// CatalogService serves the read-only storefront pages.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	reviews    *repositories.ReviewRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
		reviews:    repositories.NewReviewRepository(),
	}
}

// Featured returns the home page products.
func (s *CatalogService) Featured() ([]ProductCard, error) {
	products, err := s.products.Featured(FeaturedCount)
	if err != nil {
		return nil, err
	}
	return s.cards(products)
}

// Categories returns all categories, cached.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return cache.Remember(categoriesCacheKey, categoriesCacheTTL, s.categories.All)
}

// ForgetCategories drops the cached category list (after seeding).
func (s *CatalogService) ForgetCategories() error {
	return cache.Forget(categoriesCacheKey)
}

// List returns a filtered, sorted page of products. An unknown category id
// is ErrNotFound.
func (s *CatalogService) List(p ListParams) (Listing, error) {
	listing := Listing{Query: p.Query, Sort: p.Sort}

	categories, err := s.Categories()
	if err != nil {
		return listing, err
	}
	listing.Categories = categories

	if p.CategoryID != 0 {
		c, err := s.categories.FindByID(p.CategoryID)
		if err != nil {
			return listing, err
		}
		listing.Category = &c
	}

	products, pagination, err := s.products.Search(repositories.ProductFilter{
		Query:      p.Query,
		CategoryID: p.CategoryID,
		Sort:       p.Sort,
	}, p.Page, p.PerPage)
	if err != nil {
		return listing, err
	}

	listing.Pagination = pagination
	listing.Products, err = s.cards(products)
	return listing, err
}

// Product returns the product page: the product, its reviews newest first
// and their replies oldest first.
func (s *CatalogService) Product(id uint) (ProductDetail, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return ProductDetail{}, err
	}

	reviews, err := s.reviews.ForProduct(id)
	if err != nil {
		return ProductDetail{}, err
	}

	avg, err := s.products.AverageRatings([]uint{id})
	if err != nil {
		return ProductDetail{}, err
	}

	return ProductDetail{Product: p, AvgRating: roundRating(avg, id), Reviews: reviews}, nil
}

func (s *CatalogService) cards(products []models.Product) ([]ProductCard, error) {
	avg, err := s.products.AverageRatings(collection.Pluck(products, productID))
	if err != nil {
		return nil, err
	}

	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = ProductCard{Product: p, AvgRating: roundRating(avg, p.ID)}
	}
	return cards, nil
}

func roundRating(avg map[uint]float64, id uint) int {
	v, ok := avg[id]
	if !ok {
		return DefaultRating
	}
	return int(math.Round(v))
}

func productID(p models.Product) uint { return p.ID }
