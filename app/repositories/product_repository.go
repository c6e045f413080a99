package repositories

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/pkg/collection"
	"github.com/xcursi322/prakt/pkg/orm"
)

// Catalog sort keys.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

var sortOrders = map[string]string{
	SortPriceAsc:  "price asc, id asc",
	SortPriceDesc: "price desc, id asc",
	SortNewest:    "created_at desc, id desc",
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Query      string
	CategoryID uint
	Sort       string
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{ base }

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// WithTx binds the repository to tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{base{tx: tx}}
}

func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.query().Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&p)
	return p, notFound(err)
}

// FindMany loads the given products keyed by id. Missing ids are absent
// from the map.
func (r *ProductRepository) FindMany(ids []uint) (map[uint]models.Product, error) {
	if len(ids) == 0 {
		return map[uint]models.Product{}, nil
	}

	var products []models.Product
	if err := r.query().Model(&models.Product{}).Where("id IN ?", ids).Get(&products); err != nil {
		return nil, err
	}
	return collection.KeyBy(products, func(p models.Product) uint { return p.ID }), nil
}

// LockForUpdate reads the products with a row write lock held until the
// surrounding transaction ends. Rows come back in id order.
func (r *ProductRepository) LockForUpdate(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.query().Gorm().
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	return products, err
}

// DecrementStock takes qty units off the product only if that many are in
// stock. It reports whether the row was updated.
func (r *ProductRepository) DecrementStock(id uint, qty int) (bool, error) {
	res := r.query().Gorm().
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	return res.RowsAffected == 1, res.Error
}

// Featured returns the home page selection: bestsellers first, then newest.
func (r *ProductRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.query().Model(&models.Product{}).
		Order("is_bestseller desc, created_at desc, id desc").
		Limit(limit).
		Get(&products)
	return products, err
}

// Search returns one page of the filtered catalog.
func (r *ProductRepository) Search(f ProductFilter, page, perPage int) ([]models.Product, orm.Pagination, error) {
	q := r.query().Model(&models.Product{})

	if term := strings.TrimSpace(f.Query); term != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}

	order, ok := sortOrders[f.Sort]
	if !ok {
		order = sortOrders[SortNewest]
	}

	var products []models.Product
	pagination, err := q.Order(order).GetWithPagination(&products, page, perPage)
	return products, pagination, err
}

// All returns every product ordered by id.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.query().Model(&models.Product{}).Order("id").Get(&products)
	return products, err
}

type ratingRow struct {
	ProductID uint
	Average   float64
}

// AverageRatings returns the mean review rating per product. Products with
// no reviews are absent.
func (r *ProductRepository) AverageRatings(ids []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ratingRow
	err := r.query().Gorm().
		Model(&models.Review{}).
		Select("product_id, AVG(rating) AS average").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = row.Average
	}
	return out, nil
}

// SyncRatingCount stores the current number of reviews on the product.
func (r *ProductRepository) SyncRatingCount(productID uint) error {
	n, err := r.query().Model(&models.Review{}).Where("product_id = ?", productID).Count()
	if err != nil {
		return err
	}
	return r.query().Gorm().
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("rating_count", n).Error
}

// SetImage stores the media path of the product image.
func (r *ProductRepository) SetImage(id uint, path string) error {
	res := r.query().Gorm().Model(&models.Product{}).Where("id = ?", id).UpdateColumn("image", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
