package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/collection"
	"github.com/xcursi322/prakt/pkg/metrics"
	"github.com/xcursi322/prakt/pkg/session"
)

// SessionCartKey is the session key holding the cart lines.
const SessionCartKey = "cart"

// CartLine is one (product, quantity) pair of the session cart.
type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Cart is the session cart. Lines keep the order products were added in.
type Cart struct {
	Lines []CartLine
}

// LoadCart reads the cart from the session. Lines with a non-positive
// quantity are discarded.
func LoadCart(sess *session.Session) *Cart {
	var lines []CartLine
	sess.Get(SessionCartKey, &lines)

	c := &Cart{}
	for _, l := range lines {
		if l.ProductID != 0 && l.Quantity > 0 {
			c.Set(l.ProductID, c.Quantity(l.ProductID)+l.Quantity)
		}
	}
	return c
}

// Save writes the cart back, removing the key once the cart is empty.
func (c *Cart) Save(sess *session.Session) error {
	if c.Empty() {
		sess.Delete(SessionCartKey)
		return nil
	}
	return sess.Set(SessionCartKey, c.Lines)
}

// Quantity returns the quantity of the product in the cart, or 0.
func (c *Cart) Quantity(productID uint) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Set stores qty for the product; qty <= 0 removes the line.
func (c *Cart) Set(productID uint, qty int) {
	for i, l := range c.Lines {
		if l.ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return
	}
	if qty > 0 {
		c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: qty})
	}
}

// ProductIDs lists the products in the cart.
func (c *Cart) ProductIDs() []uint {
	return collection.Pluck(c.Lines, func(l CartLine) uint { return l.ProductID })
}

// Count is the total number of units.
func (c *Cart) Count() int {
	return collection.SumBy(c.Lines, func(l CartLine) int { return l.Quantity })
}

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

// CartItem is a cart line priced at the current product price.
type CartItem struct {
	Product  models.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartSummary is the priced cart.
type CartSummary struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Item returns the summary line of a product.
func (s CartSummary) Item(productID uint) (CartItem, bool) {
	for _, it := range s.Items {
		if it.Product.ID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// AddResult describes what an add actually did.
type AddResult struct {
	ProductID uint
	Quantity  int // resulting quantity in the cart
	Added     int
	Partial   bool // fewer units added than requested
}

// CartService mutates and prices the session cart against live stock.
type CartService struct {
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{products: repositories.NewProductRepository()}
}

func record(op string, partial bool, err error) {
	result := "ok"
	switch {
	case err == nil && partial:
		result = "partial"
	case err == nil:
	case errors.Is(err, ErrOutOfStock):
		result = "out_of_stock"
	case errors.Is(err, ErrMaxReached):
		result = "max_reached"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.CartOperations.WithLabelValues(op, result).Inc()
}

// Add puts qty units of the product in the cart, limited to what is in
// stock. qty < 1 counts as 1. The result carries the resulting quantity
// also when err is ErrMaxReached.
func (s *CartService) Add(sess *session.Session, productID uint, qty int) (res AddResult, err error) {
	defer func() { record("add", res.Partial, err) }()

	if qty < 1 {
		qty = 1
	}
	res.ProductID = productID

	p, err := s.products.FindByID(productID)
	if err != nil {
		return res, err
	}
	if p.StockQuantity <= 0 {
		return res, ErrOutOfStock
	}

	cart := LoadCart(sess)
	existing := cart.Quantity(productID)

	if existing >= p.StockQuantity {
		cart.Set(productID, p.StockQuantity)
		res.Quantity = p.StockQuantity
		if err := cart.Save(sess); err != nil {
			return res, err
		}
		return res, ErrMaxReached
	}

	allowance := p.StockQuantity - existing
	if qty > allowance {
		qty = allowance
		res.Partial = true
	}

	cart.Set(productID, existing+qty)
	res.Added = qty
	res.Quantity = existing + qty
	return res, cart.Save(sess)
}

// Increase adds one unit. It is a no-op for products not in the cart.
func (s *CartService) Increase(sess *session.Session, productID uint) (qty int, err error) {
	defer func() { record("increase", false, err) }()

	cart := LoadCart(sess)
	existing := cart.Quantity(productID)
	if existing == 0 {
		return 0, nil
	}

	p, err := s.products.FindByID(productID)
	if errors.Is(err, ErrNotFound) {
		cart.Set(productID, 0)
		return 0, errors.Join(err, cart.Save(sess))
	}
	if err != nil {
		return existing, err
	}

	if existing >= p.StockQuantity {
		cart.Set(productID, p.StockQuantity)
		if err := cart.Save(sess); err != nil {
			return p.StockQuantity, err
		}
		return p.StockQuantity, ErrMaxReached
	}

	cart.Set(productID, existing+1)
	return existing + 1, cart.Save(sess)
}

// Decrease removes one unit; the line goes away at zero.
func (s *CartService) Decrease(sess *session.Session, productID uint) (qty int, err error) {
	defer func() { record("decrease", false, err) }()

	cart := LoadCart(sess)
	existing := cart.Quantity(productID)
	if existing == 0 {
		return 0, nil
	}

	cart.Set(productID, existing-1)
	return existing - 1, cart.Save(sess)
}

// Remove deletes the product's line.
func (s *CartService) Remove(sess *session.Session, productID uint) (err error) {
	defer func() { record("remove", false, err) }()

	cart := LoadCart(sess)
	cart.Set(productID, 0)
	return cart.Save(sess)
}

// Summary prices the cart with current product prices. Lines whose product
// no longer exists are left out.
func (s *CartService) Summary(sess *session.Session) (CartSummary, error) {
	return s.summarize(LoadCart(sess))
}

func (s *CartService) summarize(cart *Cart) (CartSummary, error) {
	summary := CartSummary{Items: []CartItem{}, Total: decimal.Zero}
	if cart.Empty() {
		return summary, nil
	}

	products, err := s.products.FindMany(cart.ProductIDs())
	if err != nil {
		return summary, err
	}

	for _, line := range cart.Lines {
		p, ok := products[line.ProductID]
		if !ok {
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Items = append(summary.Items, CartItem{Product: p, Quantity: line.Quantity, Subtotal: sub})
		summary.Total = summary.Total.Add(sub)
		summary.Count += line.Quantity
	}
	return summary, nil
}
