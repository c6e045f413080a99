package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/collection"
	"github.com/xcursi322/prakt/pkg/database"
	"github.com/xcursi322/prakt/pkg/keylock"
	"github.com/xcursi322/prakt/pkg/logger"
	"github.com/xcursi322/prakt/pkg/metrics"
	"github.com/xcursi322/prakt/pkg/session"
	"github.com/xcursi322/prakt/pkg/validate"
)

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	FirstName      string `json:"first_name"      validate:"required,max=100"`
	LastName       string `json:"last_name"       validate:"required,max=100"`
	Email          string `json:"email"           validate:"required,email,max=254"`
	Phone          string `json:"phone"           validate:"required,min=7,max=32,regex=^\\+?[0-9 ()-]+$"`
	Address        string `json:"address"         validate:"required_if=delivery_method:courier_kyiv,max=255"`
	City           string `json:"city"            validate:"required_if=delivery_method:courier_kyiv,max=100"`
	PostalCode     string `json:"postal_code"     validate:"nullable,max=20"`
	PostalBranch   string `json:"postal_branch"   validate:"required_if=delivery_method:np_branch,max=100"`
	DeliveryMethod string `json:"delivery_method" validate:"required,in=np_branch,courier_kyiv"`
	PaymentMethod  string `json:"payment_method"  validate:"required,in=online,cod"`
}

// Normalize trims the fields and maps legacy delivery method names.
func (in *CheckoutInput) Normalize() {
	for _, f := range []*string{
		&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Address,
		&in.City, &in.PostalCode, &in.PostalBranch, &in.PaymentMethod,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.PaymentMethod = strings.ToLower(in.PaymentMethod)
	in.DeliveryMethod = NormalizeDeliveryMethod(in.DeliveryMethod)
}

// Outcome is how a stock reservation ended.
type Outcome string

const (
	Committed Outcome = "committed"
	Aborted   Outcome = "aborted"
)

// Reservation is the record of one pass through the stock critical
// section: which product rows were locked, and how it ended.
type Reservation struct {
	Keys      []uint
	Outcome   Outcome
	Order     *models.Order
	Conflicts []string
}

// Quote is the checkout page view of the cart.
type Quote struct {
	Cart     CartSummary                `json:"cart"`
	Shipping map[string]decimal.Decimal `json:"shipping"`
	Rules    []ShippingRule             `json:"rules"`
}

// stockLocks is shared by every CheckoutService in the process.
var stockLocks keylock.Set[uint]

// CheckoutService turns the session cart into an order.
type CheckoutService struct {
	cart      *CartService
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	customers *repositories.CustomerRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		cart:      NewCartService(),
		products:  repositories.NewProductRepository(),
		orders:    repositories.NewOrderRepository(),
		customers: repositories.NewCustomerRepository(),
	}
}

// Quote prices the cart and every delivery method for the checkout page.
func (s *CheckoutService) Quote(sess *session.Session) (Quote, error) {
	summary, err := s.cart.Summary(sess)
	if err != nil {
		return Quote{}, err
	}
	if len(summary.Items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	q := Quote{Cart: summary, Shipping: make(map[string]decimal.Decimal, len(ShippingRules)), Rules: ShippingRules}
	for _, rule := range ShippingRules {
		cost, _ := ShippingCost(rule.Method, summary.Total)
		q.Shipping[rule.Method] = cost
	}
	return q, nil
}

// PlaceOrder validates the form, reserves stock and creates the order. On
// success the cart is cleared; on any error it is left as it was.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *session.Session, customerID *uint, in CheckoutInput) (*models.Order, error) {
	cart := LoadCart(sess)
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	in.Normalize()
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return nil, FieldErrors(errs)
	}

	res, err := s.Reserve(ctx, cart.Lines, customerID, in)
	if err != nil {
		return nil, err
	}

	sess.Delete(SessionCartKey)
	return res.Order, nil
}

// Reserve runs the stock critical section for lines. It takes the
// in-process lock on the sorted product ids, then, in one transaction,
// write-locks the product rows, checks every line against the locked
// stock, creates the order and decrements stock. Any shortage aborts the
// whole transaction with a *StockConflictError.
func (s *CheckoutService) Reserve(ctx context.Context, lines []CartLine, customerID *uint, in CheckoutInput) (res Reservation, err error) {
	in.DeliveryMethod = NormalizeDeliveryMethod(in.DeliveryMethod)
	wanted := mergeLines(lines)
	if len(wanted) == 0 {
		return Reservation{Outcome: Aborted}, ErrEmptyCart
	}

	res = Reservation{Keys: keylock.Sorted(collection.Keys(wanted)), Outcome: Aborted}

	unlock := stockLocks.Lock(res.Keys...)
	defer unlock()

	start := time.Now()
	defer func() {
		metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
		outcome := string(res.Outcome)
		var conflict *StockConflictError
		if errors.As(err, &conflict) {
			outcome = "stock_conflict"
		} else if err != nil {
			outcome = "error"
		}
		metrics.CheckoutOutcomes.WithLabelValues(outcome).Inc()
	}()

	log := logger.WithCtx(ctx)

	var order models.Order
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)

		locked, err := products.LockForUpdate(res.Keys)
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		byID := make(map[uint]models.Product, len(locked))
		for _, p := range locked {
			byID[p.ID] = p
		}

		var conflicts []string
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(res.Keys))
		for _, id := range res.Keys {
			qty := wanted[id]
			p, ok := byID[id]
			if !ok {
				conflicts = append(conflicts, fmt.Sprintf("product #%d", id))
				continue
			}
			if qty > p.StockQuantity {
				conflicts = append(conflicts, p.Name)
				continue
			}
			items = append(items, models.OrderItem{ProductID: id, Quantity: qty, Price: p.Price})
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		if len(conflicts) > 0 {
			return &StockConflictError{Products: conflicts}
		}

		shipping, ok := ShippingCost(in.DeliveryMethod, subtotal)
		if !ok {
			return FieldErrors{"delivery_method": "The selected delivery_method is invalid."}
		}

		order = models.Order{
			Number:         uuid.NewString(),
			CustomerID:     customerID,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Email:          in.Email,
			Phone:          in.Phone,
			Address:        in.Address,
			City:           in.City,
			PostalCode:     in.PostalCode,
			PostalBranch:   in.PostalBranch,
			DeliveryMethod: in.DeliveryMethod,
			PaymentMethod:  in.PaymentMethod,
			ShippingCost:   shipping,
			Total:          subtotal.Add(shipping),
			Status:         models.StatusNew,
			Items:          items,
		}
		if err := s.orders.WithTx(tx).Create(&order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, it := range items {
			ok, err := products.DecrementStock(it.ProductID, it.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock of product %d: %w", it.ProductID, err)
			}
			if !ok {
				return &StockConflictError{Products: []string{byID[it.ProductID].Name}}
			}
		}

		if customerID != nil {
			if err := s.backfillProfile(tx, *customerID, in); err != nil {
				return fmt.Errorf("backfill profile: %w", err)
			}
		}
		return nil
	})

	var conflict *StockConflictError
	switch {
	case errors.As(err, &conflict):
		res.Conflicts = conflict.Products
		log.Warn("checkout aborted: stock conflict", "products", res.Keys, "conflicts", conflict.Products)
		return res, err
	case err != nil:
		log.Error("checkout failed", "products", res.Keys, "error", err)
		return res, err
	}

	res.Outcome = Committed
	res.Order = &order
	log.Info("order placed", "order_id", order.ID, "number", order.Number, "total", order.Total.StringFixed(2))
	return res, nil
}

// backfillProfile copies checkout contact fields into the customer's
// profile where the profile field is still empty.
func (s *CheckoutService) backfillProfile(tx *gorm.DB, customerID uint, in CheckoutInput) error {
	customers := s.customers.WithTx(tx)
	c, err := customers.FindByID(customerID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	fill := func(column, current, submitted string) {
		if strings.TrimSpace(current) == "" && submitted != "" {
			fields[column] = submitted
		}
	}
	fill("first_name", c.FirstName, in.FirstName)
	fill("last_name", c.LastName, in.LastName)
	fill("phone", c.Phone, in.Phone)
	fill("address", c.Address, in.Address)
	fill("city", c.City, in.City)
	fill("postal_code", c.PostalCode, in.PostalCode)

	return customers.Update(customerID, fields)
}

// mergeLines sums quantities per product and drops non-positive lines.
func mergeLines(lines []CartLine) map[uint]int {
	out := make(map[uint]int, len(lines))
	for _, l := range lines {
		if l.ProductID != 0 && l.Quantity > 0 {
			out[l.ProductID] += l.Quantity
		}
	}
	return out
}

// ConflictNames returns the sorted product names of a stock conflict, for
// log lines and tests.
func ConflictNames(err error) []string {
	var conflict *StockConflictError
	if !errors.As(err, &conflict) {
		return nil
	}
	names := append([]string(nil), conflict.Products...)
	sort.Strings(names)
	return names
}
