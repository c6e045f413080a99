package services

import (
	"context"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/logger"
)

// OrderService reads customer orders and advances their status.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// ForCustomer lists the customer's orders, newest first.
func (s *OrderService) ForCustomer(customerID uint) ([]models.Order, error) {
	return s.orders.ForCustomer(customerID)
}

// Find returns one of the customer's orders.
func (s *OrderService) Find(orderID, customerID uint) (models.Order, error) {
	return s.orders.FindForCustomer(orderID, customerID)
}

// Advance moves the order one step along new → processing → shipped →
// completed. When target is set it must be that next step.
func (s *OrderService) Advance(ctx context.Context, orderID uint, target models.OrderStatus) (models.Order, error) {
	o, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}

	next, ok := o.Status.Next()
	if !ok || (target != "" && target != next) {
		return o, ErrInvalidTransition
	}

	moved, err := s.orders.TransitionStatus(o.ID, o.Status, next)
	if err != nil {
		return o, err
	}
	if !moved {
		return o, ErrInvalidTransition
	}

	logger.WithCtx(ctx).Info("order status advanced", "order_id", o.ID, "from", o.Status, "to", next)
	o.Status = next
	return o, nil
}
