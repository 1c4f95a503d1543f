package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"printshop/internal/cart"
	"printshop/internal/domain"
	applog "printshop/internal/log"
	"printshop/internal/repos"
)

var (
	ErrCartEmpty     = errors.New("cart empty")
	ErrBadTransition = errors.New("status transition not allowed")
)

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Orders: orders}
}

// Place turns the session's cart into an immutable pending order. The cart is
// cleared only after the order has been durably persisted; a failed write
// leaves the cart intact so nothing is silently lost.
func (s *OrderService) Place(sessionID string, customer domain.Customer) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	c := cart.Restore(items)
	if c.Len() == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	o := domain.Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Customer:  customer,
		Total:     c.Total(),
		Status:    domain.StatusPending,
	}
	for _, li := range c.Items() {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.Price,
			Qty:       li.Quantity,
			Subtotal:  li.Subtotal(),
		})
	}

	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	// the order is durable at this point; a failed clear leaves a stale cart
	// behind but must not fail the checkout
	if err := s.Carts.Clear(cartID); err != nil {
		applog.Error(nil, "order.cart_clear.fail", err, map[string]any{"order_id": o.ID})
	}
	return o, nil
}

func (s *OrderService) Get(orderID string) (domain.Order, error) {
	return s.Orders.Get(orderID)
}

func (s *OrderService) ListBySession(sessionID string) ([]domain.Order, error) {
	return s.Orders.ListBySession(sessionID)
}

// UpdateStatus advances an order along the monotonic status machine
// (pending -> processing -> completed|cancelled). Invalid targets and
// transitions out of terminal states are rejected.
func (s *OrderService) UpdateStatus(orderID string, to domain.OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrBadTransition, to)
	}
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if !o.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, to)
	}
	ok, err := s.Orders.UpdateStatus(orderID, o.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		// somebody else moved the order between read and write
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, to)
	}
	return nil
}
