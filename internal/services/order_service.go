package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brocante/internal/cart"
	"brocante/internal/domain"
	applog "brocante/internal/log"
	"brocante/internal/mail"
	"brocante/internal/repos"
)

var ErrEmptyCart = errors.New("cart is empty")

// Customer holds the checkout shipping fields.
type Customer struct {
	FullName string
	Email    string
	Phone    string
	City     string
	Address  string
	Notes    string
}

type OrderService struct {
	Orders *repos.OrderRepo
	Mail   mail.Mailer // nil when no email API is configured
}

func NewOrderService(orders *repos.OrderRepo, mailer mail.Mailer) *OrderService {
	return &OrderService{Orders: orders, Mail: mailer}
}

// Place freezes the cart into an order-item snapshot, inserts one pending
// order, and fires the notification emails best-effort. Order persistence
// outranks notification delivery: a failed send is logged and swallowed.
func (s *OrderService) Place(ctx context.Context, cust Customer, items []cart.Item) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	snapshot := make([]domain.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		oi := domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
		// A line whose snapshot never resolved keeps its id but counts as 0.
		if it.Product != nil {
			oi.ProductName = it.Product.Name
			oi.Price = it.Product.Price
		}
		snapshot = append(snapshot, oi)
		total = total.Add(oi.Subtotal())
	}

	o := domain.Order{
		ID:       uuid.NewString(),
		FullName: cust.FullName,
		Email:    cust.Email,
		Phone:    cust.Phone,
		City:     cust.City,
		Address:  cust.Address,
		Notes:    cust.Notes,
		Total:    total,
		Status:   domain.StatusPending,
	}
	o.SetItems(snapshot)

	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}

	if s.Mail != nil {
		n := mail.Notification{
			OrderNumber:   o.ShortID(),
			CustomerName:  o.FullName,
			CustomerEmail: o.Email,
			Items:         snapshot,
			Total:         total,
		}
		if err := s.Mail.SendOrderEmails(ctx, n); err != nil {
			applog.L().Warn("order notification failed",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	return o, nil
}

// SetStatus applies a single-field status update after checking the value
// is a known status. Any-to-any transitions are allowed on purpose.
func (s *OrderService) SetStatus(id, status string) error {
	if !domain.ValidOrderStatus(status) {
		return errors.New("unknown order status: " + status)
	}
	return s.Orders.UpdateStatus(id, status)
}
