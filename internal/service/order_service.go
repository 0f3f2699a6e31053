package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/events"
	"github.com/medikita/platform/internal/identity"
	"github.com/medikita/platform/internal/payment"
	"github.com/medikita/platform/internal/repository"
)

// ErrNotOwner signals an order lookup by a non-owning user.
var ErrNotOwner = errors.New("order belongs to another user")

// InvoiceClient is the slice of the payment client the order flow needs.
type InvoiceClient interface {
	CreateInvoice(ctx context.Context, input payment.CreateInvoiceInput) (*payment.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*payment.Invoice, error)
}

// OrderLineInput is one requested cart line.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// OrderService coordinates checkout and invoice lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	invoices   InvoiceClient
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Invoices    InvoiceClient
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		invoices:   deps.Invoices,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateOrder snapshots the requested products, persists the order with a
// server-computed total, and opens a payment invoice. The order survives an
// invoice failure in PENDING state so checkout can be retried.
func (s *OrderService) CreateOrder(ctx context.Context, user *identity.User, lines []OrderLineInput) (*domain.Order, error) {
	if user == nil {
		return nil, errors.New("user required")
	}
	if len(lines) == 0 {
		return nil, errors.New("at least one line required")
	}

	order := &domain.Order{
		Ref:       uuid.NewString(),
		UserID:    user.ID,
		UserEmail: user.Email,
		Status:    domain.OrderStatusPending,
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, errors.New("quantity must be positive")
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Published {
			return nil, fmt.Errorf("product %s not available", product.Slug)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			NameEN:    product.NameEN,
			PriceIDR:  product.PriceIDR,
			Quantity:  line.Quantity,
		})
		order.TotalIDR += product.PriceIDR * int64(line.Quantity)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	var invoice *payment.Invoice
	var invoiceErr error
	if s.invoices == nil {
		invoiceErr = errors.New("invoice provider not configured")
	} else {
		invoice, invoiceErr = s.invoices.CreateInvoice(ctx, payment.CreateInvoiceInput{
			ExternalID:  order.Ref,
			Amount:      order.TotalIDR,
			PayerEmail:  order.UserEmail,
			Description: fmt.Sprintf("Order %s (%d items)", order.Ref, len(order.Items)),
		})
	}
	if invoiceErr != nil {
		s.logger.Error("invoice creation failed", zap.String("order_ref", order.Ref), zap.Error(invoiceErr))
	} else {
		order.Status = domain.OrderStatusAwaitingPayment
		order.InvoiceID = &invoice.ID
		order.InvoiceURL = &invoice.InvoiceURL
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	payload := events.OrderCreatedPayload{
		TotalIDR:  order.TotalIDR,
		ItemCount: len(order.Items),
	}
	if order.InvoiceURL != nil {
		payload.InvoiceURL = *order.InvoiceURL
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		OrderRef:  order.Ref,
		UserEmail: order.UserEmail,
		Timestamp: time.Now(),
		Payload:   payload,
	})

	return order, nil
}

// ReconcilePending syncs a batch of AWAITING_PAYMENT orders against the
// provider. Sync failures are logged per order; the sweep keeps going.
func (s *OrderService) ReconcilePending(ctx context.Context, batchSize int) error {
	if s.invoices == nil {
		return errors.New("invoice provider not configured")
	}

	pending, err := s.orders.ListByStatus(ctx, domain.OrderStatusAwaitingPayment, batchSize)
	if err != nil {
		return err
	}

	for i := range pending {
		if _, err := s.SyncInvoice(ctx, pending[i].Ref); err != nil {
			s.logger.Warn("invoice reconcile failed",
				zap.String("order_ref", pending[i].Ref),
				zap.Error(err))
		}
	}
	return nil
}

// GetForUser returns one order after an ownership check.
func (s *OrderService) GetForUser(ctx context.Context, user *identity.User, ref string) (*domain.Order, error) {
	order, err := s.orders.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if user == nil || order.UserID != user.ID {
		return nil, ErrNotOwner
	}
	return order, nil
}

// ListForUser returns the caller's orders.
func (s *OrderService) ListForUser(ctx context.Context, user *identity.User, limit, offset int) ([]domain.Order, error) {
	if user == nil {
		return nil, errors.New("user required")
	}
	return s.orders.ListByUser(ctx, user.ID, limit, offset)
}

// ListAll returns every order for the admin panel.
func (s *OrderService) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListAll(ctx, limit, offset)
}

// SyncInvoice pulls the invoice state from the provider and transitions the
// order. Only AWAITING_PAYMENT orders move; a PAID invoice is terminal.
func (s *OrderService) SyncInvoice(ctx context.Context, ref string) (*domain.Order, error) {
	order, err := s.orders.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if order.InvoiceID == nil {
		return nil, errors.New("order has no invoice")
	}
	if order.Status != domain.OrderStatusAwaitingPayment {
		return order, nil
	}
	if s.invoices == nil {
		return nil, errors.New("invoice provider not configured")
	}

	invoice, err := s.invoices.GetInvoice(ctx, *order.InvoiceID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	switch invoice.Status {
	case payment.InvoiceStatusPaid:
		order.Status = domain.OrderStatusPaid
	case payment.InvoiceStatusExpired:
		order.Status = domain.OrderStatusExpired
	default:
		return order, nil
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	eventType := events.EventOrderPaid
	if order.Status == domain.OrderStatusExpired {
		eventType = events.EventOrderExpired
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderRef:  order.Ref,
		UserEmail: order.UserEmail,
		Timestamp: time.Now(),
		Payload: events.OrderStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: order.Status,
		},
	})
	return order, nil
}
