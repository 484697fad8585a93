package order

import (
	"context"

	"go.uber.org/zap"

	"luxelush/internal/cart"
	"luxelush/internal/checkout"
	"luxelush/internal/domain"
	"luxelush/internal/gateway"
	orderrepo "luxelush/internal/repository/order"
)

// Gateway is the slice of the payment client the order flow needs.
type Gateway interface {
	CreateOrder(ctx context.Context, order domain.Order) (*gateway.CreateOrderResult, error)
	GetOrderStatus(ctx context.Context, orderID string) (*domain.OrderStatus, error)
	VerifyPayment(ctx context.Context, orderID string) (bool, error)
}

// CheckoutResult is what the storefront needs to hand the payment over
// to the hosted checkout page.
type CheckoutResult struct {
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
}

type Service struct {
	builder checkout.Builder
	orders  orderrepo.Repository
	gw      Gateway
	log     *zap.Logger
}

func New(builder checkout.Builder, orders orderrepo.Repository, gw Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{builder: builder, orders: orders, gw: gw, log: log}
}

// Checkout assembles an order from the cart, persists it, then registers
// it with the gateway. The local record is written first so a webhook
// that races the gateway response still finds the order.
func (s *Service) Checkout(ctx context.Context, state cart.State, customer domain.Customer) (*CheckoutResult, error) {
	order, err := s.builder.Build(state, customer)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}

	res, err := s.gw.CreateOrder(ctx, order)
	if err != nil {
		s.log.Warn("gateway order creation failed",
			zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("checkout started",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("customer_email", customer.Email))

	return &CheckoutResult{
		OrderID:          order.ID,
		PaymentSessionID: res.PaymentSessionID,
		Amount:           order.Amount,
		Currency:         order.Currency,
	}, nil
}

// Status asks the gateway for its current view of the order.
func (s *Service) Status(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	if orderID == "" {
		return nil, domain.Validationf("order_id is required")
	}
	return s.gw.GetOrderStatus(ctx, orderID)
}

// Verify is the return-URL reconciliation: a confirmed payment updates
// the local record immediately instead of waiting for the webhook.
func (s *Service) Verify(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, domain.Validationf("order_id is required")
	}
	paid, err := s.gw.VerifyPayment(ctx, orderID)
	if err != nil {
		return false, err
	}
	if paid {
		if err := s.orders.SetStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
			s.log.Warn("marking order paid after verification failed",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}
	return paid, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}
