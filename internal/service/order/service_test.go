package order

import (
	"context"
	"errors"
	"testing"

	"luxelush/internal/cart"
	"luxelush/internal/checkout"
	"luxelush/internal/domain"
	"luxelush/internal/gateway"
)

type stubOrders struct {
	created  []domain.Order
	statuses map[string]string
	fail     error
}

func (s *stubOrders) Create(_ context.Context, o *domain.Order) error {
	if s.fail != nil {
		return s.fail
	}
	s.created = append(s.created, *o)
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for i := range s.created {
		if s.created[i].ID == id {
			return &s.created[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) List(_ context.Context) ([]domain.Order, error) {
	return s.created, nil
}

func (s *stubOrders) SetStatus(_ context.Context, id, status string) error {
	if s.statuses == nil {
		s.statuses = make(map[string]string)
	}
	s.statuses[id] = status
	return nil
}

func (s *stubOrders) MarkEventProcessed(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

type stubGateway struct {
	createCalls int
	createErr   error
	status      *domain.OrderStatus
	statusErr   error
	verified    bool
}

func (s *stubGateway) CreateOrder(_ context.Context, o domain.Order) (*gateway.CreateOrderResult, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &gateway.CreateOrderResult{
		OrderID:          o.ID,
		PaymentSessionID: "session_abc",
		Status:           domain.OrderStatusActive,
		Amount:           o.Amount,
		Currency:         o.Currency,
	}, nil
}

func (s *stubGateway) GetOrderStatus(_ context.Context, _ string) (*domain.OrderStatus, error) {
	return s.status, s.statusErr
}

func (s *stubGateway) VerifyPayment(_ context.Context, _ string) (bool, error) {
	return s.verified, s.statusErr
}

func testState() cart.State {
	return cart.State{
		Items: []cart.Item{{
			ID:          "item-1",
			ProductID:   "prod-1",
			ProductName: "Gold Hoop Earrings",
			VariantID:   "var-1",
			Quantity:    2,
			Price:       2499,
		}},
		ItemCount: 2,
		Total:     4998,
	}
}

func testCustomer() domain.Customer {
	return domain.Customer{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"}
}

func newService(orders *stubOrders, gw *stubGateway) *Service {
	builder := checkout.Builder{Currency: "INR", ReturnURL: "https://shop.example/payment-status"}
	return New(builder, orders, gw, nil)
}

func TestCheckoutPersistsThenRegisters(t *testing.T) {
	orders := &stubOrders{}
	gw := &stubGateway{}
	svc := newService(orders, gw)

	res, err := svc.Checkout(context.Background(), testState(), testCustomer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentSessionID != "session_abc" {
		t.Fatalf("payment session id = %q", res.PaymentSessionID)
	}
	if res.Amount != 4998 {
		t.Fatalf("amount = %d, want 4998", res.Amount)
	}
	if len(orders.created) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.created))
	}
	if orders.created[0].ID != res.OrderID {
		t.Fatalf("persisted order id %q, result %q", orders.created[0].ID, res.OrderID)
	}
	if orders.created[0].Status != domain.OrderStatusActive {
		t.Fatalf("persisted status = %q", orders.created[0].Status)
	}
}

func TestCheckoutEmptyCartIsValidation(t *testing.T) {
	svc := newService(&stubOrders{}, &stubGateway{})

	_, err := svc.Checkout(context.Background(), cart.State{}, testCustomer())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckoutGatewayFailureSurfaces(t *testing.T) {
	orders := &stubOrders{}
	gw := &stubGateway{createErr: &domain.GatewayError{StatusCode: 401, Msg: "authentication failed"}}
	svc := newService(orders, gw)

	_, err := svc.Checkout(context.Background(), testState(), testCustomer())
	var gwErr *domain.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	// The local record stays: the webhook or a retryable verify can
	// still resolve it later.
	if len(orders.created) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.created))
	}
}

func TestCheckoutPersistFailureSkipsGateway(t *testing.T) {
	orders := &stubOrders{fail: errors.New("connection refused")}
	gw := &stubGateway{}
	svc := newService(orders, gw)

	if _, err := svc.Checkout(context.Background(), testState(), testCustomer()); err == nil {
		t.Fatal("expected error")
	}
	if gw.createCalls != 0 {
		t.Fatalf("gateway called %d times, want 0", gw.createCalls)
	}
}

func TestVerifyMarksOrderPaid(t *testing.T) {
	orders := &stubOrders{}
	gw := &stubGateway{verified: true}
	svc := newService(orders, gw)

	paid, err := svc.Verify(context.Background(), "ORDER_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid {
		t.Fatal("expected paid")
	}
	if orders.statuses["ORDER_1"] != domain.OrderStatusPaid {
		t.Fatalf("status = %q, want PAID", orders.statuses["ORDER_1"])
	}
}

func TestVerifyUnpaidLeavesOrderAlone(t *testing.T) {
	orders := &stubOrders{}
	svc := newService(orders, &stubGateway{verified: false})

	paid, err := svc.Verify(context.Background(), "ORDER_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid {
		t.Fatal("expected not paid")
	}
	if len(orders.statuses) != 0 {
		t.Fatalf("unexpected status writes: %v", orders.statuses)
	}
}

func TestVerifyRequiresOrderID(t *testing.T) {
	svc := newService(&stubOrders{}, &stubGateway{})

	if _, err := svc.Verify(context.Background(), ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatusRequiresOrderID(t *testing.T) {
	svc := newService(&stubOrders{}, &stubGateway{})

	if _, err := svc.Status(context.Background(), ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
