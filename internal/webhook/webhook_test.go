package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"luxelush/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		TypePaymentSuccess:      KindPaymentSucceeded,
		TypePaymentFailed:       KindPaymentFailed,
		TypePaymentUserDropped:  KindPaymentDropped,
		"REFUND_STATUS_WEBHOOK": KindUnrecognized,
		"":                      KindUnrecognized,
	}
	for in, want := range cases {
		if got := Classify(in); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	raw := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"ORDER_1","order_amount":4500},"payment":{"cf_payment_id":77,"payment_status":"SUCCESS"}}}`)
	evt, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt.Data.Order.OrderID != "ORDER_1" || evt.Data.Payment.PaymentID != 77 {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidSignature(t *testing.T) {
	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK"}`)
	sig := sign("topsecret", "1700000000", body)

	if !ValidSignature("topsecret", "1700000000", body, sig) {
		t.Fatalf("expected valid signature")
	}
	if ValidSignature("topsecret", "1700000001", body, sig) {
		t.Fatalf("signature should bind the timestamp")
	}
	if ValidSignature("other", "1700000000", body, sig) {
		t.Fatalf("signature should bind the secret")
	}
	if ValidSignature("topsecret", "1700000000", body, "") {
		t.Fatalf("empty signature should never validate")
	}
}

type stubOrderStore struct {
	processed   map[string]bool
	applied     bool
	statuses    map[string]string
	order       *domain.Order
	getErr      error
	markErr     error
	setStateErr error
}

func newStubOrderStore(order *domain.Order) *stubOrderStore {
	return &stubOrderStore{processed: map[string]bool{}, statuses: map[string]string{}, order: order, applied: true}
}

func (s *stubOrderStore) MarkEventProcessed(_ context.Context, orderID, eventType string) (bool, error) {
	if s.markErr != nil {
		return false, s.markErr
	}
	key := orderID + "|" + eventType
	if s.processed[key] {
		return false, nil
	}
	s.processed[key] = true
	return true, nil
}

func (s *stubOrderStore) SetStatus(_ context.Context, orderID, status string) error {
	s.statuses[orderID] = status
	return s.setStateErr
}

func (s *stubOrderStore) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

type stubStock struct {
	mu   sync.Mutex
	dec  map[string]int
	errs map[string]error
}

func newStubStock() *stubStock { return &stubStock{dec: map[string]int{}} }

func (s *stubStock) DecrementStock(_ context.Context, variantID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[variantID]; err != nil {
		return err
	}
	s.dec[variantID] += qty
	return nil
}

type stubMailer struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (m *stubMailer) SendOrderConfirmation(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	m.sent = append(m.sent, order.ID)
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return nil
}

func successEvent() Event {
	return Event{
		Type: TypePaymentSuccess,
		Data: EventData{
			Order:   OrderPayload{OrderID: "ORDER_1", OrderAmount: 4500},
			Payment: PaymentPayload{PaymentID: 77, Status: domain.PaymentStatusSuccess},
		},
	}
}

func paidOrder() *domain.Order {
	return &domain.Order{
		ID:     "ORDER_1",
		Amount: 4500,
		Customer: domain.Customer{
			Name: "Asha", Email: "asha@example.com", Phone: "9999999999",
		},
		Items: []domain.OrderItem{
			{ProductID: "p1", VariantID: "v1", Quantity: 2, Price: 1500},
			{ProductID: "p2", VariantID: "v2", Quantity: 1, Price: 1500},
		},
	}
}

func TestHandleSuccessAppliesSideEffectsOnce(t *testing.T) {
	orders := newStubOrderStore(paidOrder())
	stock := newStubStock()
	mailer := &stubMailer{done: make(chan struct{})}
	p := NewProcessor(orders, stock, mailer, nil)

	if err := p.Handle(context.Background(), successEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.statuses["ORDER_1"] != domain.OrderStatusPaid {
		t.Fatalf("order not marked paid: %v", orders.statuses)
	}

	select {
	case <-mailer.done:
	case <-time.After(time.Second):
		t.Fatalf("confirmation email never sent")
	}

	stock.mu.Lock()
	if stock.dec["v1"] != 2 || stock.dec["v2"] != 1 {
		t.Fatalf("unexpected stock decrements %v", stock.dec)
	}
	stock.mu.Unlock()

	// Replay: the same event must not double-apply anything.
	if err := p.Handle(context.Background(), successEvent()); err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	stock.mu.Lock()
	if stock.dec["v1"] != 2 {
		t.Fatalf("replay double-decremented stock: %v", stock.dec)
	}
	stock.mu.Unlock()
	mailer.mu.Lock()
	if len(mailer.sent) != 1 {
		t.Fatalf("replay re-sent email: %v", mailer.sent)
	}
	mailer.mu.Unlock()
}

func TestHandleFailureAndDropped(t *testing.T) {
	orders := newStubOrderStore(paidOrder())
	p := NewProcessor(orders, newStubStock(), nil, nil)

	evt := successEvent()
	evt.Type = TypePaymentFailed
	if err := p.Handle(context.Background(), evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.statuses["ORDER_1"] != domain.OrderStatusFailed {
		t.Fatalf("expected FAILED, got %v", orders.statuses)
	}

	evt.Type = TypePaymentUserDropped
	if err := p.Handle(context.Background(), evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.statuses["ORDER_1"] != domain.OrderStatusAbandoned {
		t.Fatalf("expected ABANDONED, got %v", orders.statuses)
	}
}

func TestHandleUnrecognizedIsAcknowledged(t *testing.T) {
	orders := newStubOrderStore(paidOrder())
	p := NewProcessor(orders, newStubStock(), nil, nil)

	if err := p.Handle(context.Background(), Event{Type: "SOMETHING_NEW"}); err != nil {
		t.Fatalf("unrecognized events must not error: %v", err)
	}
	if len(orders.processed) != 0 {
		t.Fatalf("unrecognized events must not be recorded: %v", orders.processed)
	}
}

func TestHandleMissingOrderID(t *testing.T) {
	p := NewProcessor(newStubOrderStore(nil), newStubStock(), nil, nil)
	evt := Event{Type: TypePaymentSuccess}
	if err := p.Handle(context.Background(), evt); err == nil {
		t.Fatalf("expected error for missing order id")
	}
}
