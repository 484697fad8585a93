package domain

import "time"

// Order statuses as reported by the payment gateway.
const (
	OrderStatusActive    = "ACTIVE"
	OrderStatusPaid      = "PAID"
	OrderStatusExpired   = "EXPIRED"
	OrderStatusCancelled = "CANCELLED"
)

// Local order record states written by webhook processing. The gateway
// never reports these; they exist only in this store's order table.
const (
	OrderStatusFailed    = "FAILED"
	OrderStatusAbandoned = "ABANDONED"
)

// Payment attempt statuses as reported by the payment gateway.
const (
	PaymentStatusSuccess     = "SUCCESS"
	PaymentStatusFailed      = "FAILED"
	PaymentStatusPending     = "PENDING"
	PaymentStatusUserDropped = "USER_DROPPED"
)

// Customer is the contact identity attached to one checkout attempt. The
// fields are validated by the storefront form before they reach this
// layer; the order builder only checks presence.
type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
	Phone string `json:"customer_phone"`
}

// Order records one checkout attempt. An order id is never reused: a
// retried checkout generates a fresh id.
type Order struct {
	ID        string            `json:"orderId"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Customer  Customer          `json:"customer"`
	Note      string            `json:"note,omitempty"`
	ReturnURL string            `json:"returnUrl,omitempty"`
	NotifyURL string            `json:"notifyUrl,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Items     []OrderItem       `json:"items,omitempty"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// OrderItem is a purchased line captured at order-creation time.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	VariantID string `json:"variantId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// PaymentAttempt is one gateway-side payment try against an order.
type PaymentAttempt struct {
	ID      int64  `json:"cf_payment_id"`
	Status  string `json:"payment_status"`
	Amount  int64  `json:"payment_amount"`
	Message string `json:"payment_message,omitempty"`
	Time    string `json:"payment_time,omitempty"`
}

// OrderStatus is the gateway's view of an order: a summary status plus
// the list of individual payment attempts, oldest first.
type OrderStatus struct {
	OrderID  string           `json:"order_id"`
	Status   string           `json:"order_status"`
	Amount   int64            `json:"order_amount"`
	Currency string           `json:"order_currency"`
	Payments []PaymentAttempt `json:"payments,omitempty"`
}
