// Package webhook classifies and processes payment notifications from
// the gateway. Webhooks, not the return-URL check, are the authoritative
// completion signal for an order.
package webhook

import "encoding/json"

// Raw provider event types.
const (
	TypePaymentSuccess     = "PAYMENT_SUCCESS_WEBHOOK"
	TypePaymentFailed      = "PAYMENT_FAILED_WEBHOOK"
	TypePaymentUserDropped = "PAYMENT_USER_DROPPED_WEBHOOK"
)

// Kind is the classified event category.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindPaymentSucceeded
	KindPaymentFailed
	KindPaymentDropped
)

func (k Kind) String() string {
	switch k {
	case KindPaymentSucceeded:
		return "payment-succeeded"
	case KindPaymentFailed:
		return "payment-failed"
	case KindPaymentDropped:
		return "payment-dropped"
	default:
		return "unrecognized"
	}
}

// Classify maps a provider event type onto exactly one Kind. Unknown
// types classify as unrecognized and are acknowledged, never rejected,
// so new provider event types cannot break the receiver.
func Classify(eventType string) Kind {
	switch eventType {
	case TypePaymentSuccess:
		return KindPaymentSucceeded
	case TypePaymentFailed:
		return KindPaymentFailed
	case TypePaymentUserDropped:
		return KindPaymentDropped
	default:
		return KindUnrecognized
	}
}

// Event is the provider notification payload.
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Order   OrderPayload   `json:"order"`
	Payment PaymentPayload `json:"payment"`
}

type OrderPayload struct {
	OrderID     string  `json:"order_id"`
	OrderAmount float64 `json:"order_amount"`
	Currency    string  `json:"order_currency"`
}

type PaymentPayload struct {
	PaymentID     int64   `json:"cf_payment_id"`
	Status        string  `json:"payment_status"`
	Amount        float64 `json:"payment_amount"`
	Message       string  `json:"payment_message"`
	PaymentTime   string  `json:"payment_time"`
	PaymentMethod any     `json:"payment_method"`
}

// Parse decodes a raw webhook body.
func Parse(raw []byte) (Event, error) {
	var evt Event
	err := json.Unmarshal(raw, &evt)
	return evt, err
}
