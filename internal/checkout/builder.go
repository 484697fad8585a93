// Package checkout turns a cart snapshot plus customer contact details
// into a gateway-agnostic order. It performs no I/O.
package checkout

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"luxelush/internal/cart"
	"luxelush/internal/domain"
)

// Builder carries the process-wide order defaults. ReturnURL receives
// the order id as a query parameter so the return-URL page can run its
// best-effort verification.
type Builder struct {
	Currency  string
	ReturnURL string
	NotifyURL string
	Note      string
}

type itemSummary struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	VariantID string `json:"variantId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Build validates the inputs and assembles an order. The amount is the
// cart total at this moment; the order id is freshly generated and never
// reused across attempts.
func (b Builder) Build(state cart.State, customer domain.Customer) (domain.Order, error) {
	// The snapshot's ItemCount and Total are advisory. The charged
	// amount is always derived from the line items here.
	state = cart.Recompute(state)
	if len(state.Items) == 0 {
		return domain.Order{}, domain.Validationf("cart is empty")
	}
	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Email) == "" ||
		strings.TrimSpace(customer.Phone) == "" {
		return domain.Order{}, domain.Validationf("customer name, email and phone are required")
	}

	now := time.Now()
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("CUST_%d", now.UnixMilli())
	}

	orderID := NewOrderID()
	returnURL := b.ReturnURL
	if returnURL != "" {
		sep := "?"
		if strings.Contains(returnURL, "?") {
			sep = "&"
		}
		returnURL += sep + "order_id=" + orderID
	}

	summaries := make([]itemSummary, 0, len(state.Items))
	for _, item := range state.Items {
		summaries = append(summaries, itemSummary{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			VariantID: item.VariantID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	itemsJSON, err := json.Marshal(summaries)
	if err != nil {
		return domain.Order{}, err
	}

	note := b.Note
	if note == "" {
		note = "Luxe & Lush jewelry purchase"
	}

	items := make([]domain.OrderItem, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			VariantID: item.VariantID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return domain.Order{
		ID:        orderID,
		Amount:    state.Total,
		Currency:  b.Currency,
		Customer:  customer,
		Note:      note,
		ReturnURL: returnURL,
		NotifyURL: b.NotifyURL,
		Tags: map[string]string{
			"source": "website",
			"items":  string(itemsJSON),
		},
		Items:     items,
		Status:    domain.OrderStatusActive,
		CreatedAt: now.UTC(),
	}, nil
}

// NewOrderID generates an order identifier of the form
// ORDER_<unix-millis>_<random>. The timestamp keeps ids roughly
// monotonic, the random suffix disambiguates same-millisecond orders
// without a central counter.
func NewOrderID() string {
	return fmt.Sprintf("ORDER_%d_%d", time.Now().UnixMilli(), rand.Intn(1000))
}
