package webhook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"luxelush/internal/domain"
)

// OrderStore is the slice of order persistence the processor needs.
// MarkEventProcessed records (order id, event type) and reports whether
// this delivery is the first one; replays return false and are skipped,
// so stock is never decremented twice and the confirmation email is
// never sent twice for the same event.
type OrderStore interface {
	MarkEventProcessed(ctx context.Context, orderID, eventType string) (bool, error)
	SetStatus(ctx context.Context, orderID, status string) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// StockStore decrements variant stock once a payment is confirmed.
type StockStore interface {
	DecrementStock(ctx context.Context, variantID string, quantity int) error
}

// Mailer sends the customer-facing order confirmation.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
}

type Processor struct {
	orders OrderStore
	stock  StockStore
	mailer Mailer
	log    *zap.Logger
}

func NewProcessor(orders OrderStore, stock StockStore, mailer Mailer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{orders: orders, stock: stock, mailer: mailer, log: log}
}

// Handle applies one provider event. Errors are returned for logging
// only; the HTTP layer acknowledges the provider regardless, since the
// provider retries indefinitely on non-2xx and retries of a recorded
// event are already no-ops.
func (p *Processor) Handle(ctx context.Context, evt Event) error {
	kind := Classify(evt.Type)
	orderID := evt.Data.Order.OrderID

	if kind == KindUnrecognized {
		p.log.Info("unrecognized webhook type acknowledged",
			zap.String("type", evt.Type),
			zap.String("order_id", orderID))
		return nil
	}
	if orderID == "" {
		return fmt.Errorf("webhook %s carries no order_id", evt.Type)
	}

	applied, err := p.orders.MarkEventProcessed(ctx, orderID, evt.Type)
	if err != nil {
		return fmt.Errorf("record webhook event: %w", err)
	}
	if !applied {
		p.log.Info("webhook replay skipped",
			zap.String("type", evt.Type),
			zap.String("order_id", orderID))
		return nil
	}

	switch kind {
	case KindPaymentSucceeded:
		return p.handleSuccess(ctx, orderID, evt)
	case KindPaymentFailed:
		p.log.Info("payment failed",
			zap.String("order_id", orderID),
			zap.String("reason", evt.Data.Payment.Message))
		return p.orders.SetStatus(ctx, orderID, domain.OrderStatusFailed)
	case KindPaymentDropped:
		p.log.Info("payment dropped by user", zap.String("order_id", orderID))
		return p.orders.SetStatus(ctx, orderID, domain.OrderStatusAbandoned)
	}
	return nil
}

func (p *Processor) handleSuccess(ctx context.Context, orderID string, evt Event) error {
	if err := p.orders.SetStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	order, err := p.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", orderID, err)
	}

	// Stock moves only on confirmed payment. Overselling during the
	// checkout gap is accepted; double-selling after confirmation is not.
	for _, item := range order.Items {
		if err := p.stock.DecrementStock(ctx, item.VariantID, item.Quantity); err != nil {
			p.log.Error("stock decrement failed",
				zap.String("order_id", orderID),
				zap.String("variant_id", item.VariantID),
				zap.Error(err))
		}
	}

	p.log.Info("payment confirmed",
		zap.String("order_id", orderID),
		zap.Int64("cf_payment_id", evt.Data.Payment.PaymentID),
		zap.Int64("amount", order.Amount))

	if p.mailer != nil {
		go func(o *domain.Order) {
			if err := p.mailer.SendOrderConfirmation(context.Background(), o); err != nil {
				p.log.Error("confirmation email failed",
					zap.String("order_id", o.ID),
					zap.Error(err))
			}
		}(order)
	}
	return nil
}
