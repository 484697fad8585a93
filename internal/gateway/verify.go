package gateway

import "luxelush/internal/domain"

// Verified decides whether an order status structure represents a
// confirmed payment. The order-level PAID flag is the provider's summary
// field; when individual payment attempts are listed, the most recent
// one must also be SUCCESS, guarding against a stale PAID summary after
// a later failed retry. With no attempts listed the summary stands
// alone. The webhook remains the authoritative completion signal; this
// is the defensive client-side double check.
func Verified(status *domain.OrderStatus) bool {
	if status == nil || status.Status != domain.OrderStatusPaid {
		return false
	}
	if len(status.Payments) == 0 {
		return true
	}
	last := status.Payments[len(status.Payments)-1]
	return last.Status == domain.PaymentStatusSuccess
}
