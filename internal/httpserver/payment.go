package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/cart"
	"luxelush/internal/domain"
)

type checkoutRequest struct {
	Cart     cart.State      `json:"cart"`
	Customer domain.Customer `json:"customer"`
}

func createPaymentHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}

		state, err := repriceFromCatalog(c, deps, req.Cart)
		if err != nil {
			respondError(c, log, err)
			return
		}

		res, err := deps.Orders.Checkout(c.Request.Context(), state, req.Customer)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondOK(c, res)
	}
}

// repriceFromCatalog replaces every line's name and unit price with the
// catalog's current values. The submitted cart decides what is bought,
// the catalog decides what it costs.
func repriceFromCatalog(c *gin.Context, deps Deps, state cart.State) (cart.State, error) {
	for i, item := range state.Items {
		product, err := deps.Products.Get(c.Request.Context(), item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return cart.State{}, domain.Validationf("product %q is no longer available", item.ProductID)
			}
			return cart.State{}, err
		}
		variant := product.VariantByID(item.VariantID)
		if variant == nil {
			return cart.State{}, domain.Validationf("variant %q not found on product %q", item.VariantID, item.ProductID)
		}
		state.Items[i].ProductName = product.Name
		state.Items[i].Price = product.BasePrice + variant.Price
	}
	return cart.Recompute(state), nil
}

type orderStatusRequest struct {
	OrderID string `json:"order_id"`
}

func orderStatusHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}

		status, err := deps.Orders.Status(c.Request.Context(), req.OrderID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondOK(c, status)
	}
}

func verifyPaymentHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Query("order_id")
		paid, err := deps.Orders.Verify(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondOK(c, gin.H{"order_id": orderID, "verified": paid})
	}
}
