package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/cart"
	"luxelush/internal/domain"
)

func getCartHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := deps.Carts.Load(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

type cartActionRequest struct {
	Type            cart.ActionType `json:"type"`
	ProductID       string          `json:"productId"`
	VariantID       string          `json:"variantId"`
	ItemID          string          `json:"itemId"`
	Quantity        int             `json:"quantity"`
	Size            string          `json:"size"`
	Personalization string          `json:"personalization"`
}

// cartActionHandler applies one reducer action to the stored cart. Adds
// resolve the product server-side so the stored price always comes from
// the catalog, never from the client.
//
// The load-apply-save sequence is not atomic: concurrent actions on the
// same session can lose an update. A session has a single browser
// writing to it, so last-write-wins is accepted here.
func cartActionHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, log, domain.Validationf("invalid request body: %v", err))
			return
		}

		action := cart.Action{
			Type:            req.Type,
			VariantID:       req.VariantID,
			ItemID:          req.ItemID,
			Quantity:        req.Quantity,
			Size:            req.Size,
			Personalization: req.Personalization,
		}
		if req.Type == cart.AddItem {
			product, err := deps.Products.Get(c.Request.Context(), req.ProductID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			action.Product = product
		}

		state, err := deps.Carts.Load(c.Request.Context(), c.Param("session"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		next, err := cart.Apply(state, action)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := deps.Carts.Save(c.Request.Context(), c.Param("session"), next); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, next)
	}
}

func clearCartHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Carts.Delete(c.Request.Context(), c.Param("session")); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cart.Empty())
	}
}
