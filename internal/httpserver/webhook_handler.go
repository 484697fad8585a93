package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/webhook"
)

// webhookHandler receives payment notifications from the gateway. The
// provider retries on any non-2xx, so every processing outcome answers
// 200; only a forged signature is rejected. Failures behind a 200 are
// recovered by the return-URL verification path.
func webhookHandler(deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			log.Warn("webhook body read failed", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		if deps.WebhookSecret == "" {
			log.Warn("webhook secret not configured, skipping signature verification")
		} else if !webhook.ValidSignature(
			deps.WebhookSecret,
			c.GetHeader(webhook.TimestampHeader),
			body,
			c.GetHeader(webhook.SignatureHeader),
		) {
			log.Warn("webhook signature verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid signature"})
			return
		}

		evt, err := webhook.Parse(body)
		if err != nil {
			log.Warn("unparseable webhook payload", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		if err := deps.Webhook.Handle(c.Request.Context(), evt); err != nil {
			log.Error("webhook processing failed",
				zap.String("event_type", evt.Type),
				zap.String("order_id", evt.Data.Order.OrderID),
				zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
