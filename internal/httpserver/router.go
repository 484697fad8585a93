package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"luxelush/internal/logger"
)

func buildRouter(log *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logger.Middleware(log), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps, log))
		api.GET("/products/:id", getProductHandler(deps, log))
		api.GET("/products/:id/reviews", listReviewsHandler(deps, log))
		api.POST("/products/:id/reviews", submitReviewHandler(deps, log))

		if deps.Carts != nil {
			api.GET("/cart/:session", getCartHandler(deps, log))
			api.POST("/cart/:session/actions", cartActionHandler(deps, log))
			api.DELETE("/cart/:session", clearCartHandler(deps, log))
		}

		api.POST("/payment", createPaymentHandler(deps, log))
		api.POST("/order-status", orderStatusHandler(deps, log))
		api.GET("/payment/verify", verifyPaymentHandler(deps, log))
		api.POST("/webhook", webhookHandler(deps, log))

		admin := api.Group("/admin")
		{
			admin.POST("/login", loginHandler(deps, log))

			protected := admin.Group("", adminAuth(deps))
			{
				protected.POST("/products", createProductHandler(deps, log))
				protected.PUT("/products/:id", updateProductHandler(deps, log))
				protected.DELETE("/products/:id", deleteProductHandler(deps, log))
				protected.POST("/products/:id/variants", addVariantHandler(deps, log))
				protected.PUT("/variants/:id", updateVariantHandler(deps, log))
				protected.DELETE("/variants/:id", deleteVariantHandler(deps, log))
				if deps.Images != nil {
					protected.POST("/products/:id/variants/:variantId/images", uploadImageHandler(deps, log))
				}
				protected.GET("/reviews/pending", pendingReviewsHandler(deps, log))
				protected.PUT("/reviews/:id/status", moderateReviewHandler(deps, log))
				protected.DELETE("/reviews/:id", deleteReviewHandler(deps, log))
				protected.GET("/orders", listOrdersHandler(deps, log))
				protected.GET("/orders/:id", getOrderHandler(deps, log))
			}
		}
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
