package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxelush/internal/domain"
)

// respondError maps the domain error taxonomy to HTTP statuses. Provider
// trouble (gateway and protocol errors) is a 502: the client did nothing
// wrong, the upstream did.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		valErr   *domain.ValidationError
		gwErr    *domain.GatewayError
		protoErr *domain.ProtocolError
		intErr   *domain.IntegrationError
	)
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": valErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "already exists"})
	case errors.As(err, &protoErr):
		log.Error("gateway protocol violation", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "payment gateway returned an unexpected response"})
	case errors.As(err, &gwErr):
		log.Warn("gateway error", zap.Int("gateway_status", gwErr.StatusCode), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": gwErr.Msg})
	case errors.As(err, &intErr):
		log.Error("integration misconfigured", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "payment integration is not configured"})
	default:
		log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
