package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metricsHandler is mounted at /metrics when non-nil.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	metricsHandler http.Handler,
) error {
	if err := registerValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	setupAPIV1Routes(r, services)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerPurchaseRoutes(v1, services.Purchase)
	registerCurrencyRoutes(v1, services.ExchangeRate)
}
