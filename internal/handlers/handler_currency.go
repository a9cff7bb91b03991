package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/dto"
	"github.com/SscSPs/purchase_fx_app/internal/middleware"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencyReaderSvc
}

func newCurrencyHandler(cs portssvc.CurrencyReaderSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyReaderSvc) {
	h := newCurrencyHandler(currencyService)

	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List currencies available for conversion
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyListResponse
// @Failure 503 {object} map[string]string "Exchange rate service unavailable"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.AvailableCurrencies(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyListResponse(currencies))
}
