package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/dto"
	"github.com/SscSPs/purchase_fx_app/internal/middleware"
)

// purchaseHandler handles HTTP requests related to purchases.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// newPurchaseHandler creates a new purchaseHandler.
func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchaseID", h.getPurchase)
		purchases.GET("/:purchaseID/convert", h.convertPurchase)
	}
}

// createPurchase godoc
// @Summary Record a purchase
// @Description Stores a purchase transaction in USD. The amount must be positive and rounded to cents.
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create purchase"
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "code": "validation_error"})
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create purchase")
		return
	}

	c.Header("Location", "/api/v1/purchases/"+purchase.PurchaseID)
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Tags purchases
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 500 {object} map[string]string "Failed to list purchases"
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPurchases", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error(), "code": "validation_error"})
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPurchaseResponse(purchases))
}

// getPurchase godoc
// @Summary Get a purchase by ID
// @Tags purchases
// @Produce  json
// @Param   purchaseID path string true "Purchase ID (UUID)"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid purchase ID"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID, ok := purchaseIDParam(c)
	if !ok {
		return
	}
	logger = logger.With(slog.String("purchase_id", purchaseID))

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// convertPurchase godoc
// @Summary Convert a purchase into another currency
// @Description Uses the latest Treasury exchange rate published within six months before the purchase date.
// @Tags purchases
// @Produce  json
// @Param   purchaseID path string true "Purchase ID (UUID)"
// @Param   currency query string true "Target currency, e.g. Brazil-Real"
// @Success 200 {object} dto.ConvertedPurchaseResponse
// @Failure 400 {object} map[string]string "Invalid purchase ID or missing currency"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Failure 422 {object} map[string]string "No exchange rate within six months of the purchase date"
// @Failure 503 {object} map[string]string "Exchange rate service unavailable"
// @Router /purchases/{purchaseID}/convert [get]
func (h *purchaseHandler) convertPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID, ok := purchaseIDParam(c)
	if !ok {
		return
	}

	var query dto.ConvertPurchaseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Missing target currency for conversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'currency' query parameter is required", "code": "validation_error"})
		return
	}

	logger = logger.With(slog.String("purchase_id", purchaseID), slog.String("currency", query.Currency))
	logger.Info("Received request to convert purchase")

	converted, err := h.purchaseService.GetConvertedPurchase(c.Request.Context(), purchaseID, query.Currency)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to convert purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertedPurchaseResponse(converted))
}

// purchaseIDParam validates the :purchaseID path parameter and writes a 400 if it is not a UUID.
func purchaseIDParam(c *gin.Context) (string, bool) {
	raw := c.Param("purchaseID")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID format", "code": "validation_error"})
		return "", false
	}
	return id.String(), true
}
