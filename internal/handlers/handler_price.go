package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

type priceHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newPriceHandler(ps portssvc.PricingSvcFacade) *priceHandler {
	return &priceHandler{pricingService: ps}
}

func registerPriceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPriceHandler(services.Pricing)
	rg.GET("/prices/:assetID", h.GetQuote)
}

// GetQuote godoc
// @Summary Get an asset price
// @Description Returns a live quote when available, otherwise the reference price.
// @Tags prices
// @Produce json
// @Param assetID path string true "Asset identifier, e.g. bitcoin"
// @Success 200 {object} dto.PriceQuoteResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /prices/{assetID} [get]
func (h *priceHandler) GetQuote(c *gin.Context) {
	assetID := c.Param("assetID")

	quote, err := h.pricingService.GetQuote(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceQuoteResponse(quote))
}
