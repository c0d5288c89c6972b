package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
)

type portfolioHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newPortfolioHandler(ls portssvc.LedgerSvcFacade) *portfolioHandler {
	return &portfolioHandler{ledgerService: ls}
}

func registerPortfolioRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPortfolioHandler(services.Ledger)
	rg.GET("/portfolio", h.GetPortfolio)
}

// GetPortfolio godoc
// @Summary Get the current portfolio
// @Description Returns the caller's balance and asset holdings.
// @Tags portfolio
// @Produce json
// @Success 200 {object} dto.PortfolioResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [get]
func (h *portfolioHandler) GetPortfolio(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	portfolio, err := h.ledgerService.GetPortfolio(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioResponse(portfolio))
}
