package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
)

type fundingHandler struct {
	fundingService portssvc.FundingSvcFacade
}

func newFundingHandler(fs portssvc.FundingSvcFacade) *fundingHandler {
	return &fundingHandler{fundingService: fs}
}

func registerFundingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFundingHandler(services.Funding)
	rg.POST("/portfolio/deposit", h.Deposit)
}

// Deposit godoc
// @Summary Deposit simulated funds
// @Description Credits the account balance after validating the card form. No card is ever charged.
// @Tags funding
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit form"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio/deposit [post]
func (h *fundingHandler) Deposit(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	portfolio, err := h.fundingService.Deposit(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DepositResponse{Portfolio: dto.ToPortfolioResponse(portfolio)})
}
