package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
)

type tradeHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTradeHandler(ls portssvc.LedgerSvcFacade) *tradeHandler {
	return &tradeHandler{ledgerService: ls}
}

func registerTradeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTradeHandler(services.Ledger)
	rg.POST("/trades", h.ApplyTrade)
	rg.POST("/trades/exchange", h.Exchange)
}

// tradeResponse builds the response body shared by both trade endpoints:
// the appended transactions plus the portfolio as it stands after the trade.
func (h *tradeHandler) tradeResponse(c *gin.Context, accountID string, txns []domain.Transaction) {
	portfolio, err := h.ledgerService.GetPortfolio(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TradeResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Portfolio:    dto.ToPortfolioResponse(portfolio),
	})
}

// ApplyTrade godoc
// @Summary Apply a buy or sell
// @Description Applies one trade to the caller's portfolio and appends it to the trade log.
// @Tags trades
// @Accept json
// @Produce json
// @Param trade body dto.ApplyTradeRequest true "Trade to apply"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades [post]
func (h *tradeHandler) ApplyTrade(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.ApplyTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.ApplyTrade(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.tradeResponse(c, accountID, []domain.Transaction{*txn})
}

// Exchange godoc
// @Summary Exchange one asset for another
// @Description Sells the source asset and buys the target asset at the supplied prices.
// @Tags trades
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeRequest true "Exchange to perform"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/exchange [post]
func (h *tradeHandler) Exchange(c *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txns, err := h.ledgerService.Exchange(c.Request.Context(), accountID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.tradeResponse(c, accountID, txns)
}
