package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"traderlens/internal/service"
)

type PortfolioHandler struct {
	Ledger *service.LedgerService
}

func (h *PortfolioHandler) Register(r *gin.Engine) {
	g := r.Group("/api/portfolio")
	g.GET("/summary", h.summary)
}

// @Summary Live portfolio summaries
// @Description Latest snapshot per trader reduced to total assets and a ranked position breakdown, richest trader first.
// @Tags portfolio
// @Success 200 {object} map[string]any
// @Router /api/portfolio/summary [get]
func (h *PortfolioHandler) summary(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	summaries, err := h.Ledger.Portfolio(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, summaries, map[string]any{"traders": len(summaries)})
}
