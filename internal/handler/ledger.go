package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"traderlens/internal/ledger"
	"traderlens/internal/service"
)

type LedgerHandler struct {
	Ledger *service.LedgerService
}

func (h *LedgerHandler) Register(r *gin.Engine) {
	g := r.Group("/api/ledger")
	g.GET("/history", h.history)
}

// @Summary Enriched snapshot history
// @Description Per-trader chronological snapshot series with balance deltas and position aggregates. All filters optional; defaults to the last 30 days across all traders.
// @Tags ledger
// @Param trader_id query string false "trader filter"
// @Param start query string false "window start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "window end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} map[string]any
// @Router /api/ledger/history [get]
func (h *LedgerHandler) history(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	view, err := h.Ledger.History(
		c.Request.Context(),
		c.Query("trader_id"),
		c.Query("start"),
		c.Query("end"),
	)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidDate) || errors.Is(err, ledger.ErrInvalidRange) {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, view, nil)
}
