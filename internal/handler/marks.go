package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"traderlens/internal/repository"
)

type MarksHandler struct {
	Repo repository.Repository
}

func (h *MarksHandler) Register(r *gin.Engine) {
	g := r.Group("/api/markets")
	g.GET("/marks", h.list)
}

// @Summary Latest mark prices
// @Tags markets
// @Param symbols query string false "comma-separated symbol filter"
// @Success 200 {object} map[string]any
// @Router /api/markets/marks [get]
func (h *MarksHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var symbols []string
	if raw := strings.TrimSpace(c.Query("symbols")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				symbols = append(symbols, strings.ToUpper(part))
			}
		}
	}
	items, err := h.Repo.ListMarkPrices(c.Request.Context(), symbols)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"total": len(items)})
}
