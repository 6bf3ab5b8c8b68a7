package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"traderlens/internal/models"
	"traderlens/internal/repository"
)

type TradersHandler struct {
	Repo repository.Repository
}

func (h *TradersHandler) Register(r *gin.Engine) {
	g := r.Group("/api/traders")
	g.GET("", h.list)
	g.POST("", h.upsert)
	g.GET("/:trader_id", h.get)
	g.PUT("/:trader_id/enabled", h.putEnabled)
}

// @Summary List monitored traders
// @Tags traders
// @Success 200 {object} map[string]any
// @Router /api/traders [get]
func (h *TradersHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListTraders(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"total": len(items)})
}

// @Summary Get one trader
// @Tags traders
// @Param trader_id path string true "trader id"
// @Success 200 {object} map[string]any
// @Router /api/traders/{trader_id} [get]
func (h *TradersHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	traderID := strings.TrimSpace(c.Param("trader_id"))
	if traderID == "" {
		Error(c, http.StatusBadRequest, "invalid trader_id", nil)
		return
	}
	item, err := h.Repo.GetTraderByTraderID(c.Request.Context(), traderID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "trader not found", nil)
		return
	}
	Ok(c, item, nil)
}

type upsertTraderRequest struct {
	TraderID     string `json:"trader_id" binding:"required"`
	Name         string `json:"name"`
	APIKeyEnv    string `json:"api_key_env" binding:"required"`
	APISecretEnv string `json:"api_secret_env" binding:"required"`
	Enabled      *bool  `json:"enabled"`
}

// @Summary Register or update a trader
// @Description Credentials are referenced by environment variable name only; secret material never enters the request or the database.
// @Tags traders
// @Param request body upsertTraderRequest true "trader"
// @Success 200 {object} map[string]any
// @Router /api/traders [post]
func (h *TradersHandler) upsert(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req upsertTraderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	traderID := strings.TrimSpace(req.TraderID)
	if traderID == "" {
		Error(c, http.StatusBadRequest, "invalid trader_id", nil)
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = traderID
	}
	now := time.Now().UTC()
	item := &models.Trader{
		TraderID:     traderID,
		Name:         name,
		APIKeyEnv:    strings.TrimSpace(req.APIKeyEnv),
		APISecretEnv: strings.TrimSpace(req.APISecretEnv),
		Enabled:      enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Repo.UpsertTrader(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	next, _ := h.Repo.GetTraderByTraderID(c.Request.Context(), traderID)
	Ok(c, next, nil)
}

type putTraderEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary Enable or disable collection for a trader
// @Tags traders
// @Param trader_id path string true "trader id"
// @Param request body putTraderEnabledRequest true "enabled flag"
// @Success 200 {object} map[string]any
// @Router /api/traders/{trader_id}/enabled [put]
func (h *TradersHandler) putEnabled(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	traderID := strings.TrimSpace(c.Param("trader_id"))
	if traderID == "" {
		Error(c, http.StatusBadRequest, "invalid trader_id", nil)
		return
	}
	var req putTraderEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Repo.SetTraderEnabled(c.Request.Context(), traderID, *req.Enabled); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	next, _ := h.Repo.GetTraderByTraderID(c.Request.Context(), traderID)
	if next == nil {
		Error(c, http.StatusNotFound, "trader not found", nil)
		return
	}
	Ok(c, next, nil)
}
