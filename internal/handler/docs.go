package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# TraderLens Monitor

Snapshot collection and portfolio analytics for monitored derivatives traders.

## Auth

All /api/* routes require a Bearer token. Health endpoints are public.
Set TL_AUTH_DISABLED=true for local development.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/ledger/history?trader_id=&start=&end=
- GET /api/portfolio/summary
- GET /api/traders
- POST /api/traders
- GET /api/traders/{trader_id}
- PUT /api/traders/{trader_id}/enabled
- GET /api/markets/marks?symbols=BTCUSDT,ETHUSDT
- GET /api/settings
- GET /api/settings/switches
- PUT /api/settings/switches/{name}

## Query semantics

History accepts RFC3339 timestamps or plain dates for start/end. With no
filters at all it returns the last 30 days for every trader. An
inverted window or unparseable bound is a 400.
`)
	})
}
