package ledger

import (
	"strconv"
	"strings"
)

// RawPosition is one open position exactly as the exchange reports it:
// every numeric field is a decimal string and none of them is trusted.
type RawPosition struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnrealizedProfit string `json:"unRealizedProfit"`
	LiquidationPrice string `json:"liquidationPrice"`
	Leverage         string `json:"leverage"`
	MarginType       string `json:"marginType"`
	Notional         string `json:"notional"`
	PositionSide     string `json:"positionSide"`
	UpdateTime       int64  `json:"updateTime"`
}

// EnrichedPosition carries the raw fields with the four load-bearing
// numbers reparsed into typed values. Notional is the reparsed exchange
// notional, not quantity times price.
type EnrichedPosition struct {
	Symbol           string  `json:"symbol"`
	PositionAmt      float64 `json:"position_amt"`
	EntryPrice       float64 `json:"entry_price"`
	MarkPrice        string  `json:"mark_price"`
	UnrealizedProfit float64 `json:"unrealized_profit"`
	LiquidationPrice string  `json:"liquidation_price"`
	Leverage         string  `json:"leverage"`
	MarginType       string  `json:"margin_type"`
	Notional         float64 `json:"notional"`
	PositionSide     string  `json:"position_side"`
	UpdateTime       int64   `json:"update_time"`
}

// lenientFloat is the single parse-or-zero primitive for untrusted
// exchange numbers: missing or unparseable input is zero, never an error.
// Financial displays degrade instead of failing a whole page.
func lenientFloat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func enrichPosition(raw RawPosition) EnrichedPosition {
	return EnrichedPosition{
		Symbol:           raw.Symbol,
		PositionAmt:      lenientFloat(raw.PositionAmt),
		EntryPrice:       lenientFloat(raw.EntryPrice),
		MarkPrice:        raw.MarkPrice,
		UnrealizedProfit: lenientFloat(raw.UnrealizedProfit),
		LiquidationPrice: raw.LiquidationPrice,
		Leverage:         raw.Leverage,
		MarginType:       raw.MarginType,
		Notional:         lenientFloat(raw.Notional),
		PositionSide:     raw.PositionSide,
		UpdateTime:       raw.UpdateTime,
	}
}
