package ledger

import (
	"sort"
)

// PositionStake is one position's share of a trader's live portfolio.
type PositionStake struct {
	Symbol           string  `json:"symbol"`
	AssetValue       float64 `json:"asset_value"`
	AssetPercent     float64 `json:"asset_percent"`
	UnrealizedProfit float64 `json:"unrealized_profit"`
	Direction        string  `json:"direction"`
	Quantity         float64 `json:"quantity"`
	EntryPrice       float64 `json:"entry_price"`
	Leverage         string  `json:"leverage"`
}

// PortfolioSummary is one trader's point-in-time asset distribution,
// derived from the latest snapshot in the series.
type PortfolioSummary struct {
	TraderID    string          `json:"trader_id"`
	TraderName  string          `json:"trader_name"`
	TotalAssets float64         `json:"total_assets"`
	TodayPnl    float64         `json:"today_pnl"`
	Positions   []PositionStake `json:"positions"`
}

// SummarizePortfolios reduces each trader's series to its most recent
// snapshot and computes total assets and a ranked position breakdown.
// Traders without a snapshot in the window are omitted. The result is
// ranked by total assets, highest first.
//
// Total assets recomputes the unrealized P&L sum from the per-position
// values rather than reusing the snapshot aggregates; the live view owns
// its own derivation. Zero-quantity positions count as long here, unlike
// the aggregator's three-way split.
func (e *Engine) SummarizePortfolios(traders []TraderSeries) []PortfolioSummary {
	out := make([]PortfolioSummary, 0, len(traders))
	for _, series := range traders {
		if len(series.Records) == 0 {
			continue
		}
		latest := series.Records[len(series.Records)-1]

		totalPnl := 0.0
		for _, pos := range latest.Positions {
			totalPnl += pos.UnrealizedProfit
		}
		totalAssets := latest.AccountBalance + totalPnl

		stakes := make([]PositionStake, 0, len(latest.Positions))
		for _, pos := range latest.Positions {
			assetValue := pos.Notional + pos.UnrealizedProfit
			assetPercent := 0.0
			if totalAssets > 0 {
				assetPercent = assetValue / totalAssets * 100
			}
			direction := "long"
			if pos.PositionAmt < 0 {
				direction = "short"
			}
			stakes = append(stakes, PositionStake{
				Symbol:           pos.Symbol,
				AssetValue:       assetValue,
				AssetPercent:     assetPercent,
				UnrealizedProfit: pos.UnrealizedProfit,
				Direction:        direction,
				Quantity:         pos.PositionAmt,
				EntryPrice:       pos.EntryPrice,
				Leverage:         pos.Leverage,
			})
		}
		sort.SliceStable(stakes, func(a, b int) bool {
			return stakes[a].AssetValue > stakes[b].AssetValue
		})

		out = append(out, PortfolioSummary{
			TraderID:    series.TraderID,
			TraderName:  series.TraderName,
			TotalAssets: totalAssets,
			TodayPnl:    latest.AccountBalanceDelta,
			Positions:   stakes,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalAssets > out[b].TotalAssets
	})
	return out
}
