package ledger

import (
	"encoding/json"
	"math"
)

// Exposure is aggregate notional grouped by position direction.
type Exposure struct {
	Long  float64 `json:"long"`
	Short float64 `json:"short"`
	Net   float64 `json:"net"`
}

// Aggregates are the per-snapshot derived risk metrics.
type Aggregates struct {
	PositionCount      int      `json:"position_count"`
	TotalUnrealizedPnl float64  `json:"total_unrealized_pnl"`
	Exposure           Exposure `json:"exposure"`
}

// decodePositions reparses a stored positions payload. A payload that is
// empty or fails to decode yields zero positions; one corrupt snapshot
// must never fail a whole window's query.
func decodePositions(payload []byte) ([]RawPosition, bool) {
	if len(payload) == 0 {
		return nil, true
	}
	var items []RawPosition
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

func aggregate(positions []EnrichedPosition) Aggregates {
	agg := Aggregates{PositionCount: len(positions)}
	for _, pos := range positions {
		agg.TotalUnrealizedPnl += pos.UnrealizedProfit
		switch {
		case pos.PositionAmt > 0:
			agg.Exposure.Long += pos.Notional
		case pos.PositionAmt < 0:
			agg.Exposure.Short += math.Abs(pos.Notional)
		}
	}
	agg.Exposure.Net = agg.Exposure.Long - agg.Exposure.Short
	return agg
}
