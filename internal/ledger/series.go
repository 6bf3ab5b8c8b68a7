package ledger

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// SnapshotInput is one stored snapshot joined with trader identity, in
// retrieval order (newest first). The engine owns nothing beyond this
// slice; every derived entity is built fresh per call.
type SnapshotInput struct {
	SnapshotID     uint64
	TraderID       string
	TraderName     string
	ExternalID     *string
	AccountBalance float64
	PositionsJSON  []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EnrichedSnapshot is a snapshot with reparsed positions, per-snapshot
// aggregates, and the balance delta against the adjacent snapshot in
// processing order.
type EnrichedSnapshot struct {
	SnapshotID          uint64             `json:"snapshot_id"`
	ExternalID          *string            `json:"external_id,omitempty"`
	AccountBalance      float64            `json:"account_balance"`
	AccountBalanceDelta float64            `json:"account_balance_delta"`
	Positions           []EnrichedPosition `json:"positions"`
	Aggregates          Aggregates         `json:"aggregates"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// TraderSeries is one trader's enriched snapshots in chronological order.
type TraderSeries struct {
	TraderID   string             `json:"trader_id"`
	TraderName string             `json:"trader_name"`
	Records    []EnrichedSnapshot `json:"records"`
}

// Window echoes the resolved query interval back to the caller.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HistoricalView is the ledger response: per-trader series plus the
// window they were computed over.
type HistoricalView struct {
	Traders   []TraderSeries `json:"traders"`
	TimeRange Window         `json:"time_range"`
}

// Engine is the snapshot enrichment and aggregation engine. It is
// stateless; a zero value with an optional logger is ready to use.
type Engine struct {
	Logger *zap.Logger
}

// BuildHistory folds newest-first snapshot records into per-trader
// chronological series.
//
// The balance delta is computed while iterating in retrieval order: each
// snapshot pairs with the previously processed one for the same trader,
// i.e. the next MORE RECENT snapshot, and the first processed per trader
// pairs against zero. Downstream consumers depend on that inverted
// pairing, so the deltas are fixed before the ascending re-sort for
// presentation.
func (e *Engine) BuildHistory(records []SnapshotInput, window Window) *HistoricalView {
	bySeries := make(map[string]int)
	view := &HistoricalView{
		Traders:   []TraderSeries{},
		TimeRange: window,
	}
	prevBalance := make(map[string]float64)

	for _, rec := range records {
		idx, ok := bySeries[rec.TraderID]
		if !ok {
			idx = len(view.Traders)
			bySeries[rec.TraderID] = idx
			view.Traders = append(view.Traders, TraderSeries{
				TraderID:   rec.TraderID,
				TraderName: rec.TraderName,
				Records:    []EnrichedSnapshot{},
			})
		}

		raw, ok := decodePositions(rec.PositionsJSON)
		if !ok && e.Logger != nil {
			e.Logger.Warn("malformed positions payload, treating as empty",
				zap.Uint64("snapshot_id", rec.SnapshotID),
				zap.String("trader_id", rec.TraderID),
			)
		}
		enriched := make([]EnrichedPosition, 0, len(raw))
		for _, pos := range raw {
			enriched = append(enriched, enrichPosition(pos))
		}

		delta := rec.AccountBalance - prevBalance[rec.TraderID]
		prevBalance[rec.TraderID] = rec.AccountBalance

		view.Traders[idx].Records = append(view.Traders[idx].Records, EnrichedSnapshot{
			SnapshotID:          rec.SnapshotID,
			ExternalID:          rec.ExternalID,
			AccountBalance:      rec.AccountBalance,
			AccountBalanceDelta: delta,
			Positions:           enriched,
			Aggregates:          aggregate(enriched),
			CreatedAt:           rec.CreatedAt,
			UpdatedAt:           rec.UpdatedAt,
		})
	}

	// Presentation order is chronological; deltas are already final.
	for i := range view.Traders {
		recs := view.Traders[i].Records
		sort.SliceStable(recs, func(a, b int) bool {
			return recs[a].CreatedAt.Before(recs[b].CreatedAt)
		})
	}

	return view
}
