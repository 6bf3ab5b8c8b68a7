package ledger

import (
	"testing"
	"time"
)

func snap(id uint64, trader string, balance float64, at time.Time, positions string) SnapshotInput {
	return SnapshotInput{
		SnapshotID:     id,
		TraderID:       trader,
		TraderName:     trader + " name",
		AccountBalance: balance,
		PositionsJSON:  []byte(positions),
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func TestBuildHistoryNewestFirstDelta(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	// Retrieval order is newest first: the 10:00 snapshot is processed
	// before the 09:00 one, so it pairs against zero and the older one
	// pairs against the newer balance.
	records := []SnapshotInput{
		snap(2, "whale-1", 1050, base.Add(time.Hour), "[]"),
		snap(1, "whale-1", 1000, base, "[]"),
	}
	e := &Engine{}
	view := e.BuildHistory(records, Window{Start: base, End: base.Add(2 * time.Hour)})

	if len(view.Traders) != 1 {
		t.Fatalf("traders = %d, want 1", len(view.Traders))
	}
	recs := view.Traders[0].Records
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	// Output is chronological.
	if recs[0].SnapshotID != 1 || recs[1].SnapshotID != 2 {
		t.Fatalf("output not chronological: %d, %d", recs[0].SnapshotID, recs[1].SnapshotID)
	}
	if recs[1].AccountBalanceDelta != 1050 {
		t.Fatalf("newest delta = %v, want 1050 (paired against zero)", recs[1].AccountBalanceDelta)
	}
	if recs[0].AccountBalanceDelta != -50 {
		t.Fatalf("older delta = %v, want -50 (paired against newer balance)", recs[0].AccountBalanceDelta)
	}
}

func TestBuildHistoryGroupOrderIsFirstSeen(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []SnapshotInput{
		snap(3, "b", 1, at.Add(2*time.Minute), "[]"),
		snap(2, "a", 1, at.Add(time.Minute), "[]"),
		snap(1, "b", 1, at, "[]"),
	}
	view := (&Engine{}).BuildHistory(records, Window{})
	if len(view.Traders) != 2 {
		t.Fatalf("traders = %d, want 2", len(view.Traders))
	}
	if view.Traders[0].TraderID != "b" || view.Traders[1].TraderID != "a" {
		t.Fatalf("group order = [%s, %s], want first-seen [b, a]",
			view.Traders[0].TraderID, view.Traders[1].TraderID)
	}
	if len(view.Traders[0].Records) != 2 {
		t.Fatalf("trader b records = %d, want 2", len(view.Traders[0].Records))
	}
}

func TestBuildHistoryMalformedPayloadIsolated(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []SnapshotInput{
		snap(2, "whale-1", 1100, at.Add(time.Hour), `[{"symbol":"BTCUSDT","positionAmt":"1","notional":"1000"}]`),
		snap(1, "whale-1", 1000, at, `{"truncated":`),
	}
	view := (&Engine{}).BuildHistory(records, Window{})
	recs := view.Traders[0].Records
	if len(recs) != 2 {
		t.Fatalf("corrupt payload dropped the snapshot: %d records", len(recs))
	}
	if len(recs[0].Positions) != 0 {
		t.Fatalf("corrupt payload must enrich as empty, got %d positions", len(recs[0].Positions))
	}
	if recs[0].Aggregates.PositionCount != 0 {
		t.Fatalf("corrupt payload aggregates = %+v", recs[0].Aggregates)
	}
	if len(recs[1].Positions) != 1 || recs[1].Aggregates.Exposure.Long != 1000 {
		t.Fatalf("healthy sibling affected: %+v", recs[1])
	}
}

func TestBuildHistoryDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []SnapshotInput{
		snap(3, "a", 300, at.Add(2*time.Hour), "[]"),
		snap(2, "b", 200, at.Add(time.Hour), "[]"),
		snap(1, "a", 100, at, "[]"),
	}
	first := (&Engine{}).BuildHistory(records, Window{})
	second := (&Engine{}).BuildHistory(records, Window{})
	if len(first.Traders) != len(second.Traders) {
		t.Fatal("non-deterministic trader count")
	}
	for i := range first.Traders {
		if first.Traders[i].TraderID != second.Traders[i].TraderID {
			t.Fatalf("non-deterministic group order at %d", i)
		}
		for j := range first.Traders[i].Records {
			a, b := first.Traders[i].Records[j], second.Traders[i].Records[j]
			if a.SnapshotID != b.SnapshotID || a.AccountBalanceDelta != b.AccountBalanceDelta {
				t.Fatalf("non-deterministic record %d/%d: %+v vs %+v", i, j, a, b)
			}
		}
	}
}

func TestBuildHistoryEqualTimestampsStable(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []SnapshotInput{
		snap(2, "a", 20, at, "[]"),
		snap(1, "a", 10, at, "[]"),
	}
	view := (&Engine{}).BuildHistory(records, Window{})
	recs := view.Traders[0].Records
	// Equal timestamps keep processing order under the stable sort.
	if recs[0].SnapshotID != 2 || recs[1].SnapshotID != 1 {
		t.Fatalf("tie order not stable: [%d, %d]", recs[0].SnapshotID, recs[1].SnapshotID)
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	w := Window{Start: time.Unix(0, 0), End: time.Unix(100, 0)}
	view := (&Engine{}).BuildHistory(nil, w)
	if view == nil || view.Traders == nil || len(view.Traders) != 0 {
		t.Fatalf("empty input must yield empty non-nil traders: %+v", view)
	}
	if view.TimeRange != w {
		t.Fatalf("window not echoed: %+v", view.TimeRange)
	}
}
