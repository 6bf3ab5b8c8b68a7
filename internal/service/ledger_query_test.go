package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"traderlens/internal/ledger"
	"traderlens/internal/models"
)

func storedSnap(id uint64, trader string, balance string, at time.Time, positions string) models.PositionSnapshot {
	return models.PositionSnapshot{
		ID:             id,
		TraderID:       trader,
		AccountBalance: decimal.RequireFromString(balance),
		Positions:      datatypes.JSON(positions),
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func TestHistoryEndToEnd(t *testing.T) {
	repo := newStubRepo()
	repo.traders = []models.Trader{{TraderID: "whale-1", Name: "Whale One", Enabled: true}}
	base := time.Now().UTC().Add(-2 * time.Hour)
	repo.snapshots = []models.PositionSnapshot{
		storedSnap(1, "whale-1", "1000", base, `[]`),
		storedSnap(2, "whale-1", "1050", base.Add(time.Hour), `[{"symbol":"BTCUSDT","positionAmt":"1","notional":"1000","unRealizedProfit":"25"}]`),
	}

	svc := &LedgerService{Repo: repo}
	view, err := svc.History(context.Background(), "whale-1", "", "")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(view.Traders) != 1 {
		t.Fatalf("traders = %d", len(view.Traders))
	}
	series := view.Traders[0]
	if series.TraderName != "Whale One" {
		t.Fatalf("trader name = %q", series.TraderName)
	}
	recs := series.Records
	if len(recs) != 2 || recs[0].SnapshotID != 1 || recs[1].SnapshotID != 2 {
		t.Fatalf("records: %+v", recs)
	}
	if recs[1].AccountBalanceDelta != 1050 || recs[0].AccountBalanceDelta != -50 {
		t.Fatalf("deltas = [%v, %v]", recs[0].AccountBalanceDelta, recs[1].AccountBalanceDelta)
	}
	if recs[1].Aggregates.Exposure.Long != 1000 {
		t.Fatalf("aggregates: %+v", recs[1].Aggregates)
	}
	if view.TimeRange.End.Sub(view.TimeRange.Start) != ledger.DefaultLookback {
		t.Fatalf("window: %+v", view.TimeRange)
	}
}

func TestHistoryNoFilterUsesDefaultWindow(t *testing.T) {
	repo := newStubRepo()
	now := time.Now().UTC()
	repo.snapshots = []models.PositionSnapshot{
		storedSnap(1, "a", "10", now.Add(-31*24*time.Hour), `[]`),
		storedSnap(2, "a", "20", now.Add(-time.Hour), `[]`),
	}
	svc := &LedgerService{Repo: repo}
	view, err := svc.History(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(view.Traders) != 1 || len(view.Traders[0].Records) != 1 {
		t.Fatalf("default lookback not applied: %+v", view.Traders)
	}
	if view.Traders[0].Records[0].SnapshotID != 2 {
		t.Fatal("wrong snapshot survived the window")
	}
}

func TestHistoryInvalidInput(t *testing.T) {
	svc := &LedgerService{Repo: newStubRepo()}
	_, err := svc.History(context.Background(), "", "not-a-date", "")
	if !errors.Is(err, ledger.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	_, err = svc.History(context.Background(), "", "2026-03-10", "2026-03-01")
	if !errors.Is(err, ledger.ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestHistoryStoreError(t *testing.T) {
	repo := newStubRepo()
	repo.listErr = errors.New("db gone")
	svc := &LedgerService{Repo: repo}
	if _, err := svc.History(context.Background(), "whale-1", "", ""); err == nil {
		t.Fatal("store failure must surface")
	}
}

func TestPortfolioRanksTraders(t *testing.T) {
	repo := newStubRepo()
	now := time.Now().UTC()
	repo.snapshots = []models.PositionSnapshot{
		storedSnap(1, "small", "100", now.Add(-time.Minute), `[]`),
		storedSnap(2, "big", "1000", now.Add(-2*time.Minute),
			`[{"symbol":"BTCUSDT","positionAmt":"2","notional":"2000","unRealizedProfit":"50","entryPrice":"950","leverage":"5"}]`),
		storedSnap(3, "stale", "9999", now.Add(-48*time.Hour), `[]`),
	}
	svc := &LedgerService{Repo: repo, PortfolioWindow: 24 * time.Hour}
	out, err := svc.Portfolio(context.Background())
	if err != nil {
		t.Fatalf("Portfolio: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("summaries = %d, want 2 (stale trader outside window)", len(out))
	}
	if out[0].TraderID != "big" || out[0].TotalAssets != 1050 {
		t.Fatalf("top summary: %+v", out[0])
	}
	if len(out[0].Positions) != 1 || out[0].Positions[0].AssetValue != 2050 {
		t.Fatalf("positions: %+v", out[0].Positions)
	}
}
