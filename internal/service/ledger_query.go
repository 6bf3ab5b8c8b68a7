package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"traderlens/internal/ledger"
	"traderlens/internal/repository"
)

// LedgerService answers history and portfolio queries by pulling stored
// snapshots and running them through the enrichment engine.
type LedgerService struct {
	Repo            repository.Repository
	Engine          *ledger.Engine
	Logger          *zap.Logger
	PortfolioWindow time.Duration
}

func (s *LedgerService) engine() *ledger.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return &ledger.Engine{Logger: s.Logger}
}

// History resolves the raw filter input and returns the enriched,
// delta-annotated series for the window. Absent filters fall back to the
// default lookback over all traders.
func (s *LedgerService) History(ctx context.Context, traderID, startRaw, endRaw string) (*ledger.HistoricalView, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("ledger service not configured")
	}
	query, err := ledger.Resolve(traderID, startRaw, endRaw, time.Now())
	if err != nil {
		return nil, err
	}
	if query == nil {
		query = ledger.DefaultQuery(time.Now())
	}
	return s.buildWindow(ctx, query)
}

// Portfolio returns the ranked live portfolio summaries, derived from
// the latest snapshot per trader inside the portfolio window.
func (s *LedgerService) Portfolio(ctx context.Context) ([]ledger.PortfolioSummary, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("ledger service not configured")
	}
	window := s.PortfolioWindow
	if window <= 0 {
		window = 24 * time.Hour
	}
	end := time.Now().UTC()
	view, err := s.buildWindow(ctx, &ledger.Query{Start: end.Add(-window), End: end})
	if err != nil {
		return nil, err
	}
	return s.engine().SummarizePortfolios(view.Traders), nil
}

func (s *LedgerService) buildWindow(ctx context.Context, query *ledger.Query) (*ledger.HistoricalView, error) {
	records, err := s.Repo.ListSnapshotRecords(ctx, repository.SnapshotQueryParams{
		TraderID: query.TraderID,
		Start:    query.Start,
		End:      query.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	inputs := make([]ledger.SnapshotInput, 0, len(records))
	for _, rec := range records {
		inputs = append(inputs, ledger.SnapshotInput{
			SnapshotID:     rec.Snapshot.ID,
			TraderID:       rec.Snapshot.TraderID,
			TraderName:     rec.TraderName,
			ExternalID:     rec.Snapshot.ExternalID,
			AccountBalance: rec.Snapshot.AccountBalance.InexactFloat64(),
			PositionsJSON:  []byte(rec.Snapshot.Positions),
			CreatedAt:      rec.Snapshot.CreatedAt,
			UpdatedAt:      rec.Snapshot.UpdatedAt,
		})
	}
	return s.engine().BuildHistory(inputs, ledger.Window{Start: query.Start, End: query.End}), nil
}
