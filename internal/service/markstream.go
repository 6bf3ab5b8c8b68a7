package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"traderlens/internal/client/aster"
	"traderlens/internal/models"
	"traderlens/internal/repository"
)

// MarkStreamService keeps the mark_prices_latest table current from the
// exchange's all-symbols mark price websocket.
type MarkStreamService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Flags  *SystemSettingsService
	URL    string
}

// Run blocks consuming the stream until the context is cancelled. The
// feature switch is checked per frame so the stream can be muted at
// runtime without a restart.
func (s *MarkStreamService) Run(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	stream := aster.NewMarkStream(aster.MarkStreamOptions{
		URL:    s.URL,
		Logger: s.Logger,
	})
	return stream.Run(ctx, func(events []aster.MarkEvent) {
		if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureMarkStream, true) {
			return
		}
		s.applyEvents(ctx, events)
	})
}

func (s *MarkStreamService) applyEvents(ctx context.Context, events []aster.MarkEvent) {
	now := time.Now().UTC()
	for _, event := range events {
		symbol := strings.TrimSpace(event.Symbol)
		if symbol == "" {
			continue
		}
		item := &models.MarkPriceLatest{
			Symbol:      symbol,
			MarkPrice:   lenientDecimal(event.MarkPrice),
			IndexPrice:  lenientDecimal(event.IndexPrice),
			FundingRate: lenientDecimal(event.FundingRate),
			EventAt:     time.UnixMilli(event.EventTime).UTC(),
			UpdatedAt:   now,
		}
		if event.NextFunding > 0 {
			next := time.UnixMilli(event.NextFunding).UTC()
			item.NextFundingAt = &next
		}
		if err := s.Repo.UpsertMarkPrice(ctx, item); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("mark price upsert failed",
					zap.String("symbol", symbol),
					zap.Error(err),
				)
			}
		}
	}
}

// ListMarks reads the latest marks back for the API surface.
func (s *MarkStreamService) ListMarks(ctx context.Context, symbols []string) ([]models.MarkPriceLatest, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListMarkPrices(ctx, symbols)
}

func lenientDecimal(raw string) decimal.Decimal {
	val, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return val
}
