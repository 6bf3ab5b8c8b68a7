package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"traderlens/internal/client/aster"
	"traderlens/internal/models"
	"traderlens/internal/repository"
)

// ExchangeClient is the slice of the exchange API the collector needs.
type ExchangeClient interface {
	SyncTime(ctx context.Context) error
	GetAccount(ctx context.Context) (*aster.Account, error)
	GetPositionRisk(ctx context.Context, symbol string) ([]aster.Position, error)
}

// ClientFactory builds a per-trader exchange client from the trader's
// own credentials.
type ClientFactory func(apiKey, apiSecret string) ExchangeClient

// SnapshotCollector polls each enabled trader's account and open
// positions and persists one snapshot row per trader per sweep.
// Credentials are resolved from the environment at collect time; they
// never live in the database.
type SnapshotCollector struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Flags     *SystemSettingsService
	NewClient ClientFactory
}

// CollectOnce runs a single sweep. A failing trader is logged and
// skipped; the sweep itself only fails when the trader list cannot be
// loaded.
func (s *SnapshotCollector) CollectOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.NewClient == nil {
		return nil
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureSnapshotCollector, true) {
		return nil
	}
	traders, err := s.Repo.ListEnabledTraders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list enabled traders: %w", err)
	}
	for _, trader := range traders {
		if err := s.collectTrader(ctx, trader); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("snapshot collection failed",
					zap.String("trader_id", trader.TraderID),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func (s *SnapshotCollector) collectTrader(ctx context.Context, trader models.Trader) error {
	apiKey := os.Getenv(strings.TrimSpace(trader.APIKeyEnv))
	apiSecret := os.Getenv(strings.TrimSpace(trader.APISecretEnv))
	if apiKey == "" || apiSecret == "" {
		return fmt.Errorf("credentials not set (%s, %s)", trader.APIKeyEnv, trader.APISecretEnv)
	}
	client := s.NewClient(apiKey, apiSecret)
	if err := client.SyncTime(ctx); err != nil {
		return fmt.Errorf("time sync: %w", err)
	}
	account, err := client.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	rows, err := client.GetPositionRisk(ctx, "")
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	open := aster.OpenPositions(rows)
	payload, err := json.Marshal(open)
	if err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(account.TotalWalletBalance))
	if err != nil {
		balance = decimal.Zero
	}

	now := time.Now().UTC()
	externalID := fmt.Sprintf("%s-%d", trader.TraderID, now.UnixMilli())
	item := &models.PositionSnapshot{
		TraderID:       trader.TraderID,
		ExternalID:     &externalID,
		AccountBalance: balance,
		Positions:      datatypes.JSON(payload),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.InsertPositionSnapshot(ctx, item); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("snapshot stored",
			zap.String("trader_id", trader.TraderID),
			zap.Int("open_positions", len(open)),
			zap.String("balance", balance.String()),
		)
	}
	return nil
}
