package repository

import (
	"context"
	"time"

	"traderlens/internal/models"
)

// SnapshotQueryParams filters the snapshot history scan. A nil TraderID
// means all traders; bounds are inclusive on both ends.
type SnapshotQueryParams struct {
	TraderID *string
	Start    time.Time
	End      time.Time
}

// SnapshotRecord is a stored snapshot joined with the owning trader's
// display name, returned newest first.
type SnapshotRecord struct {
	Snapshot   models.PositionSnapshot
	TraderName string
}

type ListSystemSettingsParams struct {
	Limit   int
	Offset  int
	Prefix  *string
	OrderBy string
	Asc     *bool
}

// Repository is the storage surface for the snapshot monitor. The gorm
// implementation lives in repository/gorm; tests use in-memory stubs.
type Repository interface {
	// Snapshots
	InsertPositionSnapshot(ctx context.Context, item *models.PositionSnapshot) error
	ListSnapshotRecords(ctx context.Context, params SnapshotQueryParams) ([]SnapshotRecord, error)
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Traders
	UpsertTrader(ctx context.Context, item *models.Trader) error
	GetTraderByTraderID(ctx context.Context, traderID string) (*models.Trader, error)
	ListTraders(ctx context.Context) ([]models.Trader, error)
	ListEnabledTraders(ctx context.Context) ([]models.Trader, error)
	SetTraderEnabled(ctx context.Context, traderID string, enabled bool) error

	// Mark prices
	UpsertMarkPrice(ctx context.Context, item *models.MarkPriceLatest) error
	ListMarkPrices(ctx context.Context, symbols []string) ([]models.MarkPriceLatest, error)

	// System settings
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context, params ListSystemSettingsParams) ([]models.SystemSetting, error)
}
