package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"traderlens/internal/models"
	"traderlens/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- Snapshots --------------------------------------------------------------

func (s *Store) InsertPositionSnapshot(ctx context.Context, item *models.PositionSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// ListSnapshotRecords joins snapshots with the traders table for display
// names and returns rows newest first. Both window bounds are inclusive.
func (s *Store) ListSnapshotRecords(ctx context.Context, params repository.SnapshotQueryParams) ([]repository.SnapshotRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Table("position_snapshots AS s").
		Select(`
			s.id AS id,
			s.trader_id AS trader_id,
			s.external_id AS external_id,
			s.account_balance AS account_balance,
			s.positions AS positions,
			s.created_at AS created_at,
			s.updated_at AS updated_at,
			COALESCE(t.name, s.trader_id) AS trader_name
		`).
		Joins("LEFT JOIN traders AS t ON t.trader_id = s.trader_id")
	if params.TraderID != nil && strings.TrimSpace(*params.TraderID) != "" {
		query = query.Where("s.trader_id = ?", strings.TrimSpace(*params.TraderID))
	}
	if !params.Start.IsZero() {
		query = query.Where("s.created_at >= ?", params.Start)
	}
	if !params.End.IsZero() {
		query = query.Where("s.created_at <= ?", params.End)
	}

	var rows []struct {
		models.PositionSnapshot
		TraderName string
	}
	if err := query.Order("s.created_at desc, s.id desc").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]repository.SnapshotRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.SnapshotRecord{
			Snapshot:   row.PositionSnapshot,
			TraderName: row.TraderName,
		})
	}
	return out, nil
}

func (s *Store) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if cutoff.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.PositionSnapshot{})
	return res.RowsAffected, res.Error
}

// --- Traders ----------------------------------------------------------------

func (s *Store) UpsertTrader(ctx context.Context, item *models.Trader) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.TraderID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trader_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"api_key_env",
			"api_secret_env",
			"enabled",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetTraderByTraderID(ctx context.Context, traderID string) (*models.Trader, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	traderID = strings.TrimSpace(traderID)
	if traderID == "" {
		return nil, nil
	}
	var item models.Trader
	err := s.db.WithContext(ctx).Model(&models.Trader{}).Where("trader_id = ?", traderID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListTraders(ctx context.Context) ([]models.Trader, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Trader
	if err := s.db.WithContext(ctx).
		Model(&models.Trader{}).
		Order("trader_id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListEnabledTraders(ctx context.Context) ([]models.Trader, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Trader
	if err := s.db.WithContext(ctx).
		Model(&models.Trader{}).
		Where("enabled = ?", true).
		Order("trader_id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SetTraderEnabled(ctx context.Context, traderID string, enabled bool) error {
	if s == nil || s.db == nil {
		return nil
	}
	traderID = strings.TrimSpace(traderID)
	if traderID == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Trader{}).
		Where("trader_id = ?", traderID).
		Updates(map[string]any{"enabled": enabled, "updated_at": time.Now().UTC()}).
		Error
}

// --- Mark prices ------------------------------------------------------------

func (s *Store) UpsertMarkPrice(ctx context.Context, item *models.MarkPriceLatest) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Symbol) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mark_price",
			"index_price",
			"funding_rate",
			"next_funding_at",
			"event_at",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListMarkPrices(ctx context.Context, symbols []string) ([]models.MarkPriceLatest, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.MarkPriceLatest{})
	symbols = cleanStrings(symbols)
	if len(symbols) > 0 {
		query = query.Where("symbol IN ?", symbols)
	}
	var items []models.MarkPriceLatest
	if err := query.Order("symbol asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- System settings --------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Model(&models.SystemSetting{}).Where("key = ?", key).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.SystemSetting{})
	if params.Prefix != nil && strings.TrimSpace(*params.Prefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.Prefix)+"%")
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "key")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.SystemSetting
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, raw := range items {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
