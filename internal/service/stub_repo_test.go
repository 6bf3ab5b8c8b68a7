package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"traderlens/internal/models"
	"traderlens/internal/repository"
)

// stubRepo is a minimal in-memory Repository for service tests.
type stubRepo struct {
	traders   []models.Trader
	snapshots []models.PositionSnapshot
	marks     map[string]models.MarkPriceLatest
	settings  map[string]models.SystemSetting

	insertErr error
	listErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		marks:    map[string]models.MarkPriceLatest{},
		settings: map[string]models.SystemSetting{},
	}
}

func (r *stubRepo) InsertPositionSnapshot(_ context.Context, item *models.PositionSnapshot) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	item.ID = uint64(len(r.snapshots) + 1)
	r.snapshots = append(r.snapshots, *item)
	return nil
}

func (r *stubRepo) ListSnapshotRecords(_ context.Context, params repository.SnapshotQueryParams) ([]repository.SnapshotRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	names := map[string]string{}
	for _, t := range r.traders {
		names[t.TraderID] = t.Name
	}
	var out []repository.SnapshotRecord
	for _, snap := range r.snapshots {
		if params.TraderID != nil && snap.TraderID != *params.TraderID {
			continue
		}
		if !params.Start.IsZero() && snap.CreatedAt.Before(params.Start) {
			continue
		}
		if !params.End.IsZero() && snap.CreatedAt.After(params.End) {
			continue
		}
		name := names[snap.TraderID]
		if name == "" {
			name = snap.TraderID
		}
		out = append(out, repository.SnapshotRecord{Snapshot: snap, TraderName: name})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Snapshot.CreatedAt.After(out[b].Snapshot.CreatedAt)
	})
	return out, nil
}

func (r *stubRepo) DeleteSnapshotsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := r.snapshots[:0]
	var deleted int64
	for _, snap := range r.snapshots {
		if snap.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, snap)
	}
	r.snapshots = kept
	return deleted, nil
}

func (r *stubRepo) UpsertTrader(_ context.Context, item *models.Trader) error {
	for i := range r.traders {
		if r.traders[i].TraderID == item.TraderID {
			r.traders[i] = *item
			return nil
		}
	}
	r.traders = append(r.traders, *item)
	return nil
}

func (r *stubRepo) GetTraderByTraderID(_ context.Context, traderID string) (*models.Trader, error) {
	for i := range r.traders {
		if r.traders[i].TraderID == traderID {
			item := r.traders[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) ListTraders(context.Context) ([]models.Trader, error) {
	return append([]models.Trader(nil), r.traders...), nil
}

func (r *stubRepo) ListEnabledTraders(context.Context) ([]models.Trader, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Trader
	for _, t := range r.traders {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubRepo) SetTraderEnabled(_ context.Context, traderID string, enabled bool) error {
	for i := range r.traders {
		if r.traders[i].TraderID == traderID {
			r.traders[i].Enabled = enabled
		}
	}
	return nil
}

func (r *stubRepo) UpsertMarkPrice(_ context.Context, item *models.MarkPriceLatest) error {
	r.marks[item.Symbol] = *item
	return nil
}

func (r *stubRepo) ListMarkPrices(_ context.Context, symbols []string) ([]models.MarkPriceLatest, error) {
	var out []models.MarkPriceLatest
	for symbol, item := range r.marks {
		if len(symbols) > 0 {
			found := false
			for _, want := range symbols {
				if strings.EqualFold(want, symbol) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Symbol < out[b].Symbol })
	return out, nil
}

func (r *stubRepo) UpsertSystemSetting(_ context.Context, item *models.SystemSetting) error {
	r.settings[item.Key] = *item
	return nil
}

func (r *stubRepo) GetSystemSettingByKey(_ context.Context, key string) (*models.SystemSetting, error) {
	if item, ok := r.settings[key]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *stubRepo) ListSystemSettings(_ context.Context, _ repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	var out []models.SystemSetting
	for _, item := range r.settings {
		out = append(out, item)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out, nil
}

var _ repository.Repository = (*stubRepo)(nil)
