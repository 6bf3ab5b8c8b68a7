package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"traderlens/internal/repository"
)

// RetentionService prunes snapshots older than the configured horizon.
type RetentionService struct {
	Repo         repository.Repository
	Logger       *zap.Logger
	Flags        *SystemSettingsService
	SnapshotDays int
}

func (s *RetentionService) PruneOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureRetention, true) {
		return nil
	}
	days := s.SnapshotDays
	if days <= 0 {
		days = 90
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := s.Repo.DeleteSnapshotsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if s.Logger != nil && deleted > 0 {
		s.Logger.Info("pruned old snapshots",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
