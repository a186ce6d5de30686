// Package service contains background jobs that run next to the API
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OrphanSweeper deletes tasks left behind by a project deletion that did
// not finish
type OrphanSweeper interface {
	Orphans(ctx context.Context) (int64, error)
}

// TaskCleanup runs s every t until ctx is cancelled
func TaskCleanup(ctx context.Context, t time.Duration, s OrphanSweeper) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Orphaned task cleanup attached", zap.Duration("tick_every", t))

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				SweepOnce(ctx, s)
			}
		}
	}()
}

// SweepOnce runs a single cleanup pass and returns how many tasks it removed
func SweepOnce(ctx context.Context, s OrphanSweeper) int64 {
	n, err := s.Orphans(ctx)
	if err != nil {
		zap.L().Error("Failed to clean up orphaned tasks", zap.Error(err))
		return 0
	}

	if n > 0 {
		zap.L().Info("Cleaned up orphaned tasks", zap.Int64("count", n))
	}

	return n
}
