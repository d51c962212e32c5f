package app

import (
	"context"
	"time"

	"ledgerdash/internal/common"
	"ledgerdash/internal/interfaces"
)

// startRefreshScheduler recomputes the dashboard on a fixed interval.
// The first refresh runs immediately so the API has data as soon as the
// upstream (or the demo fallback) can provide it.
func startRefreshScheduler(ctx context.Context, svc interfaces.DashboardService, logger *common.Logger, interval time.Duration) {
	if _, err := svc.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial refresh aborted")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			if _, err := svc.Refresh(ctx); err != nil {
				logger.Warn().Err(err).Msg("Scheduled refresh aborted")
			}
		}
	}
}
