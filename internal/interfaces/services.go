package interfaces

import (
	"context"

	"ledgerdash/internal/models"
)

// DashboardService owns the aggregate lifecycle: fetch a ledger snapshot,
// run the aggregation, publish the result atomically.
type DashboardService interface {
	// Refresh fetches, aggregates, and publishes a new dashboard.
	// Upstream fetch failures substitute the demo dataset rather than
	// surfacing an error; the only errors are context cancellations.
	Refresh(ctx context.Context) (*models.Dashboard, error)

	// Dashboard returns the latest published aggregate, nil before the
	// first refresh completes.
	Dashboard() *models.Dashboard
}
