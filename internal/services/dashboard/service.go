// Package dashboard owns the aggregate lifecycle: fetch a ledger
// snapshot from the upstream client, run the aggregator, and publish the
// result as one immutable value.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ledgerdash/internal/common"
	"ledgerdash/internal/interfaces"
	"ledgerdash/internal/models"
	"ledgerdash/internal/services/aggregator"
)

// Compile-time interface check
var _ interfaces.DashboardService = (*Service)(nil)

// Service implements DashboardService. Refreshes serialize on a mutex so
// at most one aggregation pass runs at a time; the published dashboard
// sits behind an atomic pointer so readers never block and never observe
// a partially built result.
type Service struct {
	client interfaces.LedgerClient
	groups map[string][]string
	hub    *Hub
	logger *common.Logger

	mu      sync.Mutex
	current atomic.Pointer[models.Dashboard]
}

// NewService creates a new dashboard service. client may be nil, in which
// case every refresh serves the demo dataset. hub may be nil to disable
// WebSocket notifications.
func NewService(client interfaces.LedgerClient, groups map[string][]string, hub *Hub, logger *common.Logger) *Service {
	return &Service{
		client: client,
		groups: groups,
		hub:    hub,
		logger: logger,
	}
}

// Dashboard returns the latest published aggregate, nil before the first
// refresh completes.
func (s *Service) Dashboard() *models.Dashboard {
	return s.current.Load()
}

// Refresh fetches the ledger, recomputes all aggregates wholesale, and
// publishes the new dashboard atomically. A fetch failure is not an
// error: the demo dataset substitutes so the dashboard always has a
// complete result. Only context cancellation aborts.
func (s *Service) Refresh(ctx context.Context) (*models.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	snapshot, source := s.fetch(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := aggregator.Aggregate(snapshot, s.groups)

	d := &models.Dashboard{
		NetWorth:      result.NetWorth,
		CashFlow:      result.CashFlow,
		Metrics:       result.Metrics,
		Source:        source,
		GeneratedAt:   time.Now(),
		Accounts:      len(snapshot.Accounts),
		Transactions:  len(snapshot.Transactions),
		DateFallbacks: result.DateFallbacks,
	}
	s.current.Store(d)

	if result.DateFallbacks > 0 {
		s.logger.Warn().
			Int("count", result.DateFallbacks).
			Msg("Transactions with unparseable dates bucketed into the current month")
	}

	s.logger.Info().
		Str("source", source).
		Int("accounts", d.Accounts).
		Int("transactions", d.Transactions).
		Int("months", len(d.NetWorth)).
		Dur("elapsed", time.Since(start)).
		Msg("Dashboard refreshed")

	if s.hub != nil {
		s.hub.Broadcast(models.RefreshEvent{
			Type:        "refresh",
			Source:      source,
			GeneratedAt: d.GeneratedAt,
		})
	}

	return d, nil
}

// fetch pulls the three record sets from the upstream API. Any failure
// falls back to the built-in demo dataset; fetch failures belong to this
// collaborator, never to the aggregation core.
func (s *Service) fetch(ctx context.Context) (*models.LedgerSnapshot, string) {
	if s.client == nil {
		return DemoSnapshot(), models.SourceDemo
	}

	accounts, err := s.client.GetAccounts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Account fetch failed, serving demo dataset")
		return DemoSnapshot(), models.SourceDemo
	}

	categories, err := s.client.GetCategories(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Category fetch failed, serving demo dataset")
		return DemoSnapshot(), models.SourceDemo
	}

	transactions, err := s.client.GetTransactions(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Transaction fetch failed, serving demo dataset")
		return DemoSnapshot(), models.SourceDemo
	}

	return &models.LedgerSnapshot{
		Accounts:     accounts,
		Categories:   categories,
		Transactions: transactions,
		FetchedAt:    time.Now(),
	}, models.SourceActual
}
