package server

import (
	"net/http"
	"sort"
	"time"

	"ledgerdash/internal/common"
	"ledgerdash/internal/models"
)

// dashboard returns the latest published aggregate, or nil after writing
// a 503. Every data endpoint goes through this gate so clients see a
// consistent "warming up" signal until the first refresh lands.
func (s *Server) dashboard(w http.ResponseWriter) *models.Dashboard {
	d := s.app.Dashboard.Dashboard()
	if d == nil {
		WriteError(w, http.StatusServiceUnavailable, "Dashboard not ready; first refresh still running")
		return nil
	}
	return d
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := "ok"
	ready := s.app.Dashboard.Dashboard() != nil
	if !ready {
		status = "warming"
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"ready":   ready,
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleDashboard handles GET /api/dashboard, the complete aggregate.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.dashboard(w)
	if d == nil {
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// NetWorthResponse pairs the series with its chronological month order,
// since JSON objects don't guarantee key ordering for chart consumers.
type NetWorthResponse struct {
	Months []string               `json:"months"`
	Series models.NetWorthByMonth `json:"series"`
}

// handleNetWorth handles GET /api/networth.
func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.dashboard(w)
	if d == nil {
		return
	}
	WriteJSON(w, http.StatusOK, NetWorthResponse{
		Months: d.NetWorth.Months(),
		Series: d.NetWorth,
	})
}

// CashFlowResponse pairs the cash flow series with its month order.
type CashFlowResponse struct {
	Months []string               `json:"months"`
	Series models.CashFlowByMonth `json:"series"`
}

// handleCashFlow handles GET /api/cashflow.
func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.dashboard(w)
	if d == nil {
		return
	}
	WriteJSON(w, http.StatusOK, CashFlowResponse{
		Months: d.CashFlow.Months(),
		Series: d.CashFlow,
	})
}

// MetricsResponse carries the metric series with months most-recent-first
// to match the series ordering.
type MetricsResponse struct {
	Months []string `json:"months"`
	models.Metrics
}

// handleMetrics handles GET /api/metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.dashboard(w)
	if d == nil {
		return
	}

	months := d.CashFlow.Months()
	for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
		months[i], months[j] = months[j], months[i]
	}

	WriteJSON(w, http.StatusOK, MetricsResponse{
		Months:  months,
		Metrics: d.Metrics,
	})
}

// GroupBalance is one row of the per-group balance table.
type GroupBalance struct {
	Group   string  `json:"group"`
	Class   string  `json:"class"`
	Balance float64 `json:"balance"`
}

// SummaryResponse backs the dashboard's summary cards and balance table.
type SummaryResponse struct {
	Month           string         `json:"month"`
	NetWorth        float64        `json:"net_worth"`
	Assets          float64        `json:"assets"`
	Liabilities     float64        `json:"liabilities"`
	CashFlowMonth   string         `json:"cash_flow_month,omitempty"`
	Income          float64        `json:"income"`
	Expenses        float64        `json:"expenses"`
	Net             float64        `json:"net"`
	SavingsRate     float64        `json:"savings_rate"`
	WithdrawalRate  float64        `json:"withdrawal_rate"`
	SavingsMultiple float64        `json:"savings_multiple"`
	Groups          []GroupBalance `json:"groups"`
	Source          string         `json:"source"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// handleSummary handles GET /api/summary: latest-month cards plus the
// per-group balance table.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	d := s.dashboard(w)
	if d == nil {
		return
	}

	resp := SummaryResponse{
		Source:      d.Source,
		GeneratedAt: d.GeneratedAt,
	}

	month := d.LatestMonth()
	if month != "" {
		resp.Month = month
		resp.NetWorth = d.NetWorth.Balance(month, common.RollupAll)
		resp.Assets = d.NetWorth.Balance(month, common.RollupAssets)
		resp.Liabilities = d.NetWorth.Balance(month, common.RollupLiabilities)
		resp.Groups = groupTable(d.NetWorth[month])
	}

	cfMonths := d.CashFlow.Months()
	if len(cfMonths) > 0 {
		latest := cfMonths[len(cfMonths)-1]
		flow := d.CashFlow.Flow(latest)
		resp.CashFlowMonth = latest
		resp.Income = flow.Income
		resp.Expenses = flow.Expenses
		resp.Net = flow.Net
	}

	// Metric series are most-recent-first; index 0 is the latest month.
	if len(d.Metrics.SavingsRate) > 0 {
		resp.SavingsRate = d.Metrics.SavingsRate[0]
		resp.WithdrawalRate = d.Metrics.WithdrawalRate[0]
		resp.SavingsMultiple = d.Metrics.SavingsMultiple[0]
	}

	WriteJSON(w, http.StatusOK, resp)
}

// groupTable flattens one month's balances into table rows: rollup keys
// excluded, assets first, then liabilities, alphabetical within class.
func groupTable(balances models.GroupBalances) []GroupBalance {
	rollups := map[string]bool{
		common.RollupAll:         true,
		common.RollupAssets:      true,
		common.RollupLiabilities: true,
	}

	classRank := func(class string) int {
		switch class {
		case "asset":
			return 0
		case "liability":
			return 1
		default:
			return 2
		}
	}

	rows := make([]GroupBalance, 0, len(balances))
	for group, balance := range balances {
		if rollups[group] {
			continue
		}
		class := "other"
		switch {
		case common.IsAssetGroup(group):
			class = "asset"
		case common.IsLiabilityGroup(group):
			class = "liability"
		}
		rows = append(rows, GroupBalance{Group: group, Class: class, Balance: balance})
	}

	sort.Slice(rows, func(i, j int) bool {
		if classRank(rows[i].Class) != classRank(rows[j].Class) {
			return classRank(rows[i].Class) < classRank(rows[j].Class)
		}
		return rows[i].Group < rows[j].Group
	})
	return rows
}

// handleRefresh handles POST /api/refresh, the manual refresh trigger.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	d, err := s.app.Dashboard.Refresh(r.Context())
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Refresh aborted: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"source":       d.Source,
		"generated_at": d.GeneratedAt,
		"months":       len(d.NetWorth),
		"transactions": d.Transactions,
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// handleWS handles GET /api/ws, the WebSocket refresh feed.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.app.Hub == nil {
		WriteError(w, http.StatusServiceUnavailable, "WebSocket feed not available")
		return
	}
	s.app.Hub.ServeWS(w, r)
}
