package models

import (
	"sort"
	"time"
)

// GroupBalances maps account group name to a cumulative balance in major
// units for one month. Alongside the configured groups it carries the
// "assets", "liabilities", and "all" rollup keys.
type GroupBalances map[string]float64

// NetWorthByMonth maps month key ("2006-01") to per-group cumulative
// balances. Month keys sort lexicographically in chronological order.
type NetWorthByMonth map[string]GroupBalances

// Balance returns the balance for a group in a month, zero when either
// key is absent. Consumers get a total function instead of relying on
// absent-key semantics.
func (n NetWorthByMonth) Balance(month, group string) float64 {
	return n[month][group]
}

// Months returns the month keys in ascending chronological order.
func (n NetWorthByMonth) Months() []string {
	months := make([]string, 0, len(n))
	for m := range n {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// CashFlow holds one month of income and expense totals in major units.
// Expenses is reported unsigned; Net is income minus true outflow, so it
// goes negative in months that spend more than they earn.
type CashFlow struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// CashFlowByMonth maps month key to that month's cash flow. Only months
// with at least one categorized non-transfer transaction appear.
type CashFlowByMonth map[string]CashFlow

// Flow returns the cash flow for a month, all-zero when absent.
func (c CashFlowByMonth) Flow(month string) CashFlow {
	return c[month]
}

// Months returns the month keys in ascending chronological order.
func (c CashFlowByMonth) Months() []string {
	months := make([]string, 0, len(c))
	for m := range c {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// Metrics holds the derived health metric series, one entry per cash flow
// month, ordered most-recent-month-first.
type Metrics struct {
	SavingsRate     []float64 `json:"savings_rate"`
	WithdrawalRate  []float64 `json:"withdrawal_rate"`
	SavingsMultiple []float64 `json:"savings_multiple"`
}

// Dashboard source values.
const (
	SourceActual = "actual"
	SourceDemo   = "demo"
)

// Dashboard is the complete aggregate published after a refresh. It is
// immutable: readers receive a pointer to one complete value, never a
// structure updated in place.
type Dashboard struct {
	NetWorth      NetWorthByMonth `json:"net_worth_by_month"`
	CashFlow      CashFlowByMonth `json:"cash_flow_by_month"`
	Metrics       Metrics         `json:"metrics"`
	Source        string          `json:"source"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Accounts      int             `json:"accounts"`
	Transactions  int             `json:"transactions"`
	DateFallbacks int             `json:"date_fallbacks,omitempty"`
}

// LatestMonth returns the most recent net worth month key, or "" when
// the dashboard has no months.
func (d *Dashboard) LatestMonth() string {
	months := d.NetWorth.Months()
	if len(months) == 0 {
		return ""
	}
	return months[len(months)-1]
}

// RefreshEvent is broadcast to WebSocket clients after each publish.
type RefreshEvent struct {
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}
