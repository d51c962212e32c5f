// Package aggregator derives the monthly financial time series from a
// ledger snapshot: cumulative net worth by account group, income/expense
// cash flow, and the scalar health metrics built on both. Everything here
// is a pure function of its inputs (no I/O, no shared state) so it is
// safe to call concurrently and trivially recomputed wholesale on each
// refresh.
package aggregator

import (
	"time"

	"ledgerdash/internal/models"
)

// Result bundles the three aggregates computed from one snapshot.
// DateFallbacks counts transactions whose date could not be parsed and
// were bucketed into the current month instead.
type Result struct {
	NetWorth      models.NetWorthByMonth
	CashFlow      models.CashFlowByMonth
	Metrics       models.Metrics
	DateFallbacks int
}

// Aggregate runs the full pipeline over a snapshot. The net worth and
// cash flow passes are independent; metrics consume both.
func Aggregate(snapshot *models.LedgerSnapshot, groups map[string][]string) Result {
	now := time.Now()
	netWorth, fallbacks := netWorthAt(snapshot.Transactions, snapshot.Accounts, groups, now)
	cashFlow, _ := cashFlowAt(snapshot.Transactions, snapshot.Categories, now)
	return Result{
		NetWorth:      netWorth,
		CashFlow:      cashFlow,
		Metrics:       Metrics(netWorth, cashFlow),
		DateFallbacks: fallbacks,
	}
}

// Months returns the distinct month keys present across the transactions,
// ascending. Months with no transactions never appear.
func Months(txs []models.Transaction) []string {
	keys, _ := bucketDates(txs, time.Now())
	return distinctSorted(keys)
}
