package aggregator

import (
	"ledgerdash/internal/common"
	"ledgerdash/internal/models"
)

// Metrics derives the savings rate, withdrawal rate, and savings multiple
// series from the two time series. One entry per cash flow month, ordered
// most-recent-month-first. Degenerate denominators yield 0 rather than
// NaN or Inf: no income means no savings rate, no assets means no
// withdrawal rate or savings multiple.
func Metrics(netWorth models.NetWorthByMonth, cashFlow models.CashFlowByMonth) models.Metrics {
	months := cashFlow.Months()

	savingsRate := make([]float64, 0, len(months))
	withdrawalRate := make([]float64, 0, len(months))
	savingsMultiple := make([]float64, 0, len(months))

	for _, month := range months {
		flow := cashFlow.Flow(month)

		var sr float64
		if flow.Income > 0 {
			sr = (flow.Income - flow.Expenses) / flow.Income
		}

		assets := totalAssets(netWorth[month])

		var wr float64
		if assets > 0 {
			wr = flow.Expenses / assets
		}

		var multiple float64
		if flow.Expenses > 0 {
			// Years of expenses covered by current total assets.
			multiple = assets / (flow.Expenses * 12)
		}

		savingsRate = append(savingsRate, sr)
		withdrawalRate = append(withdrawalRate, wr)
		savingsMultiple = append(savingsMultiple, multiple)
	}

	reverse(savingsRate)
	reverse(withdrawalRate)
	reverse(savingsMultiple)

	return models.Metrics{
		SavingsRate:     savingsRate,
		WithdrawalRate:  withdrawalRate,
		SavingsMultiple: savingsMultiple,
	}
}

// totalAssets sums the asset-prefixed groups for one month. The rollup
// keys don't carry the prefix, so they are never double-counted.
func totalAssets(balances models.GroupBalances) float64 {
	var sum float64
	for group, v := range balances {
		if common.IsAssetGroup(group) {
			sum += v
		}
	}
	return sum
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
