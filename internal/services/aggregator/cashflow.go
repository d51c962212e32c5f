package aggregator

import (
	"math"
	"time"

	"ledgerdash/internal/models"
)

// CashFlowByMonth buckets income and expense totals by month. Transfers
// and uncategorized transactions are excluded entirely; a transaction
// whose category id resolves to nothing classifies as expense (the
// zero-value category is non-income). Expenses are reported unsigned
// while Net keeps the expense side's original sign, so Net is true
// income minus true outflow.
func CashFlowByMonth(txs []models.Transaction, categories []models.Category) models.CashFlowByMonth {
	cashFlow, _ := cashFlowAt(txs, categories, time.Now())
	return cashFlow
}

func cashFlowAt(txs []models.Transaction, categories []models.Category, now time.Time) (models.CashFlowByMonth, int) {
	catByID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}

	type monthSums struct {
		income   int64
		expenses int64
	}
	sums := map[string]*monthSums{}
	fallbacks := 0

	for i := range txs {
		tx := &txs[i]
		if tx.IsTransfer() || tx.Category == "" {
			continue
		}

		key, ok := monthKeyAt(tx.Date, now)
		if !ok {
			fallbacks++
		}

		s := sums[key]
		if s == nil {
			s = &monthSums{}
			sums[key] = s
		}

		if catByID[tx.Category].IsIncome {
			s.income += tx.Amount
		} else {
			s.expenses += tx.Amount
		}
	}

	out := make(models.CashFlowByMonth, len(sums))
	for month, s := range sums {
		income := float64(s.income) / 100
		expenses := float64(s.expenses) / 100 // typically negative
		out[month] = models.CashFlow{
			Income:   income,
			Expenses: math.Abs(expenses),
			Net:      income + expenses,
		}
	}
	return out, fallbacks
}
