package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/models"
)

func testCategories() []models.Category {
	return []models.Category{
		{ID: "salary", Name: "Salary", IsIncome: true},
		{ID: "rent", Name: "Rent"},
		{ID: "food", Name: "Groceries"},
	}
}

func TestCashFlowBuckets(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t1", Account: "1", Category: "salary", Amount: 650_000, Date: "2024-01-01"},
		{ID: "t2", Account: "1", Category: "rent", Amount: -185_000, Date: "2024-01-03"},
		{ID: "t3", Account: "1", Category: "food", Amount: -60_000, Date: "2024-01-12"},
		{ID: "t4", Account: "1", Category: "salary", Amount: 650_000, Date: "2024-02-01"},
	}

	cf := CashFlowByMonth(txs, testCategories())

	require.Equal(t, []string{"2024-01", "2024-02"}, cf.Months())

	jan := cf.Flow("2024-01")
	assert.InDelta(t, 6500.0, jan.Income, 1e-9)
	assert.InDelta(t, 2450.0, jan.Expenses, 1e-9)
	assert.InDelta(t, 4050.0, jan.Net, 1e-9)

	feb := cf.Flow("2024-02")
	assert.InDelta(t, 6500.0, feb.Income, 1e-9)
	assert.Zero(t, feb.Expenses)
	assert.InDelta(t, 6500.0, feb.Net, 1e-9)
}

func TestCashFlowExcludesTransfers(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t1", Account: "1", Category: "salary", Amount: 100_000, Date: "2024-01-01"},
		{ID: "t2", Account: "1", Category: "food", Amount: -50_000, Date: "2024-01-02", TransferID: "tr1"},
		{ID: "t3", Account: "2", Category: "food", Amount: 50_000, Date: "2024-01-02", TransferID: "tr1"},
	}

	cf := CashFlowByMonth(txs, testCategories())

	flow := cf.Flow("2024-01")
	assert.InDelta(t, 1000.0, flow.Income, 1e-9)
	assert.Zero(t, flow.Expenses)
	assert.InDelta(t, 1000.0, flow.Net, 1e-9)
}

func TestCashFlowExcludesUncategorized(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t1", Account: "1", Category: "", Amount: 500_000, Date: "2024-01-15"},
	}

	cf := CashFlowByMonth(txs, testCategories())
	assert.Empty(t, cf)
}

func TestCashFlowUnresolvedCategoryIsExpense(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t1", Account: "1", Category: "deleted-cat", Amount: -20_000, Date: "2024-01-10"},
	}

	cf := CashFlowByMonth(txs, testCategories())

	flow := cf.Flow("2024-01")
	assert.Zero(t, flow.Income)
	assert.InDelta(t, 200.0, flow.Expenses, 1e-9)
	assert.InDelta(t, -200.0, flow.Net, 1e-9)
}

func TestCashFlowExpensesNeverNegative(t *testing.T) {
	// A refund lands as a positive amount in an expense category; the
	// month's expense sum goes positive and must still report unsigned.
	txs := []models.Transaction{
		{ID: "t1", Account: "1", Category: "food", Amount: 30_000, Date: "2024-01-10"},
	}

	cf := CashFlowByMonth(txs, testCategories())

	flow := cf.Flow("2024-01")
	assert.InDelta(t, 300.0, flow.Expenses, 1e-9)
	assert.InDelta(t, 300.0, flow.Net, 1e-9)
}

func TestCashFlowFlowZeroDefault(t *testing.T) {
	cf := CashFlowByMonth(nil, testCategories())
	assert.Equal(t, models.CashFlow{}, cf.Flow("2099-01"))
}
