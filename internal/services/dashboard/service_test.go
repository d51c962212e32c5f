package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdash/internal/common"
	"ledgerdash/internal/interfaces"
	"ledgerdash/internal/models"
)

// mockLedgerClient is a hand-rolled LedgerClient for service tests.
type mockLedgerClient struct {
	accounts     []models.Account
	categories   []models.Category
	transactions []models.Transaction
	err          error
}

var _ interfaces.LedgerClient = (*mockLedgerClient)(nil)

func (m *mockLedgerClient) GetAccounts(ctx context.Context) ([]models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.accounts, nil
}

func (m *mockLedgerClient) GetCategories(ctx context.Context) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockLedgerClient) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}

func testGroups() map[string][]string {
	return map[string][]string{
		"assets_liquid": {"Checking"},
	}
}

func TestDashboardNilBeforeFirstRefresh(t *testing.T) {
	svc := NewService(nil, testGroups(), nil, common.NewSilentLogger())
	assert.Nil(t, svc.Dashboard())
}

func TestRefreshFromClient(t *testing.T) {
	client := &mockLedgerClient{
		accounts:   []models.Account{{ID: "a1", Name: "Checking"}},
		categories: []models.Category{{ID: "c1", Name: "Salary", IsIncome: true}},
		transactions: []models.Transaction{
			{ID: "t1", Account: "a1", Category: "c1", Amount: 500_000, Date: "2024-01-15"},
		},
	}
	svc := NewService(client, testGroups(), nil, common.NewSilentLogger())

	d, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, models.SourceActual, d.Source)
	assert.Equal(t, 1, d.Accounts)
	assert.Equal(t, 1, d.Transactions)
	assert.InDelta(t, 5000.0, d.NetWorth.Balance("2024-01", "assets_liquid"), 1e-9)
	assert.Same(t, d, svc.Dashboard())
}

func TestRefreshFallsBackToDemoOnFetchError(t *testing.T) {
	client := &mockLedgerClient{err: errors.New("upstream down")}
	svc := NewService(client, testGroups(), nil, common.NewSilentLogger())

	d, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceDemo, d.Source)
	assert.NotZero(t, d.Transactions)
	assert.NotEmpty(t, d.NetWorth)
}

func TestRefreshWithoutClientServesDemo(t *testing.T) {
	groups := map[string][]string{
		"assets_liquid":    {"Checking", "Savings"},
		"assets_invest":    {"Brokerage"},
		"liabilities_loan": {"Mortgage"},
	}
	svc := NewService(nil, groups, nil, common.NewSilentLogger())

	d, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.SourceDemo, d.Source)
	assert.Equal(t, 4, d.Accounts)
	assert.Zero(t, d.DateFallbacks)

	// The demo ledger's paired transfers cancel across accounts, so the
	// liability side is exactly the opening balance plus the payments
	month := d.LatestMonth()
	require.NotEmpty(t, month)
	assert.Less(t, d.NetWorth.Balance(month, "liabilities_loan"), 0.0)
	assert.Greater(t, d.NetWorth.Balance(month, "assets_invest"), 0.0)

	// Demo months all have salary income, so the savings rate is defined
	require.NotEmpty(t, d.Metrics.SavingsRate)
	assert.Greater(t, d.Metrics.SavingsRate[0], 0.0)
}

func TestRefreshReplacesPublishedDashboard(t *testing.T) {
	client := &mockLedgerClient{
		accounts: []models.Account{{ID: "a1", Name: "Checking"}},
		transactions: []models.Transaction{
			{ID: "t1", Account: "a1", Amount: 100_000, Date: "2024-01-15"},
		},
	}
	svc := NewService(client, testGroups(), nil, common.NewSilentLogger())

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	client.transactions = append(client.transactions, models.Transaction{
		ID: "t2", Account: "a1", Amount: 50_000, Date: "2024-02-01",
	})

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, second, svc.Dashboard())
	assert.InDelta(t, 1500.0, second.NetWorth.Balance("2024-02", "assets_liquid"), 1e-9)

	// The earlier value is untouched; readers holding it see a frozen view
	assert.Equal(t, []string{"2024-01"}, first.NetWorth.Months())
}

func TestRefreshAbortsOnCancelledContext(t *testing.T) {
	svc := NewService(nil, testGroups(), nil, common.NewSilentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := svc.Refresh(ctx)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, svc.Dashboard())
}

func TestDemoSnapshotDeterministicShape(t *testing.T) {
	a := DemoSnapshot()
	b := DemoSnapshot()

	assert.Equal(t, len(a.Transactions), len(b.Transactions))
	assert.Equal(t, a.Accounts, b.Accounts)
	assert.Equal(t, a.Categories, b.Categories)

	// 1 opening entry + 10 entries per month
	assert.Equal(t, 1+demoMonths*10, len(a.Transactions))
}
