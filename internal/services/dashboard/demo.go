package dashboard

import (
	"fmt"
	"time"

	"ledgerdash/internal/models"
)

// Demo account and category ids, stable so repeated fallbacks produce
// identical snapshots.
const (
	demoChecking  = "demo-acct-checking"
	demoSavings   = "demo-acct-savings"
	demoBrokerage = "demo-acct-brokerage"
	demoMortgage  = "demo-acct-mortgage"

	demoCatSalary    = "demo-cat-salary"
	demoCatGroceries = "demo-cat-groceries"
	demoCatRent      = "demo-cat-rent"
	demoCatUtilities = "demo-cat-utilities"
)

const demoMonths = 18

// DemoSnapshot builds the fixed demonstration ledger served when no
// upstream is configured or the fetch fails. Account names line up with
// the default account group configuration. Amounts are minor units.
func DemoSnapshot() *models.LedgerSnapshot {
	now := time.Now()

	accounts := []models.Account{
		{ID: demoChecking, Name: "Checking"},
		{ID: demoSavings, Name: "Savings"},
		{ID: demoBrokerage, Name: "Brokerage"},
		{ID: demoMortgage, Name: "Mortgage"},
	}

	categories := []models.Category{
		{ID: demoCatSalary, Name: "Salary", IsIncome: true},
		{ID: demoCatGroceries, Name: "Groceries"},
		{ID: demoCatRent, Name: "Rent"},
		{ID: demoCatUtilities, Name: "Utilities"},
	}

	var txs []models.Transaction
	seq := 0
	add := func(account, category string, amount int64, date, transferID string) {
		seq++
		txs = append(txs, models.Transaction{
			ID:         fmt.Sprintf("demo-tx-%03d", seq),
			Account:    account,
			Category:   category,
			Amount:     amount,
			Date:       date,
			TransferID: transferID,
		})
	}

	// Opening mortgage balance, dated the month before the series starts.
	opening := now.AddDate(0, -demoMonths, 0)
	add(demoMortgage, "", -32_000_000, opening.Format("2006-01")+"-01", "")

	for i := demoMonths - 1; i >= 0; i-- {
		m := now.AddDate(0, -i, 0)
		day := func(d int) string { return fmt.Sprintf("%s-%02d", m.Format("2006-01"), d) }

		// Income and spending
		add(demoChecking, demoCatSalary, 650_000, day(1), "")
		add(demoChecking, demoCatRent, -185_000, day(3), "")
		add(demoChecking, demoCatGroceries, -62_000, day(10), "")
		add(demoChecking, demoCatUtilities, -18_000, day(14), "")

		// Transfers: savings sweep, brokerage contribution, mortgage payment.
		// Paired entries share a transfer id and net to zero across accounts.
		sweep := fmt.Sprintf("demo-tr-sweep-%02d", i)
		add(demoChecking, "", -100_000, day(20), sweep)
		add(demoSavings, "", 100_000, day(20), sweep)

		invest := fmt.Sprintf("demo-tr-invest-%02d", i)
		add(demoChecking, "", -80_000, day(21), invest)
		add(demoBrokerage, "", 80_000, day(21), invest)

		mortgage := fmt.Sprintf("demo-tr-mortgage-%02d", i)
		add(demoChecking, "", -120_000, day(25), mortgage)
		add(demoMortgage, "", 120_000, day(25), mortgage)
	}

	return &models.LedgerSnapshot{
		Accounts:     accounts,
		Categories:   categories,
		Transactions: txs,
		FetchedAt:    now,
	}
}
