package models

import "time"

// Account is a ledger account as returned by the budgeting API.
// Identity is ID; Name is the join key used by account group membership.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category classifies transactions. IsIncome marks income categories;
// the zero value (non-income) is the default for unresolved references.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	IsIncome bool   `json:"is_income"`
}

// Transaction is a single ledger entry. Amount is in integer minor units
// (cents), signed. Date is the raw date string from the upstream API
// ("2006-01-02" or compact "20060102"). A non-empty TransferID marks an
// inter-account transfer: it affects balances but is not income or expense.
// Category and TransferID are empty when the upstream field is null.
type Transaction struct {
	ID         string `json:"id"`
	Account    string `json:"account"`
	Category   string `json:"category,omitempty"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
	TransferID string `json:"transfer_id,omitempty"`
	Payee      string `json:"payee,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// IsTransfer returns true if the transaction is an inter-account transfer.
func (t *Transaction) IsTransfer() bool {
	return t.TransferID != ""
}

// LedgerSnapshot is the combined accounts/categories/transactions data
// pulled from the budgeting system at one point in time. Snapshots are
// immutable once built; a refresh replaces the whole value.
type LedgerSnapshot struct {
	Accounts     []Account     `json:"accounts"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	FetchedAt    time.Time     `json:"fetched_at"`
}

// AccountsByID returns an account-id lookup.
func (s *LedgerSnapshot) AccountsByID() map[string]Account {
	m := make(map[string]Account, len(s.Accounts))
	for _, a := range s.Accounts {
		m[a.ID] = a
	}
	return m
}

// CategoriesByID returns a category-id lookup.
func (s *LedgerSnapshot) CategoriesByID() map[string]Category {
	m := make(map[string]Category, len(s.Categories))
	for _, c := range s.Categories {
		m[c.ID] = c
	}
	return m
}
