// Package interfaces defines the service and client contracts so that
// consumers depend on behavior, not concrete implementations.
package interfaces

import (
	"context"

	"ledgerdash/internal/models"
)

// LedgerClient fetches the raw ledger from the upstream budgeting API.
type LedgerClient interface {
	GetAccounts(ctx context.Context) ([]models.Account, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
}
