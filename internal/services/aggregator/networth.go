package aggregator

import (
	"time"

	"ledgerdash/internal/common"
	"ledgerdash/internal/models"
)

// NetWorthByMonth buckets account balances by configured account group,
// cumulative through each month present in the transaction history. Every
// configured group key appears in every month, zero when no transactions
// match; group members that name no existing account contribute nothing.
func NetWorthByMonth(txs []models.Transaction, accounts []models.Account, groups map[string][]string) models.NetWorthByMonth {
	netWorth, _ := netWorthAt(txs, accounts, groups, time.Now())
	return netWorth
}

func netWorthAt(txs []models.Transaction, accounts []models.Account, groups map[string][]string, now time.Time) (models.NetWorthByMonth, int) {
	out := models.NetWorthByMonth{}
	if len(txs) == 0 {
		return out, 0
	}

	keys, fallbacks := bucketDates(txs, now)
	months := distinctSorted(keys)

	idByName := make(map[string]string, len(accounts))
	for _, a := range accounts {
		idByName[a.Name] = a.ID
	}

	// Resolve group membership (account names) to account ids once.
	// Well-formed config is disjoint, so one group per account suffices.
	groupByAccountID := make(map[string]string)
	for group, names := range groups {
		for _, name := range names {
			if id, ok := idByName[name]; ok {
				groupByAccountID[id] = group
			}
		}
	}

	for _, month := range months {
		// Each month is recomputed from scratch over the full history:
		// a transaction contributes iff its bucketed month is not after
		// this one. O(months × transactions), order-independent.
		cents := make(map[string]int64, len(groups))
		for i := range txs {
			if keys[i] > month {
				continue
			}
			group, ok := groupByAccountID[txs[i].Account]
			if !ok {
				continue
			}
			cents[group] += txs[i].Amount
		}

		balances := make(models.GroupBalances, len(groups)+3)
		var assets, liabilities, all float64
		for group := range groups {
			v := float64(cents[group]) / 100
			balances[group] = v
			all += v
			switch {
			case common.IsAssetGroup(group):
				assets += v
			case common.IsLiabilityGroup(group):
				liabilities += v
			}
		}
		balances[common.RollupAssets] = assets
		balances[common.RollupLiabilities] = liabilities
		balances[common.RollupAll] = all
		out[month] = balances
	}

	return out, fallbacks
}
