package report

import (
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

// CurrentBalances returns each account's balance as of its latest transaction,
// plus the total across accounts. "Latest" means the greatest date; when
// several transactions share an account's latest date, the one appearing last
// in the ledger wins.
//
// An empty ledger yields an empty map and a zero total.
func CurrentBalances(l ledger.Ledger) (map[string]int64, int64) {
	latest := make(map[string]ledger.Transaction, 4)

	for _, t := range l {
		prev, ok := latest[t.Account]
		if !ok || !t.Date.Before(prev.Date) {
			latest[t.Account] = t
		}
	}

	balances := make(map[string]int64, len(latest))

	var total int64

	for account, t := range latest {
		balances[account] = t.Balance
		total += t.Balance
	}

	return balances, total
}
