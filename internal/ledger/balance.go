package ledger

import (
	"sort"
)

// Recompute derives every transaction's balance from scratch and returns a new
// snapshot. Per account, transactions are ordered by date (stable on ties, so
// the original insertion order decides) and the balance is the running sum of
// signed amounts for that account only.
//
// The whole ledger is always recomputed; callers must not assume a mutation
// only touched one account. Transactions with no account are folded into
// DefaultAccount rather than rejected; legacy rows predate the account column.
func Recompute(l Ledger) Ledger {
	if len(l) == 0 {
		return Ledger{}
	}

	next := make(Ledger, len(l))
	copy(next, l)

	byAccount := make(map[string][]int, 4)

	for i := range next {
		if next[i].Account == "" {
			next[i].Account = DefaultAccount
		}

		byAccount[next[i].Account] = append(byAccount[next[i].Account], i)
	}

	for _, indices := range byAccount {
		sort.SliceStable(indices, func(a, b int) bool {
			return next[indices[a]].Date.Before(next[indices[b]].Date)
		})

		var running int64

		for _, i := range indices {
			running += next[i].SignedAmount()
			next[i].Balance = running
		}
	}

	return next
}
