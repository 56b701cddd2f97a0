// Package report implements the read side of the ledger: filtering, sorting
// and the aggregations behind every table and chart. Everything here is pure:
// functions take a ledger snapshot and never mutate it.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

// Filter narrows a ledger to the transactions a report should cover.
// Zero values mean "no restriction".
type Filter struct {
	// Accounts restricts to the given account set; empty means all accounts.
	Accounts []string
	// Text is matched case-insensitively as a substring against source,
	// category, tags, note and account. A transaction matches if any field
	// contains it.
	Text string
	// From and To bound the date range, inclusive on both ends. Only the
	// calendar date is compared.
	From *time.Time
	To   *time.Time
}

// Apply returns the transactions matching the filter, in ledger order.
func Apply(l ledger.Ledger, f Filter) []ledger.Transaction {
	var accounts map[string]bool

	if len(f.Accounts) > 0 {
		accounts = make(map[string]bool, len(f.Accounts))
		for _, a := range f.Accounts {
			accounts[a] = true
		}
	}

	needle := strings.ToLower(strings.TrimSpace(f.Text))

	out := make([]ledger.Transaction, 0, len(l))

	for _, t := range l {
		if accounts != nil && !accounts[t.Account] {
			continue
		}

		if needle != "" && !matchesText(t, needle) {
			continue
		}

		if f.From != nil && dateOnly(t.Date).Before(dateOnly(*f.From)) {
			continue
		}

		if f.To != nil && dateOnly(t.Date).After(dateOnly(*f.To)) {
			continue
		}

		out = append(out, t)
	}

	return out
}

// SortByID returns a copy of txs ordered by id.
func SortByID(txs []ledger.Transaction, ascending bool) []ledger.Transaction {
	out := make([]ledger.Transaction, len(txs))
	copy(out, txs)

	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].ID < out[j].ID
		}

		return out[i].ID > out[j].ID
	})

	return out
}

func matchesText(t ledger.Transaction, needle string) bool {
	for _, field := range []string{t.Source, t.Category, strings.Join(t.Tags, " "), t.Note, t.Account} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
