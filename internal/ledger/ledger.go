package ledger

import (
	"fmt"
)

// Ledger is the full collection of transactions across all accounts.
//
// Mutations never edit a ledger in place: Add, Update and Delete each return a
// fresh snapshot with balances recomputed, so readers holding the previous
// value stay consistent. Callers must treat the returned ledger as the new
// authoritative snapshot.
type Ledger []Transaction

// NextID returns the id the next added transaction will receive:
// max existing id + 1, or 1 for an empty ledger. Deleted ids are never reused.
func (l Ledger) NextID() int64 {
	var max int64

	for _, t := range l {
		if t.ID > max {
			max = t.ID
		}
	}

	return max + 1
}

// Find returns the transaction with the given id.
func (l Ledger) Find(id int64) (Transaction, error) {
	for _, t := range l {
		if t.ID == id {
			return t, nil
		}
	}

	return Transaction{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// Accounts returns the distinct account names in first-seen order.
func (l Ledger) Accounts() []string {
	seen := make(map[string]bool, 4)

	var out []string

	for _, t := range l {
		if !seen[t.Account] {
			seen[t.Account] = true
			out = append(out, t.Account)
		}
	}

	return out
}

// Add appends a new transaction built from params, assigns the next id and
// returns a new snapshot with balances recomputed.
func Add(l Ledger, params CreateParams) Ledger {
	next := make(Ledger, len(l), len(l)+1)
	copy(next, l)

	next = append(next, Transaction{
		ID:       l.NextID(),
		Date:     params.Date,
		Kind:     params.Kind,
		Account:  params.Account,
		Amount:   params.Amount,
		Source:   params.Source,
		Category: params.Category,
		Tags:     params.Tags,
		Note:     params.Note,
	})

	return Recompute(next)
}

// Update replaces the supplied fields on the transaction with the given id and
// returns a new snapshot with balances recomputed. The id itself never changes.
func Update(l Ledger, id int64, params UpdateParams) (Ledger, error) {
	idx := -1

	for i, t := range l {
		if t.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("update id %d: %w", id, ErrNotFound)
	}

	next := make(Ledger, len(l))
	copy(next, l)

	t := next[idx]

	if params.Date != nil {
		t.Date = *params.Date
	}

	if params.Kind != nil {
		t.Kind = *params.Kind
	}

	if params.Account != nil {
		t.Account = *params.Account
	}

	if params.Amount != nil {
		t.Amount = *params.Amount
	}

	if params.Source != nil {
		t.Source = *params.Source
	}

	if params.Category != nil {
		t.Category = *params.Category
	}

	if params.Tags != nil {
		t.Tags = params.Tags
	}

	if params.Note != nil {
		t.Note = *params.Note
	}

	next[idx] = t

	return Recompute(next), nil
}

// Delete removes the transaction with the given id and returns a new snapshot
// with balances recomputed. Remaining ids are not renumbered.
func Delete(l Ledger, id int64) (Ledger, error) {
	idx := -1

	for i, t := range l {
		if t.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("delete id %d: %w", id, ErrNotFound)
	}

	next := make(Ledger, 0, len(l)-1)
	next = append(next, l[:idx]...)
	next = append(next, l[idx+1:]...)

	return Recompute(next), nil
}
