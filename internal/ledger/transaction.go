package ledger

import (
	"time"
)

// Kind represents the direction of a transaction (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Sign is the multiplier applied to the amount when accumulating balances.
func (k Kind) Sign() int64 {
	if k == KindIncome {
		return 1
	}

	return -1
}

// DefaultAccount is assigned to legacy rows that carry no account value.
const DefaultAccount = "Cash"

// Transaction is a single ledger entry.
//
// Amount and Balance are stored in cents. Amount is always positive; its
// direction comes from Kind. Balance is the running per-account total after
// this entry and is derived; Recompute owns it, callers never set it.
//
// Source is meaningful only for income entries; Category and Tags only for
// expense entries. The engine does not enforce the split; the input layer
// zeroes whichever side does not apply.
type Transaction struct {
	ID       int64
	Date     time.Time
	Kind     Kind
	Account  string
	Amount   int64
	Balance  int64
	Source   string
	Category string
	Tags     []string
	Note     string
}

// SignedAmount is the amount with the direction applied.
func (t Transaction) SignedAmount() int64 {
	return t.Kind.Sign() * t.Amount
}

// CreateParams holds caller-supplied fields for a new transaction.
// ID and Balance are assigned by the engine.
type CreateParams struct {
	Date     time.Time
	Kind     Kind
	Account  string
	Amount   int64
	Source   string
	Category string
	Tags     []string
	Note     string
}

// UpdateParams holds a partial update. Nil fields keep their prior value.
type UpdateParams struct {
	Date     *time.Time
	Kind     *Kind
	Account  *string
	Amount   *int64
	Source   *string
	Category *string
	Tags     []string
	Note     *string
}
