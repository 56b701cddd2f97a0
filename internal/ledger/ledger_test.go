package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestAdd_FirstRecord(t *testing.T) {
	l := ledger.Add(ledger.Ledger{}, ledger.CreateParams{
		Date:     date(2024, 1, 1),
		Kind:     ledger.KindExpense,
		Account:  "Bank",
		Amount:   5000,
		Category: "Food",
	})

	require.Len(t, l, 1)
	assert.Equal(t, int64(1), l[0].ID)
	assert.Equal(t, int64(-5000), l[0].Balance)
	assert.Equal(t, "Food", l[0].Category)
	assert.Empty(t, l[0].Source)
}

func TestAdd_IDMonotonicity(t *testing.T) {
	l := ledger.Ledger{
		{ID: 3, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100},
		{ID: 7, Date: date(2024, 1, 2), Kind: ledger.KindExpense, Account: "Bank", Amount: 50},
	}

	next := ledger.Add(l, ledger.CreateParams{
		Date: date(2024, 1, 3), Kind: ledger.KindIncome, Account: "Bank", Amount: 10,
	})

	require.Len(t, next, 3)
	assert.Equal(t, int64(8), next[2].ID)

	// Prior ids untouched.
	assert.Equal(t, int64(3), next[0].ID)
	assert.Equal(t, int64(7), next[1].ID)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	l := ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000},
	}
	l = ledger.Recompute(l)

	_ = ledger.Add(l, ledger.CreateParams{
		Date: date(2024, 1, 2), Kind: ledger.KindExpense, Account: "Bank", Amount: 20000,
	})

	require.Len(t, l, 1)
	assert.Equal(t, int64(100000), l[0].Balance)
}

func TestUpdate(t *testing.T) {
	l := ledger.Recompute(ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000, Source: "Salary"},
		{ID: 2, Date: date(2024, 1, 2), Kind: ledger.KindExpense, Account: "Bank", Amount: 20000, Category: "Food"},
	})

	amount := int64(200000)

	next, err := ledger.Update(l, 1, ledger.UpdateParams{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, int64(200000), next[0].Balance)
	assert.Equal(t, int64(180000), next[1].Balance)

	// Untouched fields keep their values.
	assert.Equal(t, "Salary", next[0].Source)
	assert.Equal(t, date(2024, 1, 1), next[0].Date)

	// The input snapshot is unchanged.
	assert.Equal(t, int64(100000), l[0].Balance)
}

func TestUpdate_NotFound(t *testing.T) {
	l := ledger.Ledger{{ID: 1, Kind: ledger.KindIncome, Account: "Bank", Amount: 100}}

	amount := int64(5)

	_, err := ledger.Update(l, 99, ledger.UpdateParams{Amount: &amount})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestDelete(t *testing.T) {
	l := ledger.Recompute(ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000},
		{ID: 2, Date: date(2024, 1, 2), Kind: ledger.KindExpense, Account: "Bank", Amount: 20000},
	})

	next, err := ledger.Delete(l, 1)
	require.NoError(t, err)

	require.Len(t, next, 1)
	assert.Equal(t, int64(2), next[0].ID)
	assert.Equal(t, int64(-20000), next[0].Balance)

	// Deleted ids are not reused.
	assert.Equal(t, int64(3), next.NextID())
}

func TestDelete_NotFound(t *testing.T) {
	_, err := ledger.Delete(ledger.Ledger{}, 1)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestAddDelete_Inverse(t *testing.T) {
	l := ledger.Recompute(ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000},
		{ID: 2, Date: date(2024, 1, 5), Kind: ledger.KindExpense, Account: "Wallet", Amount: 3000},
	})

	added := ledger.Add(l, ledger.CreateParams{
		Date: date(2024, 1, 3), Kind: ledger.KindExpense, Account: "Bank", Amount: 500,
	})

	reverted, err := ledger.Delete(added, 3)
	require.NoError(t, err)

	assert.Equal(t, ledger.Recompute(l), reverted)
}

func TestNextID_Empty(t *testing.T) {
	assert.Equal(t, int64(1), ledger.Ledger{}.NextID())
}

func TestFind(t *testing.T) {
	l := ledger.Ledger{{ID: 4, Account: "Bank"}}

	got, err := l.Find(4)
	require.NoError(t, err)
	assert.Equal(t, "Bank", got.Account)

	_, err = l.Find(5)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestAccounts_FirstSeenOrder(t *testing.T) {
	l := ledger.Ledger{
		{ID: 1, Account: "Wallet"},
		{ID: 2, Account: "Bank"},
		{ID: 3, Account: "Wallet"},
	}

	assert.Equal(t, []string{"Wallet", "Bank"}, l.Accounts())
}
