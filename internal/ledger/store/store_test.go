package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger/store"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestLoad_MissingFileInitializesEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	s := store.New(path)

	l, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, l)

	// The dataset now exists with the standard header.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,date,kind,account,amount,balance,source,category,tags,note\n", string(data))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "ledger.csv"))

	in := ledger.Recompute(ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000, Source: "Salary", Note: "January"},
		{ID: 2, Date: date(2024, 1, 2), Kind: ledger.KindExpense, Account: "Bank", Amount: 3050, Category: "Food", Tags: []string{"lunch", "work"}},
	})

	require.NoError(t, s.Save(context.Background(), in))

	out, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_ResortsByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")

	csv := "id,date,kind,account,amount,balance,source,category,tags,note\n" +
		"3,2024-01-03,expense,Bank,10.00,70.00,,Food,,\n" +
		"1,2024-01-01,income,Bank,100.00,100.00,Salary,,,\n" +
		"2,2024-01-02,expense,Bank,20.00,80.00,,Food,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	l, err := store.New(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, l, 3)

	assert.Equal(t, int64(1), l[0].ID)
	assert.Equal(t, int64(2), l[1].ID)
	assert.Equal(t, int64(3), l[2].ID)
}

func TestLoad_CorruptData(t *testing.T) {
	type testCase struct {
		name string
		csv  string
	}

	tests := []testCase{
		{
			name: "MissingColumn",
			csv:  "id,date,kind\n1,2024-01-01,income\n",
		},
		{
			name: "BadDate",
			csv:  "id,date,kind,account,amount,balance,source,category,tags,note\n1,01/02/2024,income,Bank,1.00,1.00,,,,\n",
		},
		{
			name: "BadKind",
			csv:  "id,date,kind,account,amount,balance,source,category,tags,note\n1,2024-01-01,transfer,Bank,1.00,1.00,,,,\n",
		},
		{
			name: "BadAmount",
			csv:  "id,date,kind,account,amount,balance,source,category,tags,note\n1,2024-01-01,income,Bank,abc,1.00,,,,\n",
		},
		{
			name: "BadID",
			csv:  "id,date,kind,account,amount,balance,source,category,tags,note\nxyz,2024-01-01,income,Bank,1.00,1.00,,,,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ledger.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.csv), 0o644))

			_, err := store.New(path).Load(context.Background())
			assert.ErrorIs(t, err, ledger.ErrCorruptData)
		})
	}
}

func TestLoad_BlankBalanceTolerated(t *testing.T) {
	// A hand-added row without a balance loads fine; recompute owns balances.
	path := filepath.Join(t.TempDir(), "ledger.csv")

	csv := "id,date,kind,account,amount,balance,source,category,tags,note\n" +
		"1,2024-01-01,income,Bank,100.00,,Salary,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	l, err := store.New(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, l, 1)
	assert.Equal(t, int64(10000), l[0].Amount)
	assert.Zero(t, l[0].Balance)
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	s := store.New(path)
	ctx := context.Background()

	first := ledger.Recompute(ledger.Ledger{
		{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100},
	})
	require.NoError(t, s.Save(ctx, first))

	require.NoError(t, s.Save(ctx, ledger.Ledger{}))

	l, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, l)
}

func TestSplitTags(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want []string
	}

	tests := []testCase{
		{name: "Empty", in: "", want: nil},
		{name: "Commas", in: "food,eating", want: []string{"food", "eating"}},
		{name: "Whitespace", in: "food eating", want: []string{"food", "eating"}},
		{name: "Mixed", in: " food , eating  out ", want: []string{"food", "eating", "out"}},
		{name: "FullWidthComma", in: "早餐，外卖", want: []string{"早餐", "外卖"}},
		{name: "OnlySeparators", in: " , ,, ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.SplitTags(tt.in))
		})
	}
}
