package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

func TestParseGranularity(t *testing.T) {
	for _, s := range []string{"day", "week", "month", "year"} {
		g, err := report.ParseGranularity(s)
		require.NoError(t, err)
		assert.Equal(t, report.Granularity(s), g)
	}

	_, err := report.ParseGranularity("quarter")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestPeriodKey(t *testing.T) {
	d := date(2024, 1, 15)

	assert.Equal(t, "2024-01-15", report.GranularityDay.PeriodKey(d))
	assert.Equal(t, "2024-W03", report.GranularityWeek.PeriodKey(d))
	assert.Equal(t, "2024-01", report.GranularityMonth.PeriodKey(d))
	assert.Equal(t, "2024", report.GranularityYear.PeriodKey(d))
}

func TestPeriodKey_ISOWeekYearBoundary(t *testing.T) {
	// 2024-12-30 falls in ISO week 1 of 2025.
	assert.Equal(t, "2025-W01", report.GranularityWeek.PeriodKey(date(2024, 12, 30)))
}

func TestBucketByTime(t *testing.T) {
	txs := []ledger.Transaction{
		{Date: date(2024, 1, 1), Kind: ledger.KindIncome, Amount: 100000},
		{Date: date(2024, 1, 20), Kind: ledger.KindExpense, Amount: 30000},
		{Date: date(2024, 2, 3), Kind: ledger.KindExpense, Amount: 5000},
	}

	got, err := report.BucketByTime(txs, report.GranularityMonth)
	require.NoError(t, err)

	assert.Equal(t, map[string]report.Flow{
		"2024-01": {Income: 100000, Expense: 30000, Net: 70000},
		"2024-02": {Expense: 5000, Net: -5000},
	}, got)
}

func TestBucketByTime_Empty(t *testing.T) {
	got, err := report.BucketByTime(nil, report.GranularityDay)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBucketByTime_InvalidGranularity(t *testing.T) {
	_, err := report.BucketByTime(nil, report.Granularity("decade"))
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestBucketByCategory(t *testing.T) {
	txs := []ledger.Transaction{
		{Kind: ledger.KindExpense, Category: "Food", Amount: 3000},
		{Kind: ledger.KindExpense, Category: "Transport", Amount: 8000},
		{Kind: ledger.KindExpense, Category: "Food", Amount: 2000},
		{Kind: ledger.KindIncome, Category: "Salary", Amount: 100000},
		{Kind: ledger.KindExpense, Category: "", Amount: 999},
	}

	got, err := report.BucketByCategory(txs, ledger.KindExpense)
	require.NoError(t, err)

	// Sum descending; income and uncategorized rows excluded.
	assert.Equal(t, []report.CategoryTotal{
		{Category: "Transport", Sum: 8000},
		{Category: "Food", Sum: 5000},
	}, got)
}

func TestBucketByCategory_TiesSortByName(t *testing.T) {
	txs := []ledger.Transaction{
		{Kind: ledger.KindExpense, Category: "Rent", Amount: 5000},
		{Kind: ledger.KindExpense, Category: "Food", Amount: 5000},
	}

	got, err := report.BucketByCategory(txs, ledger.KindExpense)
	require.NoError(t, err)

	assert.Equal(t, []report.CategoryTotal{
		{Category: "Food", Sum: 5000},
		{Category: "Rent", Sum: 5000},
	}, got)
}

func TestBucketByCategory_InvalidKind(t *testing.T) {
	_, err := report.BucketByCategory(nil, ledger.Kind("transfer"))
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestBucketByTag_FanOut(t *testing.T) {
	// A transaction credits its full amount to every tag it carries.
	txs := []ledger.Transaction{
		{Kind: ledger.KindExpense, Amount: 3000, Tags: []string{"food", "eating"}},
		{Kind: ledger.KindExpense, Amount: 2000, Tags: []string{"food"}},
	}

	got, err := report.BucketByTag(txs, ledger.KindExpense, 1)
	require.NoError(t, err)

	assert.Equal(t, []report.TagTotal{
		{Tag: "food", Sum: 5000, Count: 2},
		{Tag: "eating", Sum: 3000, Count: 1},
	}, got)
}

func TestBucketByTag_MinCount(t *testing.T) {
	txs := []ledger.Transaction{
		{Kind: ledger.KindExpense, Amount: 3000, Tags: []string{"food", "eating"}},
		{Kind: ledger.KindExpense, Amount: 2000, Tags: []string{"food"}},
	}

	got, err := report.BucketByTag(txs, ledger.KindExpense, 2)
	require.NoError(t, err)

	assert.Equal(t, []report.TagTotal{
		{Tag: "food", Sum: 5000, Count: 2},
	}, got)
}

func TestBucketByTag_EmptyKindCoversBoth(t *testing.T) {
	txs := []ledger.Transaction{
		{Kind: ledger.KindExpense, Amount: 3000, Tags: []string{"side"}},
		{Kind: ledger.KindIncome, Amount: 10000, Tags: []string{"side"}},
	}

	got, err := report.BucketByTag(txs, "", 1)
	require.NoError(t, err)

	assert.Equal(t, []report.TagTotal{
		{Tag: "side", Sum: 13000, Count: 2},
	}, got)
}

func TestBucketByTag_InvalidKind(t *testing.T) {
	_, err := report.BucketByTag(nil, ledger.Kind("transfer"), 1)
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}

func TestTagTimeline(t *testing.T) {
	txs := []ledger.Transaction{
		{Date: date(2024, 1, 5), Kind: ledger.KindExpense, Amount: 3000, Tags: []string{"lunch", "work"}},
		{Date: date(2024, 1, 20), Kind: ledger.KindExpense, Amount: 3500, Tags: []string{"lunch"}},
		{Date: date(2024, 2, 2), Kind: ledger.KindExpense, Amount: 4000, Tags: []string{"lunch"}},
		{Date: date(2024, 2, 10), Kind: ledger.KindExpense, Amount: 9000, Tags: []string{"travel"}},
	}

	got, err := report.TagTimeline(txs, "lunch", report.GranularityMonth)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"2024-01": 6500,
		"2024-02": 4000,
	}, got)
}

func TestTagTimeline_UnknownTag(t *testing.T) {
	txs := []ledger.Transaction{
		{Date: date(2024, 1, 5), Kind: ledger.KindExpense, Amount: 3000, Tags: []string{"lunch"}},
	}

	got, err := report.TagTimeline(txs, "rent", report.GranularityMonth)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTagTimeline_InvalidGranularity(t *testing.T) {
	_, err := report.TagTimeline(nil, "lunch", report.Granularity("hour"))
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
}
