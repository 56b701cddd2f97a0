package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/export"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

func TestWriteCSV(t *testing.T) {
	txs := []ledger.Transaction{
		{ID: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Kind: ledger.KindIncome, Account: "Bank", Amount: 100000, Balance: 100000, Source: "Salary"},
		{ID: 2, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Kind: ledger.KindExpense, Account: "Bank", Amount: 3050, Balance: 96950, Category: "Food", Tags: []string{"lunch", "work"}, Note: "team lunch"},
	}

	var sb strings.Builder
	require.NoError(t, export.WriteCSV(&sb, txs))

	want := "id,date,kind,account,amount,source,category,tags,note\n" +
		"1,2024-01-01,income,Bank,1000.00,Salary,,,\n" +
		"2,2024-01-02,expense,Bank,30.50,,Food,\"lunch,work\",team lunch\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, export.WriteCSV(&sb, nil))

	assert.Equal(t, "id,date,kind,account,amount,source,category,tags,note\n", sb.String())
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "ledger-20240115.csv", export.Filename(now))
}
