// Package export renders a filtered ledger view as a downloadable CSV.
//
// The exported file uses the dataset schema minus the derived balance column,
// so an export of one account or one month is self-contained and does not
// carry running balances that only make sense in the full ledger.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

var header = []string{"id", "date", "kind", "account", "amount", "source", "category", "tags", "note"}

// WriteCSV writes txs to w in export order, header first.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range txs {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.Format(time.DateOnly),
			string(t.Kind),
			t.Account,
			decimal.New(t.Amount, -2).StringFixed(2),
			t.Source,
			t.Category,
			strings.Join(t.Tags, ","),
			t.Note,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", t.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename returns the download name for an export taken at the given time.
func Filename(now time.Time) string {
	return fmt.Sprintf("ledger-%s.csv", now.Format("20060102"))
}
