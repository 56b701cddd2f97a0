// Package store persists a ledger as a flat CSV dataset.
//
// The file is the single source of truth: Save overwrites the whole dataset
// on every mutation, and Load never trusts the storage order. Splitting and
// joining the tags column happens here, at the persistence boundary; the rest
// of the system only ever sees []string.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/kakeibo/internal/encoding"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

var header = []string{"id", "date", "kind", "account", "amount", "balance", "source", "category", "tags", "note"}

// Store reads and writes the ledger dataset at a fixed path.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted dataset. A missing file is not an error: an empty
// dataset with the standard header is created and an empty ledger returned.
// A file that exists but does not parse into the transaction schema fails
// with ledger.ErrCorruptData.
//
// The returned ledger is sorted ascending by id so display order never
// depends on storage order.
func (s *Store) Load(ctx context.Context) (ledger.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.init(); err != nil {
			return nil, fmt.Errorf("initializing dataset: %w", err)
		}

		return ledger.Ledger{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	l, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	sort.Slice(l, func(i, j int) bool { return l[i].ID < l[j].ID })

	return l, nil
}

// Save overwrites the dataset with the given snapshot. The write goes to a
// temp file in the same directory which is then renamed over the target, so a
// concurrent Load sees either the old or the new dataset, never a partial one.
func (s *Store) Save(ctx context.Context, l ledger.Ledger) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if err := write(tmp, l); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("writing dataset: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing dataset: %w", err)
	}

	return nil
}

func (s *Store) init() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	w.Flush()

	return w.Error()
}

func write(w io.Writer, l ledger.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range l {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.Format(time.DateOnly),
			string(t.Kind),
			t.Account,
			formatCents(t.Amount),
			formatCents(t.Balance),
			t.Source,
			t.Category,
			strings.Join(t.Tags, ","),
			t.Note,
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// colIndex maps header column names to their position in a row.
type colIndex map[string]int

func parse(r io.Reader) (ledger.Ledger, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrCorruptData, err)
	}

	if len(rows) == 0 {
		return ledger.Ledger{}, nil
	}

	cols, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	l := make(ledger.Ledger, 0, len(rows)-1)

	for i, row := range rows[1:] {
		t, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		l = append(l, t)
	}

	return l, nil
}

func indexHeader(row []string) (colIndex, error) {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, name := range header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ledger.ErrCorruptData, name)
		}
	}

	return cols, nil
}

func parseRow(cols colIndex, row []string) (ledger.Transaction, error) {
	var t ledger.Transaction

	id, err := strconv.ParseInt(cell(row, cols["id"]), 10, 64)
	if err != nil {
		return t, fmt.Errorf("%w: bad id %q", ledger.ErrCorruptData, cell(row, cols["id"]))
	}

	date, err := time.Parse(time.DateOnly, cell(row, cols["date"]))
	if err != nil {
		return t, fmt.Errorf("%w: bad date %q", ledger.ErrCorruptData, cell(row, cols["date"]))
	}

	kind := ledger.Kind(cell(row, cols["kind"]))
	if !kind.Valid() {
		return t, fmt.Errorf("%w: bad kind %q", ledger.ErrCorruptData, cell(row, cols["kind"]))
	}

	amount, err := parseCents(cell(row, cols["amount"]))
	if err != nil {
		return t, fmt.Errorf("%w: bad amount %q", ledger.ErrCorruptData, cell(row, cols["amount"]))
	}

	// The balance column is derived and recomputed after load; a blank cell
	// (hand-added row) is fine.
	var balance int64
	if s := cell(row, cols["balance"]); s != "" {
		balance, err = parseCents(s)
		if err != nil {
			return t, fmt.Errorf("%w: bad balance %q", ledger.ErrCorruptData, s)
		}
	}

	t = ledger.Transaction{
		ID:       id,
		Date:     date,
		Kind:     kind,
		Account:  cell(row, cols["account"]),
		Amount:   amount,
		Balance:  balance,
		Source:   cell(row, cols["source"]),
		Category: cell(row, cols["category"]),
		Tags:     SplitTags(cell(row, cols["tags"])),
		Note:     cell(row, cols["note"]),
	}

	return t, nil
}

// SplitTags splits a stored tag string on commas and whitespace, trimming
// each tag and dropping empties. Historical datasets used both separators.
func SplitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || unicode.IsSpace(r)
	})

	tags := make([]string, 0, len(fields))

	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tags = append(tags, f)
		}
	}

	if len(tags) == 0 {
		return nil
	}

	return tags
}

func parseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
