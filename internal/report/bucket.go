package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

// Granularity selects the time-bucket width for period aggregations.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return g, nil
	default:
		return "", fmt.Errorf("%w: unknown granularity %q", ledger.ErrInvalidArgument, s)
	}
}

// PeriodKey formats the bucket key a date falls into: "2024-01-15" for days,
// "2024-W03" for ISO weeks, "2024-01" for months, "2024" for years.
func (g Granularity) PeriodKey(t time.Time) string {
	switch g {
	case GranularityDay:
		return t.Format(time.DateOnly)
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006")
	}
}

// Flow is the income/expense/net summary of one time bucket, in cents.
type Flow struct {
	Income  int64
	Expense int64
	Net     int64
}

// BucketByTime groups transactions into periods of the given granularity and
// sums income and expense per period. Periods with no transactions are absent
// from the result. Empty input yields an empty map, never an error.
func BucketByTime(txs []ledger.Transaction, g Granularity) (map[string]Flow, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}

	buckets := make(map[string]Flow, 16)

	for _, t := range txs {
		key := g.PeriodKey(t.Date)
		flow := buckets[key]

		if t.Kind == ledger.KindIncome {
			flow.Income += t.Amount
		} else {
			flow.Expense += t.Amount
		}

		flow.Net = flow.Income - flow.Expense
		buckets[key] = flow
	}

	return buckets, nil
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string
	Sum      int64
}

// BucketByCategory sums amounts per category for transactions of the given
// kind. Transactions without a category are excluded. The result is sorted by
// sum descending, ties by category name, so output order is deterministic.
func BucketByCategory(txs []ledger.Transaction, kind ledger.Kind) ([]CategoryTotal, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ledger.ErrInvalidArgument, kind)
	}

	sums := make(map[string]int64, 16)

	for _, t := range txs {
		if t.Kind != kind || t.Category == "" {
			continue
		}

		sums[t.Category] += t.Amount
	}

	out := make([]CategoryTotal, 0, len(sums))
	for category, sum := range sums {
		out = append(out, CategoryTotal{Category: category, Sum: sum})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}

		return out[i].Category < out[j].Category
	})

	return out, nil
}

// TagTotal is one row of a tag breakdown.
type TagTotal struct {
	Tag   string
	Sum   int64
	Count int
}

// BucketByTag explodes each transaction's tag list into one row per tag: a
// transaction with N tags credits its full amount to each of the N buckets
// (fan-out, not a split). kind narrows to one transaction kind; empty means
// both. Buckets seen fewer than minCount times are dropped. Sorted by sum
// descending, ties by tag name.
func BucketByTag(txs []ledger.Transaction, kind ledger.Kind, minCount int) ([]TagTotal, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ledger.ErrInvalidArgument, kind)
	}

	totals := make(map[string]*TagTotal, 16)

	for _, t := range txs {
		if kind != "" && t.Kind != kind {
			continue
		}

		for _, tag := range t.Tags {
			tt, ok := totals[tag]
			if !ok {
				tt = &TagTotal{Tag: tag}
				totals[tag] = tt
			}

			tt.Sum += t.Amount
			tt.Count++
		}
	}

	out := make([]TagTotal, 0, len(totals))

	for _, tt := range totals {
		if tt.Count >= minCount {
			out = append(out, *tt)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}

		return out[i].Tag < out[j].Tag
	})

	return out, nil
}

// TagTimeline sums amounts per period for transactions carrying the given tag.
func TagTimeline(txs []ledger.Transaction, tag string, g Granularity) (map[string]int64, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}

	timeline := make(map[string]int64, 16)

	for _, t := range txs {
		if !hasTag(t, tag) {
			continue
		}

		timeline[g.PeriodKey(t.Date)] += t.Amount
	}

	return timeline, nil
}

func hasTag(t ledger.Transaction, tag string) bool {
	for _, got := range t.Tags {
		if got == tag {
			return true
		}
	}

	return false
}
