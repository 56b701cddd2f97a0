package ledgerapi

import (
	"time"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

// Amounts and balances are cents, matching the domain representation.
type transactionResponse struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Account  string   `json:"account"`
	Amount   int64    `json:"amount"`
	Balance  int64    `json:"balance"`
	Source   string   `json:"source,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Note     string   `json:"note,omitempty"`
}

func toResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Date:     t.Date.Format(time.DateOnly),
		Kind:     string(t.Kind),
		Account:  t.Account,
		Amount:   t.Amount,
		Balance:  t.Balance,
		Source:   t.Source,
		Category: t.Category,
		Tags:     t.Tags,
		Note:     t.Note,
	}
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toResponse(t))
	}

	return out
}

type balancesResponse struct {
	Accounts map[string]int64 `json:"accounts"`
	Total    int64            `json:"total"`
}

type flowResponse struct {
	Period  string `json:"period"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Net     int64  `json:"net"`
}

type categoryResponse struct {
	Category string `json:"category"`
	Sum      int64  `json:"sum"`
}

type tagResponse struct {
	Tag   string `json:"tag"`
	Sum   int64  `json:"sum"`
	Count int    `json:"count"`
}

type timelineResponse struct {
	Period string `json:"period"`
	Sum    int64  `json:"sum"`
}

func toCategoryList(totals []report.CategoryTotal) []categoryResponse {
	out := make([]categoryResponse, 0, len(totals))
	for _, c := range totals {
		out = append(out, categoryResponse{Category: c.Category, Sum: c.Sum})
	}

	return out
}

func toTagList(totals []report.TagTotal) []tagResponse {
	out := make([]tagResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, tagResponse{Tag: t.Tag, Sum: t.Sum, Count: t.Count})
	}

	return out
}
