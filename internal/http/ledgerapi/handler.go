// Package ledgerapi exposes the ledger engine over HTTP.
//
// The handler owns the current ledger snapshot. Reads serve whatever snapshot
// is current; mutations are serialized under a lock and swap in the snapshot
// returned by the service, so the last write always wins and no request ever
// observes a half-applied ledger.
package ledgerapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kakeibo/internal/export"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

type Handler struct {
	svc *ledger.Service

	mu      sync.Mutex
	current ledger.Ledger
}

func NewHandler(svc *ledger.Service, initial ledger.Ledger) *Handler {
	return &Handler{svc: svc, current: initial}
}

func (h *Handler) TransactionRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export", h.export)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) BalanceRoutes(r chi.Router) {
	r.Get("/", h.balances)
}

func (h *Handler) snapshot() ledger.Ledger {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := report.Apply(h.snapshot(), filter)
	txs = report.SortByID(txs, r.URL.Query().Get("order") != "desc")

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.snapshot().Find(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(t))
}

type createTransactionRequest struct {
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Account  string   `json:"account"`
	Amount   int64    `json:"amount"`
	Source   string   `json:"source"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Note     string   `json:"note"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := ledger.Kind(req.Kind)
	if !kind.Valid() {
		http.Error(w, "invalid kind", http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	params := ledger.CreateParams{
		Date:    date,
		Kind:    kind,
		Account: req.Account,
		Amount:  req.Amount,
		Note:    req.Note,
	}

	// Only the kind-appropriate side carries data.
	if kind == ledger.KindIncome {
		params.Source = req.Source
	} else {
		params.Category = req.Category
		params.Tags = req.Tags
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	newID := h.current.NextID()

	next, err := h.svc.Add(r.Context(), h.current, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.current = next

	created, _ := next.Find(newID)
	writeJSON(w, http.StatusCreated, toResponse(created))
}

type updateTransactionRequest struct {
	Date     *string  `json:"date,omitempty"`
	Kind     *string  `json:"kind,omitempty"`
	Account  *string  `json:"account,omitempty"`
	Amount   *int64   `json:"amount,omitempty"`
	Source   *string  `json:"source,omitempty"`
	Category *string  `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Note     *string  `json:"note,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := ledger.UpdateParams{
		Account:  req.Account,
		Amount:   req.Amount,
		Source:   req.Source,
		Category: req.Category,
		Tags:     req.Tags,
		Note:     req.Note,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.Date = &date
	}

	if req.Kind != nil {
		kind := ledger.Kind(*req.Kind)
		if !kind.Valid() {
			http.Error(w, "invalid kind", http.StatusBadRequest)
			return
		}

		params.Kind = &kind
	}

	if req.Amount != nil && *req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.svc.Update(r.Context(), h.current, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.current = next

	t, _ := next.Find(id)
	writeJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.svc.Delete(r.Context(), h.current, id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.current = next

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := report.Apply(h.snapshot(), filter)
	txs = report.SortByID(txs, true)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if err := export.WriteCSV(w, txs); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	accounts, total := report.CurrentBalances(h.snapshot())

	writeJSON(w, http.StatusOK, balancesResponse{Accounts: accounts, Total: total})
}

func filterFromQuery(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()

	filter := report.Filter{
		Accounts: q["account"],
		Text:     q.Get("q"),
	}

	if s := q.Get("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid from date, want YYYY-MM-DD")
		}

		filter.From = &t
	}

	if s := q.Get("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid to date, want YYYY-MM-DD")
		}

		filter.To = &t
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
