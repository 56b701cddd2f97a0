package ledgerapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

func (h *Handler) ReportRoutes(r chi.Router) {
	r.Get("/time", h.timeReport)
	r.Get("/categories", h.categoryReport)
	r.Get("/tags", h.tagReport)
	r.Get("/tags/{tag}/timeline", h.tagTimeline)
}

func (h *Handler) timeReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	granularity := r.URL.Query().Get("granularity")
	if granularity == "" {
		granularity = string(report.GranularityMonth)
	}

	txs := report.Apply(h.snapshot(), filter)

	buckets, err := report.BucketByTime(txs, report.Granularity(granularity))
	if err != nil {
		writeError(w, err)
		return
	}

	flows := make([]flowResponse, 0, len(buckets))
	for period, flow := range buckets {
		flows = append(flows, flowResponse{
			Period:  period,
			Income:  flow.Income,
			Expense: flow.Expense,
			Net:     flow.Net,
		})
	}

	// Period keys are zero-padded, so a plain string sort is chronological.
	sort.Slice(flows, func(i, j int) bool { return flows[i].Period < flows[j].Period })

	writeJSON(w, http.StatusOK, flows)
}

func (h *Handler) categoryReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = string(ledger.KindExpense)
	}

	txs := report.Apply(h.snapshot(), filter)

	totals, err := report.BucketByCategory(txs, ledger.Kind(kind))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryList(totals))
}

func (h *Handler) tagReport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	minCount := 1

	if s := r.URL.Query().Get("min_count"); s != "" {
		minCount, err = strconv.Atoi(s)
		if err != nil || minCount < 1 {
			http.Error(w, "invalid min_count", http.StatusBadRequest)
			return
		}
	}

	txs := report.Apply(h.snapshot(), filter)

	totals, err := report.BucketByTag(txs, ledger.Kind(r.URL.Query().Get("kind")), minCount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTagList(totals))
}

func (h *Handler) tagTimeline(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	granularity := r.URL.Query().Get("granularity")
	if granularity == "" {
		granularity = string(report.GranularityMonth)
	}

	txs := report.Apply(h.snapshot(), filter)

	timeline, err := report.TagTimeline(txs, chi.URLParam(r, "tag"), report.Granularity(granularity))
	if err != nil {
		writeError(w, err)
		return
	}

	points := make([]timelineResponse, 0, len(timeline))
	for period, sum := range timeline {
		points = append(points, timelineResponse{Period: period, Sum: sum})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })

	writeJSON(w, http.StatusOK, points)
}
