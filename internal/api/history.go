package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/travelbestbets/travelbot/internal/store"
)

// historyResponse is the pagination envelope the history table expects.
type historyResponse struct {
	Data            []store.TurnRecord `json:"data"`
	RecordsTotal    int                `json:"recordsTotal"`
	RecordsFiltered int                `json:"recordsFiltered"`
}

// history serves a paginated, filterable, sortable view over the persisted
// conversation log. Filter is a substring match on question or answer; sort
// is a comma-separated field list with leading +/- direction; length -1
// disables pagination.
func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filter := params.Get("filter")
	if filter == "" {
		filter = params.Get("search")
	}

	q := store.ListQuery{
		Filter: filter,
		Sort:   store.ParseSort(params.Get("sort")),
		Start:  intParam(params.Get("start"), 0),
		Length: intParam(params.Get("length"), -1),
	}

	records, total, filtered, err := s.store.ListTurns(r.Context(), q)
	if err != nil {
		s.logger.Error("failed to list turns", "error", err)
		http.Error(w, `{"error":"failed to load history"}`, http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.TurnRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(historyResponse{
		Data:            records,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
	})
}

func intParam(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
