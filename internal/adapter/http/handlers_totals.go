package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleTotalsDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = localDayString(time.Now())
	}

	totals, err := s.svc.Totals.ForDate(r.Context(), userFromContext(r).ID, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "totals": totals})
}

func (s *Server) handleTotalsRecalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Timestamp int64 `json:"timestamp"`
	}
	// Empty body means recompute today.
	_ = parseJSON(r, &body)
	if body.Timestamp == 0 {
		body.Timestamp = time.Now().UnixMilli()
	}

	totals, err := s.svc.Totals.Recalculate(r.Context(), userFromContext(r).ID, body.Timestamp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"totals": totals})
}
