package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleHistoryDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	days := intQuery(r, "days", 7)
	points, err := s.svc.History.GetDaily(r.Context(), userFromContext(r).ID, days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":  days,
		"today": localDayString(time.Now()),
		"items": points,
	})
}

func (s *Server) handleHistoryWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := s.svc.History.GetWeekly(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"weekly": snapshot})
}
