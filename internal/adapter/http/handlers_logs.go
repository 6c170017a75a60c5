package adapthttp

import (
	"net/http"
	"strings"
	"time"

	"labelscanner/internal/app"
	"labelscanner/internal/domain"
)

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var entry domain.LogEntry
	if err := parseJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry.ID = ""
	entry.UserID = userFromContext(r).ID

	created, err := s.svc.Logs.Create(r.Context(), entry)
	if err == app.ErrMissingName {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": created})
}

func (s *Server) handleLogsDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = localDayString(time.Now())
	}

	items, err := s.svc.Logs.ListDay(r.Context(), userFromContext(r).ID, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "items": items})
}

func (s *Server) handleLogsUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entry, err := s.svc.Logs.Undo(r.Context(), userFromContext(r).ID)
	if err == app.ErrNothingToUndo {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleLogByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/logs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	user := userFromContext(r)

	switch r.Method {
	case http.MethodPatch:
		var patch app.LogPatch
		if err := parseJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.svc.Logs.Update(r.Context(), user.ID, id, patch)
		if err == app.ErrLogNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodDelete:
		err := s.svc.Logs.Delete(r.Context(), user.ID, id)
		if err == app.ErrLogNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
