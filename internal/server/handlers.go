package server

import (
	"net/http"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

// handleListVisible returns the filtered and sorted list.
func (s *Server) handleListVisible(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Visible())
}

// handleListAll returns every task in insertion order.
func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Tasks())
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[DraftRequest](w, r)
	if !ok {
		return
	}
	d, violations := req.Draft()
	if len(violations) > 0 {
		writeViolations(w, violations)
		return
	}
	t := s.store.AddTask(d)
	s.log.Info("task created", "id", t.ID)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Task(taskID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	req, ok := readJSON[DraftRequest](w, r)
	if !ok {
		return
	}
	d, violations := req.Draft()
	if len(violations) > 0 {
		writeViolations(w, violations)
		return
	}
	if err := s.store.EditTask(id, d); err != nil {
		writeStoreError(w, err)
		return
	}
	s.handleGetTask(w, r)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(taskID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[StatusRequest](w, r)
	if !ok {
		return
	}
	st, err := models.ParseStatus(req.Status)
	if err != nil {
		writeViolations(w, []models.Violation{{
			Code: models.ViolationInvalidStatus, Field: "status",
			Message: "Status must be pending, in_progress or completed",
		}})
		return
	}
	if err := s.store.SetTaskStatus(taskID(r), st); err != nil {
		writeStoreError(w, err)
		return
	}
	s.handleGetTask(w, r)
}

func (s *Server) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: s.store.MarkAllCompleted()})
}

func (s *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: s.store.ClearCompleted()})
}

func (s *Server) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Query())
}

// handleUpdateQuery applies the fields present in the body. Every field is
// parsed before any is applied, so a bad value changes nothing.
func (s *Server) handleUpdateQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[QueryRequest](w, r)
	if !ok {
		return
	}

	var apply []func()
	if req.Search != nil {
		text := *req.Search
		apply = append(apply, func() { s.store.SetSearchQuery(text) })
	}
	if req.Status != nil {
		f, err := query.ParseStatusFilter(*req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		apply = append(apply, func() { s.store.SetStatusFilter(f) })
	}
	if req.Priority != nil {
		f, err := query.ParsePriorityFilter(*req.Priority)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		apply = append(apply, func() { s.store.SetPriorityFilter(f) })
	}
	if req.SortBy != nil {
		k, err := query.ParseSortKey(*req.SortBy)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		apply = append(apply, func() { s.store.SetSortBy(k) })
	}
	if req.Order != nil {
		o, err := query.ParseSortOrder(*req.Order)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		apply = append(apply, func() { s.store.SetSortOrder(o) })
	}

	for _, fn := range apply {
		fn()
	}
	writeJSON(w, http.StatusOK, s.store.Query())
}

func (s *Server) handleResetQuery(w http.ResponseWriter, r *http.Request) {
	s.store.ResetFilters()
	writeJSON(w, http.StatusOK, s.store.Query())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Statistics())
}

// handleState returns tasks, visible list, statistics, query and appearance
// taken at one version.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleToggleAppearance(w http.ResponseWriter, r *http.Request) {
	dark, err := s.store.ToggleDarkMode(r.Context())
	if err != nil {
		s.log.Warn("persist theme", "error", err)
	}
	writeJSON(w, http.StatusOK, appearanceResponse{DarkMode: dark, Persisted: err == nil})
}
