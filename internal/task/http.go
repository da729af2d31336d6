package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AabiaAli/Evora/internal/progression"
)

type Handler struct {
	repo           Repo
	repoResolver   func(*http.Request) Repo
	engineResolver func(*http.Request) *progression.Engine
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) Repo) {
	h.repoResolver = fn
}

func (h *Handler) SetEngineResolver(fn func(*http.Request) *progression.Engine) {
	h.engineResolver = fn
}

func (h *Handler) repoForRequest(r *http.Request) Repo {
	if h.repoResolver != nil {
		if repo := h.repoResolver(r); repo != nil {
			return repo
		}
	}
	return h.repo
}

func (h *Handler) engineForRequest(r *http.Request) *progression.Engine {
	if h.engineResolver == nil {
		return nil
	}
	return h.engineResolver(r)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func validDay(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := ListFilter{
			Status:   q.Get("status"),
			Priority: q.Get("priority"),
		}
		ts, err := repo.List(r.Context(), filter)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, ts)

	case http.MethodPost:
		var in struct {
			Title    string   `json:"title"`
			Priority Priority `json:"priority"`
			DueDate  string   `json:"dueDate"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if strings.TrimSpace(in.Title) == "" {
			writeErr(w, 400, "title required")
			return
		}
		if in.Priority != "" && !in.Priority.Valid() {
			writeErr(w, 400, "priority must be low, medium or high")
			return
		}
		if in.DueDate != "" && !validDay(in.DueDate) {
			writeErr(w, 400, "dueDate must be YYYY-MM-DD")
			return
		}
		t, err := repo.Create(r.Context(), in.Title, in.Priority, in.DueDate)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, t)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/tasks/{id} and /api/tasks/{id}/(complete|reopen)
func (h *Handler) TaskByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, 404, "not found")
		return
	}

	switch action {
	case "":
		h.handleTask(w, r, id)
	case "complete":
		h.handleSetDone(w, r, id, true)
	case "reopen":
		h.handleSetDone(w, r, id, false)
	default:
		writeErr(w, 404, "not found")
	}
}

func (h *Handler) handleTask(w http.ResponseWriter, r *http.Request, id string) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		t, err := repo.Get(r.Context(), id)
		if err != nil {
			writeRepoErr(w, err)
			return
		}
		writeJSON(w, 200, t)

	case http.MethodPatch:
		var p Patch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
			writeErr(w, 400, "title required")
			return
		}
		if p.Priority != nil && !p.Priority.Valid() {
			writeErr(w, 400, "priority must be low, medium or high")
			return
		}
		if p.DueDate != nil && *p.DueDate != "" && !validDay(*p.DueDate) {
			writeErr(w, 400, "dueDate must be YYYY-MM-DD")
			return
		}
		t, err := repo.Update(r.Context(), id, p)
		if err != nil {
			writeRepoErr(w, err)
			return
		}
		writeJSON(w, 200, t)

	case http.MethodDelete:
		if err := repo.Delete(r.Context(), id); err != nil {
			writeRepoErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"deleted": id})

	default:
		writeErr(w, 405, "method not allowed")
	}
}

func (h *Handler) handleSetDone(w http.ResponseWriter, r *http.Request, id string, done bool) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	repo := h.repoForRequest(r)

	t, changed, err := repo.SetDone(r.Context(), id, done)
	if err != nil {
		writeRepoErr(w, err)
		return
	}

	resp := map[string]any{"task": t}
	// Only a fresh completion earns a payout; reopening or completing
	// twice never touches progression.
	if done && changed {
		if engine := h.engineForRequest(r); engine != nil {
			result, err := engine.ReportTaskCompleted(t.ID)
			if err != nil {
				writeErr(w, 500, err.Error())
				return
			}
			resp["progression"] = result
		}
	}
	writeJSON(w, 200, resp)
}

func writeRepoErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeErr(w, 404, "not found")
		return
	}
	writeErr(w, 500, err.Error())
}
