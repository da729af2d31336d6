package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AabiaAli/Evora/internal/progression"
)

type Handler struct {
	repo           *MemoryRepo
	repoResolver   func(*http.Request) *MemoryRepo
	engineResolver func(*http.Request) *progression.Engine
}

func NewHandler(repo *MemoryRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) *MemoryRepo) {
	h.repoResolver = fn
}

func (h *Handler) SetEngineResolver(fn func(*http.Request) *progression.Engine) {
	h.engineResolver = fn
}

func (h *Handler) repoForRequest(r *http.Request) *MemoryRepo {
	if h.repoResolver != nil {
		if repo := h.repoResolver(r); repo != nil {
			return repo
		}
	}
	return h.repo
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/notes  (collection)
func (h *Handler) NotesRoot(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		ns, err := repo.List(r.Context())
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, ns)

	case http.MethodPost:
		var in struct {
			Text  string `json:"text"`
			Color string `json:"color"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if strings.TrimSpace(in.Text) == "" {
			writeErr(w, 400, "text required")
			return
		}
		if in.Color != "" && !ValidColor(in.Color) {
			writeErr(w, 400, "unknown color")
			return
		}
		n, err := repo.Create(r.Context(), in.Text, in.Color)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		resp := map[string]any{"note": n}
		if h.engineResolver != nil {
			if engine := h.engineResolver(r); engine != nil {
				result, err := engine.ReportNoteCreated(n.ID)
				if err != nil {
					writeErr(w, 500, err.Error())
					return
				}
				resp["progression"] = result
			}
		}
		writeJSON(w, 201, resp)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/notes/{id}
func (h *Handler) NoteByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, 404, "not found")
		return
	}
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodPatch:
		var in struct {
			Text  *string `json:"text"`
			Color *string `json:"color"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
			writeErr(w, 400, "text required")
			return
		}
		if in.Color != nil && !ValidColor(*in.Color) {
			writeErr(w, 400, "unknown color")
			return
		}
		n, err := repo.Update(r.Context(), id, in.Text, in.Color)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, n)

	case http.MethodDelete:
		if err := repo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"deleted": id})

	default:
		writeErr(w, 405, "method not allowed")
	}
}
