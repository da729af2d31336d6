package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AabiaAli/Evora/internal/progression"
)

type Handler struct {
	repo           *MemoryRepo
	repoResolver   func(*http.Request) *MemoryRepo
	engineResolver func(*http.Request) *progression.Engine
	now            func() time.Time
}

func NewHandler(repo *MemoryRepo) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) *MemoryRepo) {
	h.repoResolver = fn
}

func (h *Handler) SetEngineResolver(fn func(*http.Request) *progression.Engine) {
	h.engineResolver = fn
}

func (h *Handler) SetNowFunc(now func() time.Time) { h.now = now }

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

// /api/mood  (GET history, POST log today's mood)
func (h *Handler) MoodRoot(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		entries, err := repo.List(r.Context())
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, entries)

	case http.MethodPost:
		var in struct {
			Rating int    `json:"rating"`
			Note   string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}

		day := h.now().Format("2006-01-02")
		resp := map[string]any{}

		// The engine validates the rating and guards the once-per-day
		// payout, so it goes first.
		if h.engineResolver != nil {
			if engine := h.engineResolver(r); engine != nil {
				result, err := engine.ReportMoodLogged(in.Rating, in.Note)
				if err != nil {
					if errors.Is(err, progression.ErrInvalidMoodRating) {
						writeErr(w, 400, "rating must be between 1 and 5")
						return
					}
					writeErr(w, 500, err.Error())
					return
				}
				resp["progression"] = result
			}
		}
		if in.Rating < 1 || in.Rating > 5 {
			writeErr(w, 400, "rating must be between 1 and 5")
			return
		}

		e, err := repo.Upsert(r.Context(), day, in.Rating, in.Note)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		resp["entry"] = e
		writeJSON(w, 200, resp)

	default:
		writeErr(w, 405, "method not allowed")
	}
}
