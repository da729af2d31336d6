package pomodoro

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AabiaAli/Evora/internal/config"
	"github.com/AabiaAli/Evora/internal/pet"
	"github.com/AabiaAli/Evora/internal/progression"
)

type Handler struct {
	cfg            config.PomodoroConfig
	repo           *MemoryRepo
	repoResolver   func(*http.Request) *MemoryRepo
	engineResolver func(*http.Request) *progression.Engine
	petResolver    func(*http.Request) *pet.MemoryRepo
	now            func() time.Time
}

func NewHandler(cfg config.PomodoroConfig, repo *MemoryRepo) *Handler {
	return &Handler{cfg: cfg, repo: repo, now: time.Now}
}

func (h *Handler) SetRepoResolver(fn func(*http.Request) *MemoryRepo) {
	h.repoResolver = fn
}

func (h *Handler) SetEngineResolver(fn func(*http.Request) *progression.Engine) {
	h.engineResolver = fn
}

func (h *Handler) SetPetResolver(fn func(*http.Request) *pet.MemoryRepo) {
	h.petResolver = fn
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

// /api/pomodoro/sessions  (collection)
func (h *Handler) SessionsRoot(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		ss, err := repo.List(r.Context())
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, ss)

	case http.MethodPost:
		var in struct {
			Mode    Mode `json:"mode"`
			Minutes int  `json:"minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if in.Mode == "" {
			in.Mode = ModeFocus
		}
		if !in.Mode.Valid() {
			writeErr(w, 400, "mode must be focus, short_break or long_break")
			return
		}
		minutes := in.Minutes
		if minutes == 0 {
			minutes = in.Mode.PlannedMinutes(h.cfg)
		}
		if minutes <= 0 {
			writeErr(w, 400, "minutes must be positive")
			return
		}
		s, err := repo.Start(r.Context(), in.Mode, minutes)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, s)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/pomodoro/sessions/{id}/(finish|abandon)
func (h *Handler) SessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/pomodoro/sessions/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, 404, "not found")
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}

	repo := h.repoForRequest(r)

	switch action {
	case "finish":
		s, changed, err := repo.Finish(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			writeErr(w, 500, err.Error())
			return
		}
		resp := map[string]any{"session": s}
		// Breaks are rest, not work: only a freshly finished focus
		// session earns a payout and cheers the pet up.
		if changed && s.Mode == ModeFocus {
			if h.engineResolver != nil {
				if engine := h.engineResolver(r); engine != nil {
					result, err := engine.ReportPomodoroFinished(s.PlannedMinutes)
					if err != nil {
						writeErr(w, 500, err.Error())
						return
					}
					resp["progression"] = result
				}
			}
			if h.petResolver != nil {
				if pets := h.petResolver(r); pets != nil {
					today := h.now().Format("2006-01-02")
					if p, err := pets.Boost(r.Context(), today); err == nil {
						resp["pet"] = p
					}
				}
			}
		}
		writeJSON(w, 200, resp)

	case "abandon":
		if err := repo.Abandon(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeErr(w, 404, "not found")
				return
			}
			writeErr(w, 400, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"abandoned": id})

	default:
		writeErr(w, 404, "not found")
	}
}
