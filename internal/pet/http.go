package pet

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AabiaAli/Evora/internal/progression"
)

var ErrUnknownType = errors.New("unknown pet type")

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

func (h *Handler) today() string {
	return h.now().Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/pet
func (h *Handler) PetRoot(w http.ResponseWriter, r *http.Request) {
	repo := h.repoForRequest(r)

	switch r.Method {
	case http.MethodGet:
		p, err := repo.Get(r.Context(), h.today())
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		resp := map[string]any{"pet": p, "types": Types()}
		// The companion view shows level and equipped cosmetics too.
		if h.engineResolver != nil {
			if engine := h.engineResolver(r); engine != nil {
				resp["level"] = engine.Level()
				resp["equipped"] = engine.Inventory().Equipped
			}
		}
		writeJSON(w, 200, resp)

	case http.MethodPut:
		var in struct {
			Type Type   `json:"type"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		var p Pet
		var err error
		switch {
		case in.Type != "":
			p, err = repo.SetType(r.Context(), in.Type, h.today())
			if err == nil && in.Name != "" {
				p, err = repo.Rename(r.Context(), in.Name, h.today())
			}
		case in.Name != "":
			p, err = repo.Rename(r.Context(), in.Name, h.today())
		default:
			writeErr(w, 400, "type or name required")
			return
		}
		if errors.Is(err, ErrUnknownType) {
			writeErr(w, 400, "unknown pet type")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, p)

	default:
		writeErr(w, 405, "method not allowed")
	}
}
