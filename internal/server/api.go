package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AabiaAli/Evora/internal/auth"
	"github.com/AabiaAli/Evora/internal/progression"
	"github.com/AabiaAli/Evora/internal/wardrobe"
)

// App bundles the per-user progression engines behind the HTTP API.
type App struct {
	Registry *progression.Registry
	Clock    progression.Clock
}

func NewApp(registry *progression.Registry, clock progression.Clock) *App {
	if clock == nil {
		clock = progression.RealClock{}
	}
	return &App{Registry: registry, Clock: clock}
}

func (a *App) engineFor(r *http.Request) *progression.Engine {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		return a.Registry.ForUser("")
	}
	return a.Registry.ForUser(u.ID)
}

func (a *App) today() progression.Day {
	return progression.DayOf(a.Clock.Now())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONCode(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIErr(w http.ResponseWriter, code int, msg string) {
	writeJSONCode(w, code, map[string]any{"error": msg})
}

// GET /api/progression/state
func (a *App) State(w http.ResponseWriter, r *http.Request) {
	engine := a.engineFor(r)
	writeJSON(w, map[string]any{
		"state": engine.State(),
		"level": engine.Level(),
	})
}

// GET /api/progression/achievements
func (a *App) Achievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.engineFor(r).Achievements())
}

// GET /api/progression/events
func (a *App) Events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.engineFor(r).Events())
}

// GET /api/progression/stats/daily?from=YYYY-MM-DD&to=YYYY-MM-DD
func (a *App) StatsDaily(w http.ResponseWriter, r *http.Request) {
	engine := a.engineFor(r)

	to := progression.Day(r.URL.Query().Get("to"))
	if to == "" {
		to = a.today()
	}
	from := progression.Day(r.URL.Query().Get("from"))
	if from == "" {
		from = to.Add(-6)
	}
	if !from.Valid() || !to.Valid() || from > to {
		writeAPIErr(w, 400, "from and to must be YYYY-MM-DD with from <= to")
		return
	}
	writeJSON(w, progression.CalculateDailyStats(engine.Events(), from, to))
}

// GET /api/progression/stats/weekly
func (a *App) StatsWeekly(w http.ResponseWriter, r *http.Request) {
	engine := a.engineFor(r)
	writeJSON(w, progression.CalculateWeekly(engine.Events(), a.today()))
}

// GET /api/wardrobe
func (a *App) Wardrobe(w http.ResponseWriter, r *http.Request) {
	engine := a.engineFor(r)
	writeJSON(w, map[string]any{
		"catalog":   engine.Catalog(),
		"inventory": engine.Inventory(),
		"coins":     engine.State().Coins,
	})
}

// POST /api/wardrobe/purchase
func (a *App) Purchase(w http.ResponseWriter, r *http.Request) {
	a.wardrobeAction(w, r, func(engine *progression.Engine, itemID string) (progression.Result, error) {
		return engine.PurchaseItem(itemID)
	})
}

// POST /api/wardrobe/equip
func (a *App) Equip(w http.ResponseWriter, r *http.Request) {
	a.wardrobeAction(w, r, func(engine *progression.Engine, itemID string) (progression.Result, error) {
		return engine.EquipItem(itemID)
	})
}

func (a *App) wardrobeAction(w http.ResponseWriter, r *http.Request, fn func(*progression.Engine, string) (progression.Result, error)) {
	var in struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeAPIErr(w, 400, "bad json")
		return
	}
	if in.ItemID == "" {
		writeAPIErr(w, 400, "itemId required")
		return
	}

	engine := a.engineFor(r)
	result, err := fn(engine, in.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, wardrobe.ErrUnknownItem):
			writeAPIErr(w, 404, err.Error())
		case errors.Is(err, wardrobe.ErrInsufficientFunds),
			errors.Is(err, wardrobe.ErrAlreadyOwned),
			errors.Is(err, wardrobe.ErrNotOwned):
			writeAPIErr(w, 409, err.Error())
		default:
			writeAPIErr(w, 500, err.Error())
		}
		return
	}
	writeJSON(w, map[string]any{
		"result":    result,
		"inventory": engine.Inventory(),
	})
}
