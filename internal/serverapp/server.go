package serverapp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AabiaAli/Evora/internal/auth"
	"github.com/AabiaAli/Evora/internal/config"
	"github.com/AabiaAli/Evora/internal/httpmw"
	"github.com/AabiaAli/Evora/internal/mood"
	"github.com/AabiaAli/Evora/internal/notes"
	"github.com/AabiaAli/Evora/internal/pet"
	"github.com/AabiaAli/Evora/internal/pomodoro"
	"github.com/AabiaAli/Evora/internal/progression"
	"github.com/AabiaAli/Evora/internal/server"
	"github.com/AabiaAli/Evora/internal/storage"
	"github.com/AabiaAli/Evora/internal/task"
	staticfiles "github.com/AabiaAli/Evora/static"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
	Clock         progression.Clock
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Data.Dir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = progression.RealClock{}
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "evora",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	authRepo, err := auth.NewFileRepo(filepath.Join(opts.DataDir, "auth"))
	if err != nil {
		return nil, err
	}
	authService := auth.NewService(authRepo, opts.Logger)
	logSecurityHints(opts.Logger)
	authHandler := auth.NewHandler(authService)
	server.Handle(mux, rr, "POST /api/auth/signup", "Register and open a session", `{"email":"you@example.com","password":"..."}`, authHandler.Signup)
	server.Handle(mux, rr, "POST /api/auth/login", "Log in with email and password", `{"email":"you@example.com","password":"..."}`, authHandler.Login)
	server.Handle(mux, rr, "GET /api/auth/session", "Inspect the current session", "", authHandler.Session)
	server.Handle(mux, rr, "POST /api/auth/logout", "Revoke the current session", "", authHandler.Logout)

	// One progression engine per user; everything below reports into it.
	rewards := config.RewardsFromEnv(opts.Config.Rewards)
	registry := progression.NewRegistry(rewards, opts.Clock)

	var eventsDB *sql.DB
	if path := strings.TrimSpace(opts.Config.Data.EventsDB); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.DataDir, path)
		}
		eventsDB, err = storage.OpenSQLite(context.Background(), path)
		if err != nil {
			return nil, fmt.Errorf("open events db: %w", err)
		}
		eventStore := storage.NewEventStore(eventsDB)
		if err := restoreEngines(registry, eventStore, rewards, opts.Clock, opts.Logger); err != nil {
			return nil, err
		}
		registry.SetEventSink(func(userID string, ev progression.Event) {
			if err := eventStore.Append(context.Background(), userID, ev); err != nil {
				opts.Logger.Printf(`{"level":"error","msg":"event_persist_failed","user":%q,"error":%q}`, userID, err.Error())
			}
		})
	}

	api := func(h http.HandlerFunc) http.HandlerFunc {
		return authService.RequireAPI(h).ServeHTTP
	}
	app := server.NewApp(registry, opts.Clock)
	server.Handle(mux, rr, "GET /api/progression/state", "Derived counters, streaks and level", "", api(app.State))
	server.Handle(mux, rr, "GET /api/progression/achievements", "Badge catalog with unlock status", "", api(app.Achievements))
	server.Handle(mux, rr, "GET /api/progression/events", "Raw event ledger", "", api(app.Events))
	server.Handle(mux, rr, "GET /api/progression/stats/daily", "Per-day activity counts", "", api(app.StatsDaily))
	server.Handle(mux, rr, "GET /api/progression/stats/weekly", "Trailing seven day summary", "", api(app.StatsWeekly))
	server.Handle(mux, rr, "GET /api/wardrobe", "Catalog, inventory and coin balance", "", api(app.Wardrobe))
	server.Handle(mux, rr, "POST /api/wardrobe/purchase", "Buy a wardrobe item", `{"itemId":"crown"}`, api(app.Purchase))
	server.Handle(mux, rr, "POST /api/wardrobe/equip", "Toggle an owned item in its slot", `{"itemId":"crown"}`, api(app.Equip))

	engineResolver := func(r *http.Request) *progression.Engine {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return registry.ForUser("")
		}
		return registry.ForUser(u.ID)
	}

	taskRepo := task.NewMemoryRepo()
	taskHandler := task.NewHandler(taskRepo)
	taskHandler.SetRepoResolver(func(r *http.Request) task.Repo {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return taskRepo
		}
		return taskRepo.ForUser(u.ID)
	})
	taskHandler.SetEngineResolver(engineResolver)
	server.Handle(mux, rr, "GET /api/tasks", "List tasks, filter by status and priority", "", api(taskHandler.TasksRoot))
	server.Handle(mux, rr, "POST /api/tasks", "Create a task", `{"title":"water the plants","priority":"low"}`, api(taskHandler.TasksRoot))
	server.Handle(mux, rr, "GET /api/tasks/{id}", "Fetch one task", "", api(taskHandler.TaskByID))
	server.Handle(mux, rr, "PATCH /api/tasks/{id}", "Partially update a task", `{"priority":"high"}`, api(taskHandler.TaskByID))
	server.Handle(mux, rr, "DELETE /api/tasks/{id}", "Delete a task", "", api(taskHandler.TaskByID))
	server.Handle(mux, rr, "POST /api/tasks/{id}/complete", "Complete a task, earning xp and coins", "", api(taskHandler.TaskByID))
	server.Handle(mux, rr, "POST /api/tasks/{id}/reopen", "Reopen a completed task", "", api(taskHandler.TaskByID))

	petRepo := pet.NewMemoryRepo(opts.Config.Pet)
	petResolver := func(r *http.Request) *pet.MemoryRepo {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return petRepo
		}
		return petRepo.ForUser(u.ID)
	}
	petHandler := pet.NewHandler(petRepo)
	petHandler.SetRepoResolver(petResolver)
	petHandler.SetEngineResolver(engineResolver)
	petHandler.SetNowFunc(opts.Clock.Now)
	server.Handle(mux, rr, "GET /api/pet", "Companion state with level and cosmetics", "", api(petHandler.PetRoot))
	server.Handle(mux, rr, "PUT /api/pet", "Adopt a different pet or rename it", `{"type":"ember"}`, api(petHandler.PetRoot))

	pomodoroRepo := pomodoro.NewMemoryRepo()
	pomodoroHandler := pomodoro.NewHandler(opts.Config.Pomodoro, pomodoroRepo)
	pomodoroHandler.SetRepoResolver(func(r *http.Request) *pomodoro.MemoryRepo {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return pomodoroRepo
		}
		return pomodoroRepo.ForUser(u.ID)
	})
	pomodoroHandler.SetEngineResolver(engineResolver)
	pomodoroHandler.SetPetResolver(petResolver)
	pomodoroHandler.SetNowFunc(opts.Clock.Now)
	server.Handle(mux, rr, "GET /api/pomodoro/sessions", "List timer sessions", "", api(pomodoroHandler.SessionsRoot))
	server.Handle(mux, rr, "POST /api/pomodoro/sessions", "Start a timer session", `{"mode":"focus"}`, api(pomodoroHandler.SessionsRoot))
	server.Handle(mux, rr, "POST /api/pomodoro/sessions/{id}/finish", "Finish a session; focus sessions pay out", "", api(pomodoroHandler.SessionByID))
	server.Handle(mux, rr, "POST /api/pomodoro/sessions/{id}/abandon", "Abandon an unfinished session", "", api(pomodoroHandler.SessionByID))

	moodRepo := mood.NewMemoryRepo()
	moodHandler := mood.NewHandler(moodRepo)
	moodHandler.SetRepoResolver(func(r *http.Request) *mood.MemoryRepo {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return moodRepo
		}
		return moodRepo.ForUser(u.ID)
	})
	moodHandler.SetEngineResolver(engineResolver)
	moodHandler.SetNowFunc(opts.Clock.Now)
	server.Handle(mux, rr, "GET /api/mood", "Mood history, one entry per day", "", api(moodHandler.MoodRoot))
	server.Handle(mux, rr, "POST /api/mood", "Log today's mood, 1 to 5", `{"rating":4,"note":"good day"}`, api(moodHandler.MoodRoot))

	notesRepo := notes.NewMemoryRepo()
	notesHandler := notes.NewHandler(notesRepo)
	notesHandler.SetRepoResolver(func(r *http.Request) *notes.MemoryRepo {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			return notesRepo
		}
		return notesRepo.ForUser(u.ID)
	})
	notesHandler.SetEngineResolver(engineResolver)
	server.Handle(mux, rr, "GET /api/notes", "List sticky notes, newest first", "", api(notesHandler.NotesRoot))
	server.Handle(mux, rr, "POST /api/notes", "Create a sticky note", `{"text":"buy milk","color":"yellow"}`, api(notesHandler.NotesRoot))
	server.Handle(mux, rr, "PATCH /api/notes/{id}", "Edit a sticky note", `{"text":"buy oat milk"}`, api(notesHandler.NoteByID))
	server.Handle(mux, rr, "DELETE /api/notes/{id}", "Delete a sticky note", "", api(notesHandler.NoteByID))

	server.Handle(mux, rr, "GET /api/config", "Effective configuration", "", api(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}))

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if eventsDB != nil {
			if err := eventsDB.PingContext(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"ok":    false,
					"error": "event storage unavailable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "evora",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	server.RegisterAdminUI(mux, rr, strings.TrimPrefix(opts.Config.Server.Addr, ":"))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

// restoreEngines replays the persisted event log into a fresh engine per
// user so counters, unlocks and inventories survive restarts.
func restoreEngines(registry *progression.Registry, store *storage.EventStore, rewards config.Rewards, clock progression.Clock, logger *log.Logger) error {
	ctx := context.Background()
	users, err := store.Users(ctx)
	if err != nil {
		return fmt.Errorf("list event users: %w", err)
	}
	for _, userID := range users {
		events, err := store.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("load events for %s: %w", userID, err)
		}
		engine := progression.NewEngine(rewards, clock)
		if err := engine.Replay(events); err != nil {
			return fmt.Errorf("replay events for %s: %w", userID, err)
		}
		registry.Restore(userID, engine)
		logger.Printf(`{"level":"info","msg":"engine_restored","user":%q,"events":%d}`, userID, len(events))
	}
	return nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("EVORA_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logSecurityHints(logger *log.Logger) {
	if logger == nil {
		return
	}
	env := strings.ToLower(strings.TrimSpace(os.Getenv("EVORA_ENV")))
	cookieSecure := strings.ToLower(strings.TrimSpace(os.Getenv("EVORA_COOKIE_SECURE")))

	if env == "production" || env == "prod" {
		if cookieSecure != "1" && cookieSecure != "true" && cookieSecure != "yes" {
			logger.Printf("[security] EVORA_ENV=%s but EVORA_COOKIE_SECURE is not explicitly true", env)
		}
	}
}
