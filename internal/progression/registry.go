package progression

import (
	"sort"
	"strings"
	"sync"

	"github.com/AabiaAli/Evora/internal/config"
)

// Registry hands out one engine per user. Each engine is its own
// single-writer boundary, so independent users never contend.
type Registry struct {
	mu      sync.Mutex
	rewards config.Rewards
	clock   Clock
	engines map[string]*Engine
	sink    func(userID string, ev Event)
}

// SetEventSink installs a per-user recorder applied to every engine the
// registry hands out, existing and future.
func (r *Registry) SetEventSink(fn func(userID string, ev Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = fn
	for id, e := range r.engines {
		e.SetRecorder(r.recorderFor(id))
	}
}

func (r *Registry) recorderFor(userID string) func(Event) {
	if r.sink == nil {
		return nil
	}
	sink := r.sink
	return func(ev Event) { sink(userID, ev) }
}

func NewRegistry(rewards config.Rewards, clock Clock) *Registry {
	if clock == nil {
		clock = RealClock{}
	}
	return &Registry{
		rewards: rewards,
		clock:   clock,
		engines: make(map[string]*Engine),
	}
}

// ForUser returns the engine for the given user, creating it on first
// access.
func (r *Registry) ForUser(userID string) *Engine {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.engines[userID]
	if !ok {
		e = NewEngine(r.rewards, r.clock)
		e.SetRecorder(r.recorderFor(userID))
		r.engines[userID] = e
	}
	return e
}

// Restore installs a replayed engine for a user, used when loading a
// persisted event log on boot. It overwrites any existing engine.
func (r *Registry) Restore(userID string, e *Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.SetRecorder(r.recorderFor(userID))
	r.engines[userID] = e
}

// UserIDs lists users with an engine, sorted for determinism.
func (r *Registry) UserIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.engines))
	for id := range r.engines {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
