package pet

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AabiaAli/Evora/internal/config"
)

type store struct {
	mu   sync.Mutex
	cfg  config.PetConfig
	pets map[string]Pet
}

// MemoryRepo is a per-user view over a shared in-memory store.
type MemoryRepo struct {
	store  *store
	userID string
}

func NewMemoryRepo(cfg config.PetConfig) *MemoryRepo {
	return &MemoryRepo{
		store: &store{
			cfg:  cfg,
			pets: make(map[string]Pet),
		},
		userID: "default",
	}
}

func (r *MemoryRepo) ForUser(userID string) *MemoryRepo {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}
	return &MemoryRepo{store: r.store, userID: userID}
}

// petLocked returns the user's pet with decay applied up to today,
// creating a default pet on first touch.
func (r *MemoryRepo) petLocked(today string) Pet {
	p, ok := r.store.pets[r.userID]
	if !ok {
		p = Pet{
			Type:        TypeLuna,
			Name:        "Luna",
			Happiness:   r.store.cfg.StartHappiness,
			LastSeenDay: today,
		}
		r.store.pets[r.userID] = p
		return p
	}
	if days := daysBetween(p.LastSeenDay, today); days > 0 {
		p.Happiness = clampHappiness(p.Happiness - days*r.store.cfg.DailyHappinessDecay)
		p.LastSeenDay = today
		r.store.pets[r.userID] = p
	}
	return p
}

func (r *MemoryRepo) Get(ctx context.Context, today string) (Pet, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.petLocked(today), nil
}

// SetType adopts a different pet. Happiness and name reset to the
// newcomer's defaults.
func (r *MemoryRepo) SetType(ctx context.Context, t Type, today string) (Pet, error) {
	_ = ctx

	if !t.Valid() {
		return Pet{}, ErrUnknownType
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	name := string(t)
	for _, info := range Types() {
		if info.ID == t {
			name = info.Name
		}
	}
	p := Pet{
		Type:        t,
		Name:        name,
		Happiness:   r.store.cfg.StartHappiness,
		LastSeenDay: today,
	}
	r.store.pets[r.userID] = p
	return p, nil
}

func (r *MemoryRepo) Rename(ctx context.Context, name, today string) (Pet, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.petLocked(today)
	p.Name = strings.TrimSpace(name)
	r.store.pets[r.userID] = p
	return p, nil
}

// Boost raises happiness, typically after a finished focus session.
func (r *MemoryRepo) Boost(ctx context.Context, today string) (Pet, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.petLocked(today)
	p.Happiness = clampHappiness(p.Happiness + r.store.cfg.FocusHappinessBoost)
	r.store.pets[r.userID] = p
	return p, nil
}

func daysBetween(from, to string) int {
	a, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0
	}
	b, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
