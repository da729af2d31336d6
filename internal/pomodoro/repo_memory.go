package pomodoro

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

type store struct {
	mu    sync.Mutex
	now   func() time.Time
	users map[string]map[string]Session
}

// MemoryRepo is a per-user view over a shared in-memory store.
type MemoryRepo struct {
	store  *store
	userID string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: &store{
			now:   time.Now,
			users: make(map[string]map[string]Session),
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

// SetNowFunc overrides the repo clock. Tests only.
func (r *MemoryRepo) SetNowFunc(now func() time.Time) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.now = now
}

func (r *MemoryRepo) sessionsLocked() map[string]Session {
	ss, ok := r.store.users[r.userID]
	if !ok {
		ss = make(map[string]Session)
		r.store.users[r.userID] = ss
	}
	return ss
}

func (r *MemoryRepo) Start(ctx context.Context, mode Mode, plannedMinutes int) (Session, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s := NewSession(mode, plannedMinutes, r.store.now())
	r.sessionsLocked()[s.ID] = s
	return s, nil
}

// Finish marks a session completed and reports whether the call changed
// anything; finishing twice is a no-op.
func (r *MemoryRepo) Finish(ctx context.Context, id string) (Session, bool, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ss := r.sessionsLocked()
	s, ok := ss[id]
	if !ok {
		return Session{}, false, ErrNotFound
	}
	if s.Completed {
		return s, false, nil
	}
	at := r.store.now()
	s.FinishedAt = &at
	s.Completed = true
	ss[id] = s
	return s, true, nil
}

// Abandon drops an unfinished session. Completed sessions stay.
func (r *MemoryRepo) Abandon(ctx context.Context, id string) error {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ss := r.sessionsLocked()
	s, ok := ss[id]
	if !ok {
		return ErrNotFound
	}
	if s.Completed {
		return errors.New("session already completed")
	}
	delete(ss, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Session, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]Session, 0, len(r.store.users[r.userID]))
	for _, s := range r.store.users[r.userID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}
