package mood

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("no mood entry for that day")

// Entry is the mood recorded for one calendar day. Logging twice on the
// same day overwrites; history keeps the latest entry per day.
type Entry struct {
	Day    string `json:"day"`
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

type store struct {
	mu    sync.RWMutex
	users map[string]map[string]Entry
}

// MemoryRepo is a per-user view over a shared in-memory store.
type MemoryRepo struct {
	store  *store
	userID string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: &store{
			users: make(map[string]map[string]Entry),
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

// Upsert stores the entry for its day, replacing any earlier one.
func (r *MemoryRepo) Upsert(ctx context.Context, day string, rating int, note string) (Entry, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, ok := r.store.users[r.userID]
	if !ok {
		entries = make(map[string]Entry)
		r.store.users[r.userID] = entries
	}
	e := Entry{
		Day:       day,
		Rating:    rating,
		Note:      strings.TrimSpace(note),
		UpdatedAt: time.Now(),
	}
	entries[day] = e
	return e, nil
}

func (r *MemoryRepo) Get(ctx context.Context, day string) (Entry, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.users[r.userID][day]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// List returns all entries ordered by day, oldest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Entry, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]Entry, 0, len(r.store.users[r.userID]))
	for _, e := range r.store.users[r.userID] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
