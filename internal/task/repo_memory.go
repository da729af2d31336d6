package task

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type store struct {
	mu    sync.RWMutex
	now   func() time.Time
	users map[string]map[string]Task
}

// MemoryRepo is a per-user view over a shared in-memory store. ForUser
// returns a view scoped to another user over the same data.
type MemoryRepo struct {
	store  *store
	userID string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: &store{
			now:   time.Now,
			users: make(map[string]map[string]Task),
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

// SetNowFunc overrides the clock used for "overdue" filtering. Tests only.
func (r *MemoryRepo) SetNowFunc(now func() time.Time) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.now = now
}

func (r *MemoryRepo) tasksLocked() map[string]Task {
	ts, ok := r.store.users[r.userID]
	if !ok {
		ts = make(map[string]Task)
		r.store.users[r.userID] = ts
	}
	return ts
}

func (r *MemoryRepo) Create(ctx context.Context, title string, priority Priority, dueDate string) (Task, error) {
	_ = ctx

	t := NewTask(title, priority)
	t.DueDate = dueDate

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.tasksLocked()[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Task, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.users[r.userID][id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, patch Patch) (Task, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ts := r.tasksLocked()
	t, ok := ts[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	t.touch()
	ts[id] = t
	return t, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	today := r.store.now().Format("2006-01-02")
	out := make([]Task, 0, len(r.store.users[r.userID]))
	for _, t := range r.store.users[r.userID] {
		if !matchStatus(t, filter.Status, today) {
			continue
		}
		if !matchPriority(t, filter.Priority) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) SetDone(ctx context.Context, id string, done bool) (Task, bool, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ts := r.tasksLocked()
	t, ok := ts[id]
	if !ok {
		return Task{}, false, ErrNotFound
	}
	if t.Done == done {
		return t, false, nil
	}
	t.Done = done
	if done {
		at := r.store.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	t.touch()
	ts[id] = t
	return t, true, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ts := r.tasksLocked()
	if _, ok := ts[id]; !ok {
		return ErrNotFound
	}
	delete(ts, id)
	return nil
}

func matchStatus(t Task, status, today string) bool {
	switch strings.TrimSpace(strings.ToLower(status)) {
	case "", "all":
		return true
	case "open":
		return !t.Done
	case "done":
		return t.Done
	case "overdue":
		return t.Overdue(today)
	}
	return true
}

func matchPriority(t Task, priority string) bool {
	p := strings.TrimSpace(strings.ToLower(priority))
	if p == "" || p == "any" {
		return true
	}
	return string(t.Priority) == p
}
