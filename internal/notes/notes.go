package notes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("note not found")

var colors = map[string]bool{
	"yellow": true,
	"pink":   true,
	"blue":   true,
	"green":  true,
	"purple": true,
	"orange": true,
}

func ValidColor(c string) bool { return colors[c] }

// Note is a sticky note on the board.
type Note struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type store struct {
	mu    sync.RWMutex
	users map[string]map[string]Note
}

// MemoryRepo is a per-user view over a shared in-memory store.
type MemoryRepo struct {
	store  *store
	userID string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: &store{
			users: make(map[string]map[string]Note),
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

func (r *MemoryRepo) notesLocked() map[string]Note {
	ns, ok := r.store.users[r.userID]
	if !ok {
		ns = make(map[string]Note)
		r.store.users[r.userID] = ns
	}
	return ns
}

func (r *MemoryRepo) Create(ctx context.Context, text, color string) (Note, error) {
	_ = ctx

	if color == "" {
		color = "yellow"
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	n := Note{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notesLocked()[n.ID] = n
	return n, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, text, color *string) (Note, error) {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ns := r.notesLocked()
	n, ok := ns[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	if text != nil {
		n.Text = strings.TrimSpace(*text)
	}
	if color != nil {
		n.Color = *color
	}
	n.UpdatedAt = time.Now()
	ns[id] = n
	return n, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ns := r.notesLocked()
	if _, ok := ns[id]; !ok {
		return ErrNotFound
	}
	delete(ns, id)
	return nil
}

// List returns all notes, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Note, error) {
	_ = ctx

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]Note, 0, len(r.store.users[r.userID]))
	for _, n := range r.store.users[r.userID] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
