package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AabiaAli/Evora/internal/config"
	"github.com/AabiaAli/Evora/internal/progression"
)

func TestUpsertReplacesSameDay(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "2025-09-04", 3, "meh")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "2025-09-04", 5, "turned around")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "2025-09-03", 2, "")
	require.NoError(t, err)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-09-03", entries[0].Day)
	assert.Equal(t, 5, entries[1].Rating, "later log wins the day")

	_, err = repo.Get(ctx, "2025-09-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newTestServer(t *testing.T) (*httptest.Server, *progression.Engine) {
	t.Helper()

	clock := progression.NewFakeClock(time.Date(2025, 9, 4, 12, 0, 0, 0, time.Local))
	engine := progression.NewEngine(config.DefaultRewards(), clock)

	h := NewHandler(NewMemoryRepo())
	h.SetEngineResolver(func(*http.Request) *progression.Engine { return engine })
	h.SetNowFunc(clock.Now)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/mood", h.MoodRoot)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, engine
}

func TestLogMoodPaysOncePerDay(t *testing.T) {
	srv, engine := newTestServer(t)

	post := func(rating int) *http.Response {
		b, _ := json.Marshal(map[string]any{"rating": rating})
		resp, err := http.Post(srv.URL+"/api/mood", "application/json", bytes.NewReader(b))
		require.NoError(t, err)
		return resp
	}

	resp := post(4)
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()
	coinsAfterFirst := engine.State().Coins
	assert.Equal(t, 1, engine.State().MoodEntries)

	resp = post(2)
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 1, engine.State().MoodEntries, "re-log replaces, never double counts")
	assert.Equal(t, coinsAfterFirst, engine.State().Coins, "re-log pays nothing")

	resp = post(9)
	assert.Equal(t, 400, resp.StatusCode)
	resp.Body.Close()
}
