package task

import (
	"bytes"
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

func newTestServer(t *testing.T) (*httptest.Server, *progression.Engine) {
	t.Helper()

	clock := progression.NewFakeClock(time.Date(2025, 9, 4, 12, 0, 0, 0, time.Local))
	engine := progression.NewEngine(config.DefaultRewards(), clock)

	h := NewHandler(NewMemoryRepo())
	h.SetEngineResolver(func(*http.Request) *progression.Engine { return engine })

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", h.TasksRoot)
	mux.HandleFunc("/api/tasks/", h.TaskByID)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, engine
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func TestCreateValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "   "})
	assert.Equal(t, 400, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "x", "priority": "urgent"})
	assert.Equal(t, 400, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "x", "dueDate": "tomorrow"})
	assert.Equal(t, 400, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "x", "priority": "high", "dueDate": "2025-09-10"})
	assert.Equal(t, 201, resp.StatusCode)
	resp.Body.Close()
}

func TestCompletePaysExactlyOnce(t *testing.T) {
	srv, engine := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "write report"})
	require.Equal(t, 201, resp.StatusCode)
	var created Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, 200, resp.StatusCode)
	var out struct {
		Task        Task                `json:"task"`
		Progression *progression.Result `json:"progression"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()

	assert.True(t, out.Task.Done)
	require.NotNil(t, out.Progression)
	assert.Equal(t, 1, out.Progression.State.TasksCompleted)

	// Completing again is a no-op for progression. Decode into a fresh
	// struct so the first response cannot mask an omitted key.
	resp = postJSON(t, srv.URL+"/api/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, 200, resp.StatusCode)
	var again struct {
		Task        Task                `json:"task"`
		Progression *progression.Result `json:"progression"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&again))
	resp.Body.Close()
	assert.True(t, again.Task.Done)
	assert.Nil(t, again.Progression)
	assert.Equal(t, 1, engine.State().TasksCompleted)

	// Reopen and complete again: the repo changes but pays again, which
	// is the ledger's problem to count, not the handler's to block.
	resp = postJSON(t, srv.URL+"/api/tasks/"+created.ID+"/reopen", nil)
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()
	resp = postJSON(t, srv.URL+"/api/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 2, engine.State().TasksCompleted)
}

func TestDeleteThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tasks", map[string]any{"title": "ephemeral"})
	require.Equal(t, 201, resp.StatusCode)
	var created Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/tasks/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/tasks/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	resp.Body.Close()
}
