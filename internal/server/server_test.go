package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/database/memory"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/handler"
	"github.com/osse101/FarmBot_Go/internal/sse"
)

const testKey = "dispatcher-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	store := memory.NewStore()
	mgr := farm.NewManager(store, c, nil, nil, nil, farm.Config{})
	return NewRouter(Options{APIKey: testKey}, store, c, mgr)
}

func call(h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set(HeaderAPIKey, testKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := call(r, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := call(r, http.MethodGet, "/version", "", false)
	var info map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.NotEmpty(t, info["catalog_digest"])
}

func TestRouter_FarmRequiresAPIKey(t *testing.T) {
	r := newTestRouter(t)

	rec := call(r, http.MethodPost, "/api/v1/farm/register", `{"uid":"u1"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(r, http.MethodPost, "/api/v1/farm/register", `{"uid":"u1","name":"Ann"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var reg farm.RegisterResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, domain.OutcomeOK, reg.Outcome)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestRouter_FarmRoutes(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/farm/register", `{"uid":"u1"}`, true).Code)

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/farm/status?uid=u1", ""},
		{http.MethodGet, "/api/v1/farm/balance?uid=u1", ""},
		{http.MethodGet, "/api/v1/farm/shop", ""},
		{http.MethodGet, "/api/v1/farm/seeds?uid=u1", ""},
		{http.MethodGet, "/api/v1/farm/crops?uid=u1", ""},
		{http.MethodPost, "/api/v1/farm/harvest", `{"uid":"u1"}`},
		{http.MethodPost, "/api/v1/farm/eradicate", `{"uid":"u1"}`},
		{http.MethodPost, "/api/v1/farm/till", `{"uid":"u1"}`},
		{http.MethodPost, "/api/v1/farm/signin", `{"uid":"u1"}`},
		{http.MethodPost, "/api/v1/farm/rename", `{"uid":"u1","name":"Bo"}`},
		{http.MethodPost, "/api/v1/farm/sell", `{"uid":"u1"}`},
		{http.MethodPost, "/api/v1/farm/steal", `{"uid":"u1","target_uid":"u2"}`},
		{http.MethodGet, "/api/v1/farm/reclaim/condition?uid=u1", ""},
		{http.MethodGet, "/api/v1/farm/upgrade/condition?uid=u1&plot=0", ""},
		{http.MethodPost, "/api/v1/farm/upgrade/confirm", `{"uid":"u1","token":"nope","accept":true}`},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := call(r, rt.method, rt.path, rt.body, true)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var reply farm.Reply
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
			assert.NotEmpty(t, reply.Outcome)
		})
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	store := memory.NewStore()
	r := NewRouter(Options{APIKey: testKey, MaxBodyBytes: 16}, store, c, farm.NewManager(store, c, nil, nil, nil, farm.Config{}))

	rec := call(r, http.MethodPost, "/api/v1/farm/register", `{"uid":"u1","name":"`+strings.Repeat("x", 64)+`"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Activity(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	store := memory.NewStore()
	bus := event.NewMemoryBus()
	journal := eventlog.NewService(memory.NewEventLog())
	require.NoError(t, journal.Subscribe(bus))

	mgr := farm.NewManager(store, c, nil, nil, bus, farm.Config{})
	r := NewRouter(Options{APIKey: testKey, Activity: journal}, store, c, mgr)

	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/farm/register", `{"uid":"u1"}`, true).Code)

	rec := call(r, http.MethodGet, "/api/v1/farm/activity?uid=u1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.ActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, domain.EventTypeUserRegistered, resp.Entries[0].EventType)

	// without a journal the route is not mounted
	rec = call(newTestRouter(t), http.MethodGet, "/api/v1/farm/activity?uid=u1", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Events(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	store := memory.NewStore()
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	mgr := farm.NewManager(store, c, nil, nil, nil, farm.Config{})
	r := NewRouter(Options{APIKey: testKey, Events: hub}, store, c, mgr)

	// a cancelled request ends the stream right after the greeting
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/farm/events?uid=u1", nil).WithContext(ctx)
	req.Header.Set(HeaderAPIKey, testKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: "+sse.EventTypeConnected)
	assert.True(t, rec.Flushed)

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/farm/events", "", false).Code)
	assert.Equal(t, http.StatusNotFound, call(newTestRouter(t), http.MethodGet, "/api/v1/farm/events", "", true).Code)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	rec := call(newTestRouter(t), http.MethodGet, "/swagger/doc.json", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc["basePath"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/farm/register")
}
