package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/database/memory"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/handler"
)

func TestHandleActivity(t *testing.T) {
	svc := eventlog.NewService(memory.NewEventLog())
	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC).Unix()
	require.NoError(t, bus.Publish(ctx, event.NewFarmEvent(event.SeedBought,
		event.FarmActionPayloadV1{UserID: "alice", CropID: "carrot", Quantity: 2, CurrencyDelta: -100, Timestamp: ts})))
	require.NoError(t, bus.Publish(ctx, event.NewFarmEvent(event.CropStolen,
		event.FarmActionPayloadV1{UserID: "bob", TargetID: "alice", CropID: "carrot", Quantity: 1, Timestamp: ts + 60})))

	r := chi.NewRouter()
	r.Get("/activity", handler.HandleActivity(svc))

	rec := do(t, r, http.MethodGet, "/activity?uid=alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.ActivityResponse](t, rec)
	assert.Equal(t, "alice", resp.UID)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, domain.EventTypeCropStolen, resp.Entries[0].EventType)
	assert.Equal(t, "bob", resp.Entries[0].UserID)

	rec = do(t, r, http.MethodGet, "/activity?uid=alice&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[handler.ActivityResponse](t, rec).Entries, 1)

	rec = do(t, r, http.MethodGet, "/activity?uid=alice&limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodGet, "/activity", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodGet, "/activity?uid=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[handler.ActivityResponse](t, rec).Entries)
}
