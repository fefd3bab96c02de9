package eventlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(repo eventlog.Repository) (eventlog.Service, *eventlog.TestHooks) {
	svc := eventlog.NewService(repo)
	hooks := eventlog.NewTestHooks(svc)
	hooks.SetNow(func() time.Time { return fixedNow })
	return svc, hooks
}

func TestHandleEvent_TypedPayload(t *testing.T) {
	repo := new(eventlog.MockRepository)
	_, hooks := newService(repo)

	ts := fixedNow.Add(-time.Minute)
	evt := event.NewFarmEvent(event.CropStolen, event.FarmActionPayloadV1{
		UserID:    "alice",
		TargetID:  "bob",
		CropID:    "carrot",
		Quantity:  3,
		Timestamp: ts.Unix(),
	})
	evt.Metadata = event.Metadata{"request_id": "r-1"}

	repo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e eventlog.Entry) bool {
		return e.EventType == string(event.CropStolen) &&
			e.UserID == "alice" && e.TargetID == "bob" &&
			e.CropID == "carrot" && e.Quantity == 3 &&
			e.CreatedAt.Equal(ts) && e.Metadata["request_id"] == "r-1"
	})).Return(nil)

	require.NoError(t, hooks.HandleEvent(context.Background(), evt))
	repo.AssertExpectations(t)
}

func TestHandleEvent_MapPayload(t *testing.T) {
	repo := new(eventlog.MockRepository)
	_, hooks := newService(repo)

	evt := event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.SeedBought,
		Payload: map[string]interface{}{
			"user_id":        "alice",
			"crop_id":        "carrot",
			"quantity":       2,
			"currency_delta": -100,
		},
	}

	repo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e eventlog.Entry) bool {
		return e.UserID == "alice" && e.CurrencyDelta == -100 && e.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	require.NoError(t, hooks.HandleEvent(context.Background(), evt))
	repo.AssertExpectations(t)
}

func TestHandleEvent_SkipsForeignPayload(t *testing.T) {
	repo := new(eventlog.MockRepository)
	_, hooks := newService(repo)

	for _, payload := range []interface{}{"not a struct", map[string]interface{}{"quantity": 1}} {
		err := hooks.HandleEvent(context.Background(), event.Event{Type: event.CropSold, Payload: payload})
		assert.NoError(t, err)
	}
	repo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything)
}

func TestHandleEvent_RepositoryError(t *testing.T) {
	repo := new(eventlog.MockRepository)
	_, hooks := newService(repo)

	repo.On("LogEvent", mock.Anything, mock.Anything).Return(errors.New("db down"))

	evt := event.NewFarmEvent(event.SignedIn, event.FarmActionPayloadV1{UserID: "alice"})
	assert.Error(t, hooks.HandleEvent(context.Background(), evt))
}

func TestSubscribe_AllFarmEvents(t *testing.T) {
	repo := new(eventlog.MockRepository)
	svc, _ := newService(repo)
	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	repo.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

	for _, typ := range event.AllTypes {
		require.NoError(t, bus.Publish(context.Background(),
			event.NewFarmEvent(typ, event.FarmActionPayloadV1{UserID: "alice"})))
	}
	repo.AssertNumberOfCalls(t, "LogEvent", len(event.AllTypes))
}

func TestRecentActivity_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, eventlog.DefaultActivityLimit},
		{"negative", -5, eventlog.DefaultActivityLimit},
		{"within range", 7, 7},
		{"capped", 1000, eventlog.MaxActivityLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(eventlog.MockRepository)
			svc, _ := newService(repo)
			repo.On("GetEventsByUser", mock.Anything, "alice", tt.want).Return([]eventlog.Entry{}, nil)

			entries, err := svc.RecentActivity(context.Background(), "alice", tt.limit)
			require.NoError(t, err)
			assert.Empty(t, entries)
			repo.AssertExpectations(t)
		})
	}
}

func TestCleanupOldEvents_Cutoff(t *testing.T) {
	repo := new(eventlog.MockRepository)
	svc, _ := newService(repo)

	repo.On("CleanupOldEvents", mock.Anything, fixedNow.Add(-48*time.Hour)).Return(int64(4), nil)

	n, err := svc.CleanupOldEvents(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestEntry_Involves(t *testing.T) {
	e := eventlog.Entry{UserID: "alice", TargetID: "bob"}
	assert.True(t, e.Involves("alice"))
	assert.True(t, e.Involves("bob"))
	assert.False(t, e.Involves("carol"))
	assert.False(t, eventlog.Entry{UserID: "alice"}.Involves(""))
}
