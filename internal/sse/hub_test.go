package sse

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, waitFor, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		return evt
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		t.Fatalf("unexpected event %q", evt.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastToAll(t *testing.T) {
	hub := startHub(t)
	a := hub.Register(nil, "")
	b := hub.Register(nil, "")
	waitClients(t, hub, 2)

	require.True(t, hub.Broadcast("crop.sown", map[string]int{"n": 1}, "alice"))

	assert.Equal(t, "crop.sown", receive(t, a).Type)
	assert.Equal(t, "crop.sown", receive(t, b).Type)
}

func TestHub_TypeFilter(t *testing.T) {
	hub := startHub(t)
	c := hub.Register([]string{" crop.stolen ", ""}, "")
	waitClients(t, hub, 1)

	hub.Broadcast("crop.sown", nil, "alice")
	hub.Broadcast("crop.stolen", nil, "bob", "alice")

	assert.Equal(t, "crop.stolen", receive(t, c).Type)
	assertNothing(t, c)
}

func TestHub_UserFilter(t *testing.T) {
	hub := startHub(t)
	victim := hub.Register(nil, "alice")
	waitClients(t, hub, 1)

	hub.Broadcast("crop.sown", nil, "carol")
	hub.Broadcast("crop.stolen", nil, "bob", "alice")

	evt := receive(t, victim)
	assert.Equal(t, "crop.stolen", evt.Type)
	assertNothing(t, victim)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register(nil, "")
	waitClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register(nil, "")
	waitClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())

	// registering after stop hands back a closed client
	late := hub.Register(nil, "")
	_, ok = <-late.EventChannel
	assert.False(t, ok)
}

func TestHub_RegisterDuringStopAlwaysCloses(t *testing.T) {
	for i := 0; i < 200; i++ {
		hub := NewHub()
		hub.Start()

		clients := make(chan *Client, 8)
		var wg sync.WaitGroup
		for j := 0; j < cap(clients); j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				clients <- hub.Register(nil, "")
			}()
		}
		hub.Stop()
		wg.Wait()
		close(clients)

		for c := range clients {
			select {
			case _, ok := <-c.EventChannel:
				require.False(t, ok, "client %s still open after stop", c.ID)
			case <-time.After(waitFor):
				t.Fatalf("client %s channel never closed", c.ID)
			}
		}
	}
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "crop.sold", Timestamp: 7, Payload: map[string]int{"quantity": 3}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: abc\nevent: crop.sold\ndata: "))
	assert.True(t, strings.HasSuffix(s, "\n\n"))
	assert.Contains(t, s, `"quantity":3`)
	assert.NotContains(t, s, "users")
}
