package eventlog

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/event"
)

// TestHooks provides access to private methods for testing.
type TestHooks struct {
	svc *service
}

// NewTestHooks creates test hooks for the given service.
func NewTestHooks(s Service) *TestHooks {
	return &TestHooks{svc: s.(*service)}
}

// HandleEvent exposes the private handleEvent method for testing.
func (h *TestHooks) HandleEvent(ctx context.Context, evt event.Event) error {
	return h.svc.handleEvent(ctx, evt)
}

// SetNow pins the service clock.
func (h *TestHooks) SetNow(now func() time.Time) {
	h.svc.now = now
}
