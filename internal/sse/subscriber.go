package sse

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every farm event type to the hub
func (s *Subscriber) Subscribe() {
	for _, eventType := range event.AllTypes {
		s.bus.Subscribe(eventType, s.handleEvent)
	}
	logger.FromContext(context.Background()).Info(LogMsgSubscriberRegistered, "types", len(event.AllTypes))
}

func (s *Subscriber) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.FarmActionPayloadV1](evt.Payload)
	if err != nil || payload.UserID == "" {
		log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	users := []string{payload.UserID}
	if payload.TargetID != "" {
		users = append(users, payload.TargetID)
	}

	if !s.hub.Broadcast(string(evt.Type), payload, users...) {
		log.Warn(LogMsgBroadcastDropped, "type", evt.Type)
		return nil
	}
	log.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", payload.UserID)
	return nil
}
