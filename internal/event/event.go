package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a farm event published after a committed transaction
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Farm event types
const (
	UserRegistered Type = domain.EventTypeUserRegistered
	SeedBought     Type = domain.EventTypeSeedBought
	CropSold       Type = domain.EventTypeCropSold
	CropSown       Type = domain.EventTypeCropSown
	CropHarvested  Type = domain.EventTypeCropHarvested
	CropStolen     Type = domain.EventTypeCropStolen
	PlotReclaimed  Type = domain.EventTypePlotReclaimed
	PlotUpgraded   Type = domain.EventTypePlotUpgraded
	SignedIn       Type = domain.EventTypeSignedIn
)

// AllTypes lists every farm event type
var AllTypes = []Type{
	UserRegistered, SeedBought, CropSold, CropSown, CropHarvested,
	CropStolen, PlotReclaimed, PlotUpgraded, SignedIn,
}

// Typed event payloads for type safety

// FarmActionPayloadV1 is the payload shared by every farm event.
// CurrencyDelta is signed: purchases are negative, sales and rewards positive.
type FarmActionPayloadV1 struct {
	UserID        string `json:"user_id"`
	TargetID      string `json:"target_id,omitempty"`
	CropID        string `json:"crop_id,omitempty"`
	Quantity      int    `json:"quantity"`
	CurrencyDelta int    `json:"currency_delta"`
	Experience    int    `json:"experience,omitempty"`
	PlotIndex     int    `json:"plot_index,omitempty"`
	Level         int    `json:"level,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// NewFarmEvent creates a farm event with a typed payload
func NewFarmEvent(eventType Type, payload FarmActionPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
