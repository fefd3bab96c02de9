package metrics

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to farm events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every farm event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates the counters for one event
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	p, err := event.DecodePayload[event.FarmActionPayloadV1](evt.Payload)
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	switch evt.Type {
	case event.UserRegistered:
		UsersRegistered.Inc()
	case event.SeedBought:
		SeedsBought.WithLabelValues(p.CropID).Add(float64(p.Quantity))
	case event.CropSown:
		SeedsSown.WithLabelValues(p.CropID).Add(float64(p.Quantity))
	case event.CropHarvested:
		CropsHarvested.WithLabelValues(p.CropID).Add(float64(p.Quantity))
	case event.CropSold:
		CropsSold.WithLabelValues(p.CropID).Add(float64(p.Quantity))
	case event.CropStolen:
		CropsStolen.WithLabelValues(p.CropID).Add(float64(p.Quantity))
	case event.PlotReclaimed:
		PlotsReclaimed.Inc()
	case event.PlotUpgraded:
		PlotsUpgraded.Inc()
	case event.SignedIn:
		SignIns.Inc()
	}

	switch {
	case p.CurrencyDelta > 0:
		CurrencyEarned.Add(float64(p.CurrencyDelta))
	case p.CurrencyDelta < 0:
		CurrencySpent.Add(float64(-p.CurrencyDelta))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
