package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got FarmActionPayloadV1

	bus.Subscribe(CropHarvested, func(ctx context.Context, e Event) error {
		payload, err := DecodePayload[FarmActionPayloadV1](e.Payload)
		require.NoError(t, err)
		got = payload
		return nil
	})

	err := bus.Publish(context.Background(), NewFarmEvent(CropHarvested, FarmActionPayloadV1{
		UserID:   "alice",
		CropID:   "carrot",
		Quantity: 10,
	}))
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, 10, got.Quantity)
	assert.NotZero(t, got.Timestamp)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(SeedBought, handler)
	bus.Subscribe(SeedBought, handler)
	bus.Subscribe(CropSold, handler)

	require.NoError(t, bus.Publish(context.Background(), NewFarmEvent(SeedBought, FarmActionPayloadV1{})))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewFarmEvent(SignedIn, FarmActionPayloadV1{})))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(CropStolen, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), NewFarmEvent(CropStolen, FarmActionPayloadV1{}))
	assert.Error(t, err)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"user_id": "bob", "quantity": 3, "currency_delta": -150}
	payload, err := DecodePayload[FarmActionPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "bob", payload.UserID)
	assert.Equal(t, 3, payload.Quantity)
	assert.Equal(t, -150, payload.CurrencyDelta)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 1))
	assert.Equal(t, 4*RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 3))
	assert.Equal(t, RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 0))
}
