package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// RetryQueueBufferSize is the default capacity of the retry queue
const RetryQueueBufferSize = 1000

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Bus so that a failed delivery never reaches the farm
// operation that published it. Failures are retried by one background worker with
// exponential backoff and end up in a dead-letter file when retries run out.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	dlMu       sync.Mutex

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelay
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish implements Bus. Delivery errors are absorbed and retried.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// PublishWithRetry delivers event once synchronously and queues it for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	entry := retryEntry{event: event, attempt: 1, lastErr: err}
	select {
	case <-p.shutdown:
		logger.FromContext(ctx).Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
		p.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case p.retryQueue <- entry:
	default:
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry)
		case <-p.shutdown:
			for {
				select {
				case entry := <-p.retryQueue:
					p.retry(entry)
				default:
					return
				}
			}
		}
	}
}

// retry keeps attempting one event until it succeeds or exhausts maxRetries.
// Once shutdown begins the backoff is skipped.
func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for retries := 1; retries <= p.maxRetries; retries++ {
		timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, retries))
		select {
		case <-timer.C:
		case <-p.shutdown:
			timer.Stop()
		}

		entry.attempt++
		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
			return
		}
		entry.lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
	p.writeDeadLetter(entry)
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	p.dlMu.Lock()
	defer p.dlMu.Unlock()
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops accepting retries, drains the queue and closes the dead-letter file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	p.dlMu.Lock()
	defer p.dlMu.Unlock()
	if p.deadLetter == nil {
		return nil
	}
	err := p.deadLetter.Close()
	p.deadLetter = nil
	return err
}
