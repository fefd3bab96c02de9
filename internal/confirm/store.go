// Package confirm holds the pending requests of two-phase operations between the
// condition phase and the user's answer. Nothing blocks while an answer is awaited.
package confirm

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

const (
	// DefaultCapacity bounds the number of outstanding requests
	DefaultCapacity = 4096
	// DefaultTimeout is how long a condition stays confirmable
	DefaultTimeout = 60 * time.Second
)

// Store keeps at most one pending request per (user, operation).
// Issuing a new request replaces the previous one.
type Store struct {
	mu      sync.Mutex
	pending *expirable.LRU[string, domain.PendingRequest]
	timeout time.Duration
	now     func() time.Time
}

// NewStore creates a store. A nil now uses time.Now.
func NewStore(capacity int, timeout time.Duration, now func() time.Time) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		pending: expirable.NewLRU[string, domain.PendingRequest](capacity, nil, timeout),
		timeout: timeout,
		now:     now,
	}
}

func key(uid string, op domain.Operation) string {
	return uid + "|" + string(op)
}

// Timeout is the confirmation window
func (s *Store) Timeout() time.Duration { return s.timeout }

// Issue records a pending request and returns it with a fresh token
func (s *Store) Issue(uid string, op domain.Operation, plotIndex, cost int) domain.PendingRequest {
	req := domain.PendingRequest{
		Token:     uuid.NewString(),
		UserID:    uid,
		Operation: op,
		PlotIndex: plotIndex,
		Cost:      cost,
		ExpiresAt: s.now().Add(s.timeout),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Add(key(uid, op), req)
	return req
}

// Take consumes the pending request matching token. A missing, expired or
// superseded request yields domain.ErrConfirmationTimeout.
func (s *Store) Take(uid string, op domain.Operation, token string) (domain.PendingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(uid, op)
	req, ok := s.pending.Get(k)
	if !ok || req.Token != token {
		return domain.PendingRequest{}, fmt.Errorf("%w: no pending %s", domain.ErrConfirmationTimeout, op)
	}
	s.pending.Remove(k)

	if req.Expired(s.now()) {
		return domain.PendingRequest{}, fmt.Errorf("%w: %s expired at %s",
			domain.ErrConfirmationTimeout, op, req.ExpiresAt.Format(time.RFC3339))
	}
	return req, nil
}

// Len is the number of outstanding requests
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}
