package domain

import "time"

// Operation names a two-phase operation awaiting confirmation
type Operation string

const (
	OperationReclaim Operation = "reclaim"
	OperationUpgrade Operation = "upgrade"
)

// PendingRequest is the typed token handed to the session collaborator between
// the condition phase and the commit phase of a confirmation flow.
type PendingRequest struct {
	Token     string    `json:"token"`
	UserID    string    `json:"uid"`
	Operation Operation `json:"operation"`
	PlotIndex int       `json:"plot_index"`
	Cost      int       `json:"cost"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the request can no longer be confirmed at now
func (p PendingRequest) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
