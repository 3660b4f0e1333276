// Package session stores disconnect records for the reconnection grace
// period. A record is written when a seated player's connection drops and
// consumed when they reconnect; records expire after the grace period so a
// stale identity can never reclaim a seat.
package session

import (
	"context"
	"time"
)

// Record identifies a disconnected player's seat
type Record struct {
	PlayerID       string    `json:"playerId"`
	RoomCode       string    `json:"roomCode"`
	Nickname       string    `json:"nickname"`
	DisconnectedAt time.Time `json:"disconnectedAt"`
}

// Repo abstracts the disconnect-record store. The memory implementation is
// the default; the Redis one lets reconnection survive a server restart when
// an address is configured.
type Repo interface {
	// Save stores the record, overwriting any previous one for the player.
	// The record expires after ttl.
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	// Take retrieves and deletes the record for the player. ok is false when
	// no live record exists.
	Take(ctx context.Context, playerID string) (rec Record, ok bool, err error)
	// Delete discards the record for the player, if any
	Delete(ctx context.Context, playerID string) error
}
