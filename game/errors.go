package game

import (
	"errors"
	"fmt"
)

// Recoverable errors. Each is returned synchronously from the triggering
// operation and leaves the game state unchanged.
var (
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNotYourTurn      = errors.New("not your turn to act")
	ErrInvalidPhase     = errors.New("action not allowed in current game phase")
	ErrIllegalAction    = errors.New("illegal action")
)

// ErrPotConservation signals that chips were created or destroyed somewhere
// between collection and payout. It is an internal invariant failure: the
// hand must be aborted rather than let chip counts silently corrupt.
var ErrPotConservation = errors.New("pot conservation violated")

// illegalActionf wraps ErrIllegalAction with a reason, so callers can match
// with errors.Is while players get a usable message.
func illegalActionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}
