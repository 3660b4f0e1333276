package game

import "github.com/texasholdem/holdem/cards"

// PlayerStatus represents a player's standing within the current hand
type PlayerStatus string

const (
	StatusInGame     PlayerStatus = "in-game"
	StatusFolded     PlayerStatus = "folded"
	StatusAllIn      PlayerStatus = "all-in"
	StatusSittingOut PlayerStatus = "sitting-out"
)

// Player is a seat at the table. The ID is the connection-scoped identity and
// may be rebound on reconnection via UpdatePlayerID; chips persist across
// hands, everything else is per-hand state.
type Player struct {
	ID               string       `json:"id"`
	Nickname         string       `json:"nickname"`
	Chips            int          `json:"chips"`
	Hand             cards.Stack  `json:"-"`
	Status           PlayerStatus `json:"status"`
	CurrentBet       int          `json:"currentBet"`
	TotalBetThisHand int          `json:"totalBetThisHand"`
	HasActed         bool         `json:"hasActed"`
}

// NewPlayer creates a player with the given connection identity and stack
func NewPlayer(id, nickname string, chips int) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
		Chips:    chips,
		Status:   StatusInGame,
	}
}

// resetForHand clears the per-hand fields. A player with no chips left sits
// the hand out.
func (p *Player) resetForHand() {
	p.Hand = nil
	p.CurrentBet = 0
	p.TotalBetThisHand = 0
	p.HasActed = false
	if p.Chips > 0 {
		p.Status = StatusInGame
	} else {
		p.Status = StatusSittingOut
	}
}

// CanAct reports whether the player may take a voluntary action: still in the
// hand and not already all-in.
func (p *Player) CanAct() bool {
	return p.Status == StatusInGame
}

// InHand reports whether the player is still contesting the pot
func (p *Player) InHand() bool {
	return p.Status == StatusInGame || p.Status == StatusAllIn
}
