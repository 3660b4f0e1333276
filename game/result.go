package game

import (
	"github.com/texasholdem/holdem/cards"
	"github.com/texasholdem/holdem/hands"
)

// Winner is one player's payout from a finished hand. The hand fields stay
// zero on an uncontested win, where no cards were evaluated.
type Winner struct {
	PlayerID        string         `json:"playerId"`
	Nickname        string         `json:"nickname"`
	Amount          int            `json:"amount"`
	HandRank        hands.HandRank `json:"handRank"`
	HandValue       int64          `json:"handValue"`
	HandDescription string         `json:"handDescription,omitempty"`
}

// HandResult describes the outcome of a completed hand. When the pot was
// uncontested (everyone else folded or left) no cards were evaluated and
// PlayersHands and Comparison are empty.
type HandResult struct {
	Winners        []Winner                     `json:"winners"`
	Uncontested    bool                         `json:"uncontested"`
	CommunityCards cards.Stack                  `json:"communityCards"`
	PlayersHands   map[string]cards.Stack       `json:"playersHands,omitempty"`
	Comparison     []hands.HandComparisonResult `json:"comparison,omitempty"`
}

// Snapshot is a point-in-time public view of the table. Hole cards are never
// included; each player receives their own hand through a private message.
type Snapshot struct {
	Players            []Player    `json:"players"`
	CommunityCards     cards.Stack `json:"communityCards"`
	Pot                int         `json:"pot"`
	SidePots           []Pot       `json:"sidePots,omitempty"`
	CurrentBet         int         `json:"currentBet"`
	CurrentPlayerTurn  string      `json:"currentPlayerTurn"`
	Phase              Phase       `json:"phase"`
	DealerPosition     int         `json:"dealerPosition"`
	SmallBlindPosition int         `json:"smallBlindPosition"`
	BigBlindPosition   int         `json:"bigBlindPosition"`
	SmallBlind         int         `json:"smallBlind"`
	BigBlind           int         `json:"bigBlind"`
}

// Snapshot returns the public table state. Players are copied by value so the
// caller cannot mutate live seats, and pots are recomputed from the current
// contributions so the view is consistent at any instant.
func (g *Game) Snapshot() Snapshot {
	players := make([]Player, len(g.players))
	for i, p := range g.players {
		players[i] = *p
		players[i].Hand = nil
	}

	pots := computePots(g.players, g.deadChips)

	var sidePots []Pot
	if len(pots) > 1 {
		sidePots = pots[1:]
	}

	return Snapshot{
		Players:            players,
		CommunityCards:     g.communityCards,
		Pot:                pots[0].Amount,
		SidePots:           sidePots,
		CurrentBet:         g.currentBet,
		CurrentPlayerTurn:  g.currentPlayerTurn,
		Phase:              g.phase,
		DealerPosition:     g.dealerPosition,
		SmallBlindPosition: g.smallBlindPosition,
		BigBlindPosition:   g.bigBlindPosition,
		SmallBlind:         g.smallBlind,
		BigBlind:           g.bigBlind,
	}
}
