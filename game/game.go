package game

import (
	"sort"

	"github.com/texasholdem/holdem/cards"
	"github.com/texasholdem/holdem/hands"
)

// Phase is the table's position in the hand lifecycle
type Phase string

const (
	PhaseWaiting          Phase = "WAITING"
	PhasePreFlop          Phase = "PREFLOP"
	PhaseFlop             Phase = "FLOP"
	PhaseTurn             Phase = "TURN"
	PhaseRiver            Phase = "RIVER"
	PhaseShowdown         Phase = "SHOWDOWN"
	PhaseShowdownComplete Phase = "SHOWDOWN_COMPLETE"
	PhaseGameOver         Phase = "GAME_OVER"
)

// IsBettingStreet reports whether voluntary actions are accepted in this phase
func (p Phase) IsBettingStreet() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}
	return false
}

// ActionType is a voluntary player action during a betting street
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allIn"
)

// Game is a single no-limit hold'em table. It is not safe for concurrent use;
// callers serialize access (the server runs one goroutine per room).
//
// Chip conservation holds at every instant: every chip lives in exactly one
// player stack or in the pot, and the sum never changes except through
// AddPlayer, RemovePlayer and Reset.
type Game struct {
	players            []*Player
	deck               *cards.Deck
	communityCards     cards.Stack
	mainPot            int
	deadChips          int
	currentBet         int
	dealerPosition     int
	smallBlindPosition int
	bigBlindPosition   int
	currentPlayerTurn  string
	phase              Phase
	lastRaiser         string
	smallBlind         int
	bigBlind           int

	// newDeck is swapped in tests for a seeded deck
	newDeck func() *cards.Deck
}

// NewGame creates an empty table with the given blind sizes
func NewGame(smallBlind, bigBlind int) *Game {
	return &Game{
		phase:          PhaseWaiting,
		dealerPosition: -1,
		smallBlind:     smallBlind,
		bigBlind:       bigBlind,
		newDeck:        cards.NewShuffledDeck,
	}
}

// Phase returns the current lifecycle phase
func (g *Game) Phase() Phase {
	return g.phase
}

// CurrentPlayerTurn returns the ID of the player to act, or "" when nobody is
func (g *Game) CurrentPlayerTurn() string {
	return g.currentPlayerTurn
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	return len(g.players)
}

// HoleCards returns the player's private cards for the current hand
func (g *Game) HoleCards(playerID string) cards.Stack {
	seat := g.seatOf(playerID)
	if seat == -1 {
		return nil
	}
	return g.players[seat].Hand
}

// AddPlayer seats a new player. Seating is only possible between games;
// mid-game arrivals are the caller's concern (they spectate until a reset).
func (g *Game) AddPlayer(playerID, nickname string, chips int) error {
	if g.phase != PhaseWaiting {
		return ErrInvalidPhase
	}
	if g.seatOf(playerID) != -1 {
		return illegalActionf("player %s is already seated", playerID)
	}
	g.players = append(g.players, NewPlayer(playerID, nickname, chips))
	return nil
}

// UpdatePlayerID rebinds a seat to a new connection identity, preserving
// chips, hand and turn. Used when a disconnected player reconnects.
func (g *Game) UpdatePlayerID(oldID, newID string) bool {
	seat := g.seatOf(oldID)
	if seat == -1 {
		return false
	}
	g.players[seat].ID = newID
	if g.currentPlayerTurn == oldID {
		g.currentPlayerTurn = newID
	}
	if g.lastRaiser == oldID {
		g.lastRaiser = newID
	}
	return true
}

// StartGame deals the first hand. It requires a waiting table and at least
// two players with chips; a finished game restarts only through Reset. The
// returned result is non-nil only in the degenerate case where posting the
// blinds put everyone all-in and the hand ran out immediately.
func (g *Game) StartGame() (*HandResult, error) {
	if g.phase != PhaseWaiting {
		return nil, ErrInvalidPhase
	}
	if g.countDealable() < 2 {
		return nil, ErrNotEnoughPlayers
	}
	return g.beginHand()
}

// PrepareNextHand moves from a finished hand to the next one. When fewer than
// two players still have chips the game is over and started is false.
func (g *Game) PrepareNextHand() (started bool, result *HandResult, err error) {
	if g.phase != PhaseShowdownComplete {
		return false, nil, ErrInvalidPhase
	}
	if g.countDealable() < 2 {
		g.phase = PhaseGameOver
		g.currentPlayerTurn = ""
		return false, nil, nil
	}
	result, err = g.beginHand()
	if err != nil {
		return false, nil, err
	}
	return true, result, nil
}

// Reset returns the table to the waiting state with every player restored to
// the given stack size. Used when the room restarts a game.
func (g *Game) Reset(initialChips int) {
	for _, p := range g.players {
		p.Chips = initialChips
		p.resetForHand()
	}
	g.resetHandState()
	g.dealerPosition = -1
	g.phase = PhaseWaiting
}

func (g *Game) beginHand() (*HandResult, error) {
	g.resetHandState()
	for _, p := range g.players {
		p.resetForHand()
	}

	g.rotatePositions()
	g.deck = g.newDeck()

	for _, p := range g.players {
		if p.Status != StatusInGame {
			continue
		}
		hand, err := g.deck.Deal(2)
		if err != nil {
			return nil, err
		}
		p.Hand = hand
	}

	g.postBlind(g.players[g.smallBlindPosition], g.smallBlind)
	g.postBlind(g.players[g.bigBlindPosition], g.bigBlind)
	g.currentBet = g.bigBlind
	g.lastRaiser = g.players[g.bigBlindPosition].ID
	g.phase = PhasePreFlop

	// Blinds can put every player all-in, in which case there is no betting
	// at all and the board runs out straight to showdown.
	if g.isRoundComplete() {
		return g.runOut()
	}

	g.currentPlayerTurn = g.players[g.firstToAct()].ID
	return nil, nil
}

// PlayerAction applies a voluntary action for the player whose turn it is.
// Raise amounts are "raise to": the player's total bet for the street, not
// the increment. A non-nil result means the action ended the hand.
func (g *Game) PlayerAction(playerID string, action ActionType, amount int) (*HandResult, error) {
	if !g.phase.IsBettingStreet() {
		return nil, ErrInvalidPhase
	}
	if g.currentPlayerTurn != playerID {
		return nil, ErrNotYourTurn
	}

	seat := g.seatOf(playerID)
	p := g.players[seat]

	switch action {
	case ActionFold:
		p.Status = StatusFolded

	case ActionCheck:
		if p.CurrentBet != g.currentBet {
			return nil, illegalActionf("cannot check facing a bet of %d", g.currentBet)
		}

	case ActionCall:
		if p.CurrentBet == g.currentBet {
			return nil, illegalActionf("nothing to call, check instead")
		}
		g.commitChips(p, min(g.currentBet-p.CurrentBet, p.Chips))

	case ActionRaise:
		if amount <= g.currentBet {
			return nil, illegalActionf("raise to %d must exceed the current bet of %d", amount, g.currentBet)
		}
		needed := amount - p.CurrentBet
		if needed > p.Chips {
			return nil, illegalActionf("raise to %d exceeds available chips", amount)
		}
		minTarget := g.currentBet + g.bigBlind
		if amount < minTarget && needed < p.Chips {
			return nil, illegalActionf("minimum raise is to %d", minTarget)
		}
		g.commitChips(p, needed)
		g.currentBet = amount
		g.lastRaiser = p.ID
		// A raise reopens the action for everyone still able to act
		for _, other := range g.players {
			if other != p && other.CanAct() {
				other.HasActed = false
			}
		}

	case ActionAllIn:
		// The whole stack goes in. Above the current bet it plays as a raise,
		// exempt from the minimum like any all-in; below it settles as a call
		// and the pot tiering covers the shortfall.
		target := p.CurrentBet + p.Chips
		g.commitChips(p, p.Chips)
		if target > g.currentBet {
			g.currentBet = target
			g.lastRaiser = p.ID
			for _, other := range g.players {
				if other != p && other.CanAct() {
					other.HasActed = false
				}
			}
		}

	default:
		return nil, illegalActionf("unknown action %q", action)
	}

	p.HasActed = true
	return g.progress(seat)
}

// progress moves the hand forward after an action or a mid-hand removal
func (g *Game) progress(seat int) (*HandResult, error) {
	if len(g.contenders()) == 1 {
		return g.awardUncontested()
	}

	if g.isRoundComplete() {
		if g.countActionable() <= 1 {
			return g.runOut()
		}
		return g.advanceStreet()
	}

	g.currentPlayerTurn = g.players[g.nextActionableSeat(seat)].ID
	return nil, nil
}

// advanceStreet closes the current betting round and deals the next street
func (g *Game) advanceStreet() (*HandResult, error) {
	g.collectBets()

	switch g.phase {
	case PhasePreFlop:
		g.phase = PhaseFlop
		if err := g.dealCommunity(3); err != nil {
			return nil, err
		}
	case PhaseFlop:
		g.phase = PhaseTurn
		if err := g.dealCommunity(1); err != nil {
			return nil, err
		}
	case PhaseTurn:
		g.phase = PhaseRiver
		if err := g.dealCommunity(1); err != nil {
			return nil, err
		}
	case PhaseRiver:
		return g.showdown()
	}

	g.currentPlayerTurn = g.players[g.firstToAct()].ID
	return nil, nil
}

// runOut deals the remaining community cards with no further betting, then
// goes straight to showdown. Happens when all but at most one player is
// all-in.
func (g *Game) runOut() (*HandResult, error) {
	g.collectBets()
	g.currentPlayerTurn = ""
	if missing := 5 - len(g.communityCards); missing > 0 {
		if err := g.dealCommunity(missing); err != nil {
			return nil, err
		}
	}
	return g.showdown()
}

func (g *Game) dealCommunity(n int) error {
	dealt, err := g.deck.Deal(n)
	if err != nil {
		return err
	}
	g.communityCards = append(g.communityCards, dealt...)
	return nil
}

// collectBets closes the street: per-street bets are already in the pot, so
// this only resets the per-street counters.
func (g *Game) collectBets() {
	for _, p := range g.players {
		p.CurrentBet = 0
		p.HasActed = false
	}
	g.currentBet = 0
	g.lastRaiser = ""
}

// showdown evaluates every contender's best hand, pays out each pot to its
// best eligible hand(s) and finishes the hand.
func (g *Game) showdown() (*HandResult, error) {
	g.phase = PhaseShowdown
	g.currentPlayerTurn = ""

	pots := computePots(g.players, g.deadChips)
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	if total != g.mainPot {
		return nil, ErrPotConservation
	}

	evaluations := make(map[string]hands.HandEvaluation)
	holeCards := make(map[string]cards.Stack)
	fullHands := make(map[string]cards.Stack)
	for _, p := range g.contenders() {
		evaluation, err := hands.Evaluate(p.Hand, g.communityCards)
		if err != nil {
			return nil, err
		}
		evaluations[p.ID] = evaluation
		holeCards[p.ID] = p.Hand
		fullHands[p.ID] = append(append(cards.Stack{}, p.Hand...), g.communityCards...)
	}

	order := g.payoutOrder()
	payouts := make(map[string]int)
	for _, pot := range pots {
		var best int64 = -1
		var winners []string
		for _, id := range pot.EligiblePlayerIDs {
			value := evaluations[id].Value()
			if value > best {
				best = value
				winners = []string{id}
			} else if value == best {
				winners = append(winners, id)
			}
		}
		for id, amount := range splitPot(pot.Amount, winners, order) {
			payouts[id] += amount
		}
	}

	paid := 0
	for _, amount := range payouts {
		paid += amount
	}
	if paid != g.mainPot {
		return nil, ErrPotConservation
	}

	result := &HandResult{
		CommunityCards: g.communityCards,
		PlayersHands:   holeCards,
		Comparison:     hands.CompareHands(fullHands),
	}
	for _, id := range order {
		amount, ok := payouts[id]
		if !ok {
			continue
		}
		p := g.players[g.seatOf(id)]
		p.Chips += amount
		evaluation := evaluations[id]
		result.Winners = append(result.Winners, Winner{
			PlayerID:        id,
			Nickname:        p.Nickname,
			Amount:          amount,
			HandRank:        evaluation.Rank,
			HandValue:       evaluation.Value(),
			HandDescription: evaluation.Describe(),
		})
	}
	sort.SliceStable(result.Winners, func(i, j int) bool {
		return result.Winners[i].Amount > result.Winners[j].Amount
	})

	g.settleHand()
	return result, nil
}

// awardUncontested hands the whole pot to the last remaining contender. No
// cards are evaluated or revealed.
func (g *Game) awardUncontested() (*HandResult, error) {
	winner := g.contenders()[0]
	amount := g.mainPot
	winner.Chips += amount

	result := &HandResult{
		Uncontested:    true,
		CommunityCards: g.communityCards,
		Winners: []Winner{{
			PlayerID: winner.ID,
			Nickname: winner.Nickname,
			Amount:   amount,
		}},
	}

	g.settleHand()
	return result, nil
}

// settleHand zeroes the pot bookkeeping after payout and closes the hand
func (g *Game) settleHand() {
	g.mainPot = 0
	g.deadChips = 0
	g.currentBet = 0
	g.lastRaiser = ""
	g.currentPlayerTurn = ""
	for _, p := range g.players {
		p.CurrentBet = 0
		p.TotalBetThisHand = 0
		p.HasActed = false
	}
	g.phase = PhaseShowdownComplete
}

// resetHandState clears the table between hands or games
func (g *Game) resetHandState() {
	g.communityCards = nil
	g.mainPot = 0
	g.deadChips = 0
	g.currentBet = 0
	g.lastRaiser = ""
	g.currentPlayerTurn = ""
}

// RemovePlayer unseats a player. Chips they had committed to a running hand
// are forfeited into the pot. The returned result is non-nil when the removal
// left the pot uncontested and ended the hand; reset reports that fewer than
// two players remain in a running game, meaning the room should return to the
// waiting state.
func (g *Game) RemovePlayer(playerID string) (result *HandResult, reset bool, err error) {
	seat := g.seatOf(playerID)
	if seat == -1 {
		return nil, false, nil
	}

	p := g.players[seat]
	wasTurn := g.currentPlayerTurn == playerID
	midHand := g.phase.IsBettingStreet() && p.InHand()
	if midHand {
		g.deadChips += p.TotalBetThisHand
	}

	g.players = append(g.players[:seat], g.players[seat+1:]...)
	g.adjustPositionsAfterRemoval(seat)
	if wasTurn {
		g.currentPlayerTurn = ""
	}

	if midHand {
		switch {
		case len(g.contenders()) == 1:
			result, err = g.awardUncontested()
		case wasTurn && g.isRoundComplete():
			// The removed player was the last one holding up the round
			if g.countActionable() <= 1 {
				result, err = g.runOut()
			} else {
				result, err = g.advanceStreet()
			}
		case wasTurn:
			prev := (seat - 1 + len(g.players)) % len(g.players)
			g.currentPlayerTurn = g.players[g.nextActionableSeat(prev)].ID
		}
		if err != nil {
			return nil, false, err
		}
	}

	if len(g.players) < 2 && g.phase != PhaseWaiting {
		g.resetHandState()
		g.phase = PhaseWaiting
		g.dealerPosition = -1
		return result, true, nil
	}
	return result, false, nil
}

// adjustPositionsAfterRemoval shifts the stored seat indexes left to account
// for the removed seat.
func (g *Game) adjustPositionsAfterRemoval(removed int) {
	adjust := func(pos int) int {
		if pos >= removed {
			return pos - 1
		}
		return pos
	}
	g.dealerPosition = adjust(g.dealerPosition)
	g.smallBlindPosition = adjust(g.smallBlindPosition)
	g.bigBlindPosition = adjust(g.bigBlindPosition)
}
