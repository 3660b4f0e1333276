package game

// Seat rotation helpers. A seat is "dealable" when its player can be dealt
// into the next hand (has chips, not sitting out) and "actionable" when its
// player may still take a voluntary action this street.

// isDealable reports whether the seat can take part in a new hand
func (g *Game) isDealable(seat int) bool {
	p := g.players[seat]
	return p.Status != StatusSittingOut && p.Chips > 0
}

// nextDealableSeat returns the first dealable seat strictly after from,
// wrapping clockwise, or -1 when none exists.
func (g *Game) nextDealableSeat(from int) int {
	n := len(g.players)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if g.isDealable(seat) {
			return seat
		}
	}
	return -1
}

// nextActionableSeat returns the first seat strictly after from whose player
// can still act (in the hand, not folded, not all-in), or -1 when none.
func (g *Game) nextActionableSeat(from int) int {
	n := len(g.players)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if g.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// rotatePositions moves the dealer button one dealable seat clockwise and
// reassigns the blinds. Heads-up the dealer posts the small blind and the
// other player the big blind.
func (g *Game) rotatePositions() {
	g.dealerPosition = g.nextDealableSeat(g.dealerPosition)

	if g.countDealable() == 2 {
		g.smallBlindPosition = g.dealerPosition
		g.bigBlindPosition = g.nextDealableSeat(g.dealerPosition)
		return
	}

	g.smallBlindPosition = g.nextDealableSeat(g.dealerPosition)
	g.bigBlindPosition = g.nextDealableSeat(g.smallBlindPosition)
}

// countDealable counts the seats that can be dealt into a new hand
func (g *Game) countDealable() int {
	count := 0
	for seat := range g.players {
		if g.isDealable(seat) {
			count++
		}
	}
	return count
}

// postBlind commits a forced bet before any voluntary action. A player who
// cannot cover the blind posts all-in for their remaining stack.
func (g *Game) postBlind(p *Player, amount int) {
	g.commitChips(p, min(amount, p.Chips))
}

// commitChips moves chips from the player's stack into the pot, tracking the
// per-street and per-hand commitments. Emptying the stack puts the player
// all-in.
func (g *Game) commitChips(p *Player, amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBetThisHand += amount
	g.mainPot += amount
	if p.Chips == 0 {
		p.Status = StatusAllIn
	}
}

// firstToAct returns the seat that opens the betting for the current street:
// left of the big blind pre-flop, left of the dealer afterwards. Returns -1
// when nobody can act (everyone all-in or folded).
func (g *Game) firstToAct() int {
	if g.phase == PhasePreFlop {
		return g.nextActionableSeat(g.bigBlindPosition)
	}
	return g.nextActionableSeat(g.dealerPosition)
}

// seatOf returns the seat index for a player ID, or -1 if absent
func (g *Game) seatOf(playerID string) int {
	for seat, p := range g.players {
		if p.ID == playerID {
			return seat
		}
	}
	return -1
}

// payoutOrder lists player IDs in seat order starting immediately after the
// dealer, clockwise. Odd chips from split pots are assigned in this order.
func (g *Game) payoutOrder() []string {
	n := len(g.players)
	order := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, g.players[(g.dealerPosition+i)%n].ID)
	}
	return order
}

// isRoundComplete reports whether the current betting round is finished:
// every player who can still act has acted and matched the table's current
// bet. Players all-in for less are settled by definition.
func (g *Game) isRoundComplete() bool {
	for _, p := range g.players {
		if !p.CanAct() {
			continue
		}
		if !p.HasActed || p.CurrentBet != g.currentBet {
			return false
		}
	}
	return true
}

// countActionable counts players who can still take voluntary actions
func (g *Game) countActionable() int {
	count := 0
	for _, p := range g.players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// contenders returns the players still contesting the pot (in-game or all-in)
func (g *Game) contenders() []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.InHand() {
			out = append(out, p)
		}
	}
	return out
}
