package game

import "sort"

// Pot is a prize pool with the set of players eligible to win it. The main
// pot is the lowest contribution tier; side pots form above it whenever a
// player is all-in for less than the others' total contribution.
type Pot struct {
	Amount            int      `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayerIds"`
}

// computePots partitions every chip committed this hand into a main pot and
// ordered side pots. Tier boundaries exist only where an all-in player capped
// their contribution; a live player's unmatched street bet never splits the
// pot, so mid-street snapshots show one pot until somebody is actually
// all-in. A tier's pot is eligible to every live player plus the all-in
// players who contributed at least that level. deadChips are contributions
// from players who left mid-hand; they are forfeited into the main pot.
//
// The returned slice always has the main pot at index 0, with side pots
// following in increasing tier order.
func computePots(players []*Player, deadChips int) []Pot {
	levelSet := make(map[int]bool)
	total := 0
	topLevel := 0
	for _, p := range players {
		total += p.TotalBetThisHand
		if p.Status == StatusAllIn && p.TotalBetThisHand > 0 {
			levelSet[p.TotalBetThisHand] = true
		}
		if p.InHand() && p.TotalBetThisHand > topLevel {
			topLevel = p.TotalBetThisHand
		}
	}
	if topLevel > 0 {
		levelSet[topLevel] = true
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	if len(levels) == 0 {
		main := Pot{Amount: deadChips + total}
		for _, p := range players {
			if p.InHand() {
				main.EligiblePlayerIDs = append(main.EligiblePlayerIDs, p.ID)
			}
		}
		return []Pot{main}
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	accounted := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p.TotalBetThisHand > prev {
				pot.Amount += min(p.TotalBetThisHand, level) - prev
			}
			if p.Status == StatusInGame || (p.Status == StatusAllIn && p.TotalBetThisHand >= level) {
				pot.EligiblePlayerIDs = append(pot.EligiblePlayerIDs, p.ID)
			}
		}
		accounted += pot.Amount
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	// Folded contributions above the deepest in-hand level land in the top pot
	if leftover := total - accounted; leftover > 0 {
		pots[len(pots)-1].Amount += leftover
	}
	pots[0].Amount += deadChips
	return pots
}

// splitPot divides amount evenly among the winners. A remainder that does not
// divide evenly is handed out one chip at a time following payoutOrder (seat
// order starting immediately after the dealer, clockwise).
func splitPot(amount int, winners []string, payoutOrder []string) map[string]int {
	payouts := make(map[string]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return payouts
	}

	share := amount / len(winners)
	remainder := amount % len(winners)

	winnerSet := make(map[string]bool, len(winners))
	for _, id := range winners {
		payouts[id] = share
		winnerSet[id] = true
	}

	for _, id := range payoutOrder {
		if remainder == 0 {
			break
		}
		if winnerSet[id] {
			payouts[id]++
			remainder--
		}
	}

	return payouts
}
