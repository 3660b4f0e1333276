package hands

import (
	"errors"
	"sort"

	"github.com/texasholdem/holdem/cards"
)

// HandRank represents the category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// ErrNotEnoughCards is returned when fewer than five cards are available to
// evaluate.
var ErrNotEnoughCards = errors.New("need at least 5 cards to evaluate a hand")

// HandEvaluation represents the evaluation of a five-card poker hand.
// Kickers hold the rank values that decide ties within the same category,
// highest-priority first (e.g. for a full house: trips value, then pair value).
type HandEvaluation struct {
	Rank      HandRank
	HandCards cards.Stack // the five cards making up the hand, sorted by rank descending
	Kickers   []int
}

// Value packs the evaluation into a single totally-ordered integer: the
// category in the high bits, then each kicker in a 4-bit slot. Two hands with
// the same Value are an exact tie.
func (e HandEvaluation) Value() int64 {
	v := int64(e.Rank) << 20
	shift := 16
	for i := 0; i < len(e.Kickers) && i < 5; i++ {
		v |= int64(e.Kickers[i]) << shift
		shift -= 4
	}
	return v
}

// valueToRank converts card values to numerical ranks (2=2, A=14)
func valueToRank(value cards.Value) int {
	switch value {
	case cards.Ace:
		return 14
	case cards.King:
		return 13
	case cards.Queen:
		return 12
	case cards.Jack:
		return 11
	case cards.Ten:
		return 10
	case cards.Nine:
		return 9
	case cards.Eight:
		return 8
	case cards.Seven:
		return 7
	case cards.Six:
		return 6
	case cards.Five:
		return 5
	case cards.Four:
		return 4
	case cards.Three:
		return 3
	case cards.Two:
		return 2
	default:
		return 0
	}
}

// sortCardsByRank sorts cards by rank in descending order
func sortCardsByRank(hand cards.Stack) cards.Stack {
	result := make(cards.Stack, len(hand))
	copy(result, hand)

	sort.Slice(result, func(i, j int) bool {
		return valueToRank(result[i].Value) > valueToRank(result[j].Value)
	})

	return result
}

// isFlush checks if all cards are of the same suit
func isFlush(hand cards.Stack) bool {
	if len(hand) == 0 {
		return false
	}

	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}

	return true
}

// straightHigh returns the rank of the highest card of a straight, or 0 when
// the hand is not a straight. The wheel (A-2-3-4-5) reports 5 so it ranks
// below a six-high straight.
func straightHigh(sorted cards.Stack) int {
	ranks := make([]int, len(sorted))
	for i, card := range sorted {
		ranks[i] = valueToRank(card.Value)
	}

	// Wheel: A-5-4-3-2 when sorted descending
	if ranks[0] == 14 && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2 {
		return 5
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]-1 {
			return 0
		}
	}

	return ranks[0]
}

// rankGroup pairs a card rank with how many times it occurs in the hand
type rankGroup struct {
	rank  int
	count int
}

// groupByRank returns the hand's rank groups ordered by count descending,
// then rank descending. The ordering makes classification a direct pattern
// match on the leading group counts.
func groupByRank(sorted cards.Stack) []rankGroup {
	counts := make(map[int]int)
	for _, card := range sorted {
		counts[valueToRank(card.Value)]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

// evaluateFive evaluates exactly five cards and returns their ranking
func evaluateFive(hand cards.Stack) HandEvaluation {
	if len(hand) != 5 {
		panic("hand must contain exactly 5 cards")
	}

	sorted := sortCardsByRank(hand)
	flush := isFlush(sorted)
	straight := straightHigh(sorted)

	if flush && straight == 14 {
		return HandEvaluation{Rank: RoyalFlush, HandCards: sorted, Kickers: []int{}}
	}
	if flush && straight > 0 {
		return HandEvaluation{Rank: StraightFlush, HandCards: sorted, Kickers: []int{straight}}
	}

	groups := groupByRank(sorted)

	switch {
	case groups[0].count == 4:
		return HandEvaluation{
			Rank:      FourOfAKind,
			HandCards: sorted,
			Kickers:   []int{groups[0].rank, groups[1].rank},
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandEvaluation{
			Rank:      FullHouse,
			HandCards: sorted,
			Kickers:   []int{groups[0].rank, groups[1].rank},
		}
	case flush:
		return HandEvaluation{Rank: Flush, HandCards: sorted, Kickers: ranksOf(sorted)}
	case straight > 0:
		return HandEvaluation{Rank: Straight, HandCards: sorted, Kickers: []int{straight}}
	case groups[0].count == 3:
		return HandEvaluation{
			Rank:      ThreeOfAKind,
			HandCards: sorted,
			Kickers:   []int{groups[0].rank, groups[1].rank, groups[2].rank},
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandEvaluation{
			Rank:      TwoPair,
			HandCards: sorted,
			Kickers:   []int{groups[0].rank, groups[1].rank, groups[2].rank},
		}
	case groups[0].count == 2:
		return HandEvaluation{
			Rank:      OnePair,
			HandCards: sorted,
			Kickers:   []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank},
		}
	default:
		return HandEvaluation{Rank: HighCard, HandCards: sorted, Kickers: ranksOf(sorted)}
	}
}

// ranksOf returns the rank of each card in order
func ranksOf(sorted cards.Stack) []int {
	ranks := make([]int, len(sorted))
	for i, card := range sorted {
		ranks[i] = valueToRank(card.Value)
	}
	return ranks
}

// Compare compares two hand evaluations and returns:
// -1 if a is worse than b, 0 if they tie exactly, 1 if a is better than b
func Compare(a, b HandEvaluation) int {
	av, bv := a.Value(), b.Value()
	if av < bv {
		return -1
	}
	if av > bv {
		return 1
	}
	return 0
}

// combinations generates all possible combinations of k indices from n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}

// Evaluate returns the best five-card hand available from the player's hole
// cards plus the community cards. It enumerates every 5-card subset of the up
// to 7 available cards and keeps the maximum.
func Evaluate(holeCards, communityCards cards.Stack) (HandEvaluation, error) {
	available := make(cards.Stack, 0, len(holeCards)+len(communityCards))
	available = append(available, holeCards...)
	available = append(available, communityCards...)

	if len(available) < 5 {
		return HandEvaluation{}, ErrNotEnoughCards
	}

	var best HandEvaluation
	first := true
	for _, combo := range combinations(len(available), 5) {
		hand := make(cards.Stack, 5)
		for i, idx := range combo {
			hand[i] = available[idx]
		}

		evaluation := evaluateFive(hand)
		if first || Compare(evaluation, best) > 0 {
			best = evaluation
			first = false
		}
	}

	return best, nil
}

// HandComparisonResult represents one player's standing at showdown
type HandComparisonResult struct {
	PlayerID        string      `json:"playerId"`
	HandRank        HandRank    `json:"handRank"`
	HandDescription string      `json:"handDescription"`
	HandCards       cards.Stack `json:"handCards"`
	HandValue       int64       `json:"handValue"`
	IsWinner        bool        `json:"isWinner"`
	PlaceIndex      int         `json:"placeIndex"` // 0 for first place; tied players share a place index
}

// CompareHands evaluates each player's best hand and ranks them against one
// another. playerCards maps player IDs to their available cards (hole +
// community). Results are sorted best-first; exact ties share a place index
// and are all flagged as winners when tied for first.
func CompareHands(playerCards map[string]cards.Stack) []HandComparisonResult {
	if len(playerCards) == 0 {
		return nil
	}

	type playerHandEval struct {
		playerID string
		best     HandEvaluation
	}

	playerHands := make([]playerHandEval, 0, len(playerCards))
	for playerID, available := range playerCards {
		best, err := Evaluate(available, nil)
		if err != nil {
			continue
		}
		playerHands = append(playerHands, playerHandEval{playerID: playerID, best: best})
	}

	sort.Slice(playerHands, func(i, j int) bool {
		if c := Compare(playerHands[i].best, playerHands[j].best); c != 0 {
			return c > 0
		}
		// Stable output for exact ties
		return playerHands[i].playerID < playerHands[j].playerID
	})

	results := make([]HandComparisonResult, len(playerHands))
	placeIndex := 0
	for i, ph := range playerHands {
		if i > 0 && Compare(ph.best, playerHands[i-1].best) != 0 {
			placeIndex = i
		}
		results[i] = HandComparisonResult{
			PlayerID:        ph.playerID,
			HandRank:        ph.best.Rank,
			HandDescription: ph.best.Describe(),
			HandCards:       ph.best.HandCards,
			HandValue:       ph.best.Value(),
			IsWinner:        placeIndex == 0,
			PlaceIndex:      placeIndex,
		}
	}

	return results
}
