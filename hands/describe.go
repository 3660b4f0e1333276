package hands

import "fmt"

// rankName returns the spoken name of a numeric card rank
func rankName(rank int) string {
	switch rank {
	case 14:
		return "Ace"
	case 13:
		return "King"
	case 12:
		return "Queen"
	case 11:
		return "Jack"
	case 10:
		return "Ten"
	case 9:
		return "Nine"
	case 8:
		return "Eight"
	case 7:
		return "Seven"
	case 6:
		return "Six"
	case 5:
		return "Five"
	case 4:
		return "Four"
	case 3:
		return "Three"
	case 2:
		return "Two"
	default:
		return "?"
	}
}

// rankNamePlural returns the plural spoken name of a numeric card rank
func rankNamePlural(rank int) string {
	if rank == 6 {
		return "Sixes"
	}
	return rankName(rank) + "s"
}

// Describe renders a human-readable description of the evaluation, e.g.
// "Full House, Kings over Tens" or "Pair of Jacks".
func (e HandEvaluation) Describe() string {
	switch e.Rank {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", rankName(e.Kickers[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", rankNamePlural(e.Kickers[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", rankNamePlural(e.Kickers[0]), rankNamePlural(e.Kickers[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(e.Kickers[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(e.Kickers[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", rankNamePlural(e.Kickers[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", rankNamePlural(e.Kickers[0]), rankNamePlural(e.Kickers[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", rankNamePlural(e.Kickers[0]))
	case HighCard:
		return fmt.Sprintf("High Card, %s", rankName(e.Kickers[0]))
	default:
		return "Unknown"
	}
}
