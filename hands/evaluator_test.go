package hands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texasholdem/holdem/cards"
)

func stack(t *testing.T, shorthands ...string) cards.Stack {
	t.Helper()
	s, err := cards.StackFromStrings(shorthands...)
	require.NoError(t, err)
	return s
}

func evalFive(t *testing.T, shorthands ...string) HandEvaluation {
	t.Helper()
	require.Len(t, shorthands, 5)
	return evaluateFive(stack(t, shorthands...))
}

func TestEvaluateFive_Categories(t *testing.T) {
	tests := []struct {
		name string
		hand []string
		rank HandRank
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "10s"}, RoyalFlush},
		{"straight flush", []string{"9d", "8d", "7d", "6d", "5d"}, StraightFlush},
		{"four of a kind", []string{"7s", "7h", "7d", "7c", "Kd"}, FourOfAKind},
		{"full house", []string{"Ks", "Kh", "Kd", "10c", "10s"}, FullHouse},
		{"flush", []string{"Ah", "Jh", "9h", "6h", "3h"}, Flush},
		{"straight", []string{"10s", "9d", "8h", "7c", "6s"}, Straight},
		{"wheel straight", []string{"Ad", "2s", "3h", "4c", "5d"}, Straight},
		{"three of a kind", []string{"Qs", "Qh", "Qd", "9c", "4s"}, ThreeOfAKind},
		{"two pair", []string{"As", "Ah", "8d", "8c", "Ks"}, TwoPair},
		{"one pair", []string{"Js", "Jh", "Ad", "9c", "5s"}, OnePair},
		{"high card", []string{"As", "Jh", "9d", "6c", "3s"}, HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation := evalFive(t, tt.hand...)
			assert.Equal(t, tt.rank, evaluation.Rank)
		})
	}
}

func TestEvaluateFive_CategoryOrdering(t *testing.T) {
	// Hands in strictly descending strength
	ladder := []HandEvaluation{
		evalFive(t, "9d", "8d", "7d", "6d", "5d"),  // straight flush
		evalFive(t, "7s", "7h", "7d", "7c", "Kd"),  // four of a kind
		evalFive(t, "Ks", "Kh", "Kd", "10c", "10s"), // full house
		evalFive(t, "Ah", "Jh", "9h", "6h", "3h"),  // flush
		evalFive(t, "10s", "9d", "8h", "7c", "6s"), // straight
		evalFive(t, "Qs", "Qh", "Qd", "9c", "4s"),  // three of a kind
		evalFive(t, "As", "Ah", "8d", "8c", "Ks"),  // two pair
		evalFive(t, "Js", "Jh", "Ad", "9c", "5s"),  // one pair
		evalFive(t, "As", "Jh", "9d", "6c", "3s"),  // high card
	}

	for i := 1; i < len(ladder); i++ {
		assert.Equal(t, 1, Compare(ladder[i-1], ladder[i]),
			"%s should beat %s", ladder[i-1].Rank, ladder[i].Rank)
	}
}

func TestEvaluateFive_WheelRanksBelowSixHigh(t *testing.T) {
	wheel := evalFive(t, "Ad", "2s", "3h", "4c", "5d")
	sixHigh := evalFive(t, "2d", "3s", "4h", "5c", "6d")

	assert.Equal(t, Straight, wheel.Rank)
	assert.Equal(t, Straight, sixHigh.Rank)
	assert.Equal(t, -1, Compare(wheel, sixHigh), "A-2-3-4-5 must rank below 6-high straight")
	assert.Equal(t, []int{5}, wheel.Kickers)
}

func TestEvaluateFive_WheelStraightFlushBelowSixHigh(t *testing.T) {
	wheel := evalFive(t, "Ad", "2d", "3d", "4d", "5d")
	sixHigh := evalFive(t, "2h", "3h", "4h", "5h", "6h")

	assert.Equal(t, StraightFlush, wheel.Rank)
	assert.Equal(t, StraightFlush, sixHigh.Rank)
	assert.Equal(t, -1, Compare(wheel, sixHigh))
}

func TestEvaluateFive_KickerBreaksTie(t *testing.T) {
	pairAceKicker := evalFive(t, "Js", "Jh", "Ad", "9c", "5s")
	pairKingKicker := evalFive(t, "Jd", "Jc", "Kd", "9h", "5d")

	assert.Equal(t, 1, Compare(pairAceKicker, pairKingKicker))
}

func TestEvaluateFive_ExactTie(t *testing.T) {
	a := evalFive(t, "Ah", "Kh", "Qh", "Jh", "9h")
	b := evalFive(t, "As", "Ks", "Qs", "Js", "9s")

	assert.Equal(t, 0, Compare(a, b))
	assert.Equal(t, a.Value(), b.Value())
}

func TestEvaluate_BestOfSeven(t *testing.T) {
	hole := stack(t, "Ah", "Kh")
	community := stack(t, "Qh", "Jh", "10h", "2c", "7d")

	best, err := Evaluate(hole, community)
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, best.Rank)
}

func TestEvaluate_UsesBoardWhenHoleCardsAreWeak(t *testing.T) {
	hole := stack(t, "2c", "7d")
	community := stack(t, "As", "Ad", "Ac", "Ks", "Kd")

	best, err := Evaluate(hole, community)
	require.NoError(t, err)
	assert.Equal(t, FullHouse, best.Rank)
	assert.Equal(t, []int{14, 13}, best.Kickers)
}

func TestEvaluate_PartialStreets(t *testing.T) {
	// Two hole cards plus the flop: enough for an intermediate strength hint
	hole := stack(t, "9s", "9d")
	flop := stack(t, "9c", "4h", "2d")

	best, err := Evaluate(hole, flop)
	require.NoError(t, err)
	assert.Equal(t, ThreeOfAKind, best.Rank)
}

func TestEvaluate_NotEnoughCards(t *testing.T) {
	hole := stack(t, "9s", "9d")

	_, err := Evaluate(hole, nil)
	assert.ErrorIs(t, err, ErrNotEnoughCards)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		hand     []string
		expected string
	}{
		{[]string{"As", "Ks", "Qs", "Js", "10s"}, "Royal Flush"},
		{[]string{"9d", "8d", "7d", "6d", "5d"}, "Straight Flush, Nine high"},
		{[]string{"7s", "7h", "7d", "7c", "Kd"}, "Four of a Kind, Sevens"},
		{[]string{"Ks", "Kh", "Kd", "10c", "10s"}, "Full House, Kings over Tens"},
		{[]string{"Ah", "Jh", "9h", "6h", "3h"}, "Flush, Ace high"},
		{[]string{"10s", "9d", "8h", "7c", "6s"}, "Straight, Ten high"},
		{[]string{"Ad", "2s", "3h", "4c", "5d"}, "Straight, Five high"},
		{[]string{"Qs", "Qh", "Qd", "9c", "4s"}, "Three of a Kind, Queens"},
		{[]string{"As", "Ah", "8d", "8c", "Ks"}, "Two Pair, Aces and Eights"},
		{[]string{"6s", "6h", "Ad", "9c", "5s"}, "Pair of Sixes"},
		{[]string{"As", "Jh", "9d", "6c", "3s"}, "High Card, Ace"},
	}

	for _, tt := range tests {
		evaluation := evalFive(t, tt.hand...)
		assert.Equal(t, tt.expected, evaluation.Describe())
	}
}

func TestCompareHands_EmptyInput(t *testing.T) {
	result := CompareHands(map[string]cards.Stack{})
	assert.Nil(t, result, "Expected nil result for empty input")
}

func TestCompareHands_MultiplePlayersWithClearWinner(t *testing.T) {
	playerCards := map[string]cards.Stack{
		"player1": stack(t, "As", "Ks", "Qs", "Js", "10s"), // royal flush
		"player2": stack(t, "9c", "8c", "7c", "6c", "5c"),  // straight flush
		"player3": stack(t, "7s", "7h", "7d", "7c", "Kd"),  // four of a kind
	}

	result := CompareHands(playerCards)
	require.Len(t, result, 3)

	assert.Equal(t, "player1", result[0].PlayerID)
	assert.Equal(t, RoyalFlush, result[0].HandRank)
	assert.True(t, result[0].IsWinner)
	assert.Equal(t, 0, result[0].PlaceIndex)

	assert.Equal(t, "player2", result[1].PlayerID)
	assert.False(t, result[1].IsWinner)
	assert.Equal(t, 1, result[1].PlaceIndex)

	assert.Equal(t, "player3", result[2].PlayerID)
	assert.Equal(t, 2, result[2].PlaceIndex)
}

func TestCompareHands_TiedPlayers(t *testing.T) {
	playerCards := map[string]cards.Stack{
		"player1": stack(t, "Ah", "Kh", "Qh", "Jh", "9h"), // flush A-K-Q-J-9
		"player2": stack(t, "As", "Ks", "Qs", "Js", "9s"), // same flush, different suit
		"player3": stack(t, "Ad", "Kd", "Qd", "Jd", "8d"), // lower flush
	}

	result := CompareHands(playerCards)
	require.Len(t, result, 3)

	assert.Equal(t, 0, result[0].PlaceIndex)
	assert.Equal(t, 0, result[1].PlaceIndex, "same place index indicates a tie")
	assert.True(t, result[0].IsWinner)
	assert.True(t, result[1].IsWinner)

	assert.Equal(t, "player3", result[2].PlayerID)
	assert.Equal(t, 2, result[2].PlaceIndex)
	assert.False(t, result[2].IsWinner)
}

func TestCompareHands_SevenCardInputs(t *testing.T) {
	playerCards := map[string]cards.Stack{
		"player1": stack(t, "Ah", "Kh", "Qh", "Jh", "9h", "7s", "2d"), // flush
		"player2": stack(t, "6s", "5h", "4d", "3c", "2h", "Ks", "Qd"), // straight
	}

	result := CompareHands(playerCards)
	require.Len(t, result, 2)
	assert.Equal(t, "player1", result[0].PlayerID)
	assert.Equal(t, Flush, result[0].HandRank)
	assert.Equal(t, Straight, result[1].HandRank)
}
