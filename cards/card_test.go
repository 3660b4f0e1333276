package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Card
	}{
		{"As", Card{Suit: Spades, Value: Ace}},
		{"A♠", Card{Suit: Spades, Value: Ace}},
		{"10d", Card{Suit: Diamonds, Value: Ten}},
		{"Td", Card{Suit: Diamonds, Value: Ten}},
		{"2c", Card{Suit: Clubs, Value: Two}},
		{"Kh", Card{Suit: Hearts, Value: King}},
	}

	for _, tt := range tests {
		card, err := CardFromString(tt.input)
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, card, "input %q", tt.input)
	}
}

func TestCardFromString_Invalid(t *testing.T) {
	for _, input := range []string{"", "A", "Zx", "11s", "Ak?"} {
		_, err := CardFromString(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestCardEquals(t *testing.T) {
	a := Card{Suit: Hearts, Value: Queen}
	b := Card{Suit: Hearts, Value: Queen}
	c := Card{Suit: Spades, Value: Queen}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestCardString(t *testing.T) {
	card := Card{Suit: Spades, Value: Ace}
	assert.Equal(t, "A♠", card.String())
}

func TestStackFromStrings(t *testing.T) {
	stack, err := StackFromStrings("As", "Kd", "10c")
	assert.NoError(t, err)
	assert.Len(t, stack, 3)
	assert.True(t, stack.Contains(Card{Suit: Diamonds, Value: King}))
	assert.False(t, stack.Contains(Card{Suit: Hearts, Value: King}))
}
